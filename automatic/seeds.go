package automatic

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"lukechampine.com/frand"

	"github.com/domino14/blockade/equity"
)

// GenerateSeeds creates n random seeds for reproducible games.
func GenerateSeeds(n int) [][]byte {
	seeds := make([][]byte, n)
	for i := range seeds {
		seeds[i] = frand.Bytes(equity.SeedSize)
	}
	return seeds
}

// SeedString encodes a seed as URL-safe base64 without padding.
func SeedString(seed []byte) string {
	return base64.RawURLEncoding.EncodeToString(seed)
}

// ParseSeed decodes a seed written by SeedString. Standard base64 is
// accepted too.
func ParseSeed(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	decoded, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
		if err != nil {
			return nil, fmt.Errorf("decoding seed: %w", err)
		}
	}
	if len(decoded) != equity.SeedSize {
		return nil, fmt.Errorf("invalid seed length: got %d bytes, expected %d", len(decoded), equity.SeedSize)
	}
	return decoded, nil
}

// SaveSeeds writes one seed per line, after a comment header.
func SaveSeeds(seeds [][]byte, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create seed file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "# game seeds (base64 URL-safe, %d bytes each)\n", equity.SeedSize)
	for _, seed := range seeds {
		fmt.Fprintln(w, SeedString(seed))
	}
	return w.Flush()
}

// LoadSeeds reads a file written by SaveSeeds. Blank lines and # comments
// are skipped.
func LoadSeeds(path string) ([][]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	var seeds [][]byte
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seed, err := ParseSeed(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		seeds = append(seeds, seed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}
	return seeds, nil
}
