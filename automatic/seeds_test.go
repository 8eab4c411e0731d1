package automatic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestSeedsFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "seeds.txt")
	seeds := GenerateSeeds(3)
	is.NoErr(SaveSeeds(seeds, path))

	loaded, err := LoadSeeds(path)
	is.NoErr(err)
	is.Equal(loaded, seeds)
}

func TestLoadSeedsRejectsShortSeed(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "seeds.txt")
	is.NoErr(os.WriteFile(path, []byte("# header\n\nAAAA\n"), 0o644))
	_, err := LoadSeeds(path)
	is.True(err != nil)
}

func TestParseSeedAcceptsStdEncoding(t *testing.T) {
	is := is.New(t)
	seed := GenerateSeeds(1)[0]
	for i := range seed {
		seed[i] = 0xfb
	}
	// 0xfb bytes encode to '+' and '/' characters in std base64
	parsed, err := ParseSeed("+/v7+/v7+/v7+/v7+/v7+/v7+/v7+/v7+/v7+/v7+/s=")
	is.NoErr(err)
	is.Equal(parsed, seed)
}
