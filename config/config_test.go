package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.GetString(ConfigMode), ModeLocal)
	is.Equal(c.GetStringSlice(ConfigScorers), []string{"smallest", "smallest", "smallest", "smallest"})
	is.Equal(c.GetInt(ConfigThreads), 4)
	is.Equal(c.GetString(ConfigExhaustionPolicy), "retry")
	is.Equal(DefaultConfig().GetInt(ConfigNumGames), 100)
}

func TestFlags(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load([]string{"--mode", "batch", "--scorers", "random,reach,smallest,random",
		"--max-rounds", "12", "--exhaustion-policy", "retire"}))
	is.Equal(c.GetString(ConfigMode), ModeBatch)
	is.Equal(c.GetStringSlice(ConfigScorers), []string{"random", "reach", "smallest", "random"})
	is.Equal(c.GetInt(ConfigMaxRounds), 12)
	is.Equal(c.GetString(ConfigExhaustionPolicy), "retire")
}

func TestEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("BLOCKADE_NUM_GAMES", "7")
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.GetInt(ConfigNumGames), 7)
}

func TestConfigFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "blockade.yaml")
	is.NoErr(os.WriteFile(path, []byte("threads: 9\ncolor: false\n"), 0o644))
	c := &Config{}
	is.NoErr(c.Load([]string{"--config", path}))
	is.Equal(c.GetInt(ConfigThreads), 9)
	is.Equal(c.GetBool(ConfigColor), false)
}

func TestValidation(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.True(c.Load([]string{"--mode", "gui"}) != nil)
	is.True(c.Load([]string{"--scorers", "random,random"}) != nil)
	is.True(c.Load([]string{"--exhaustion-policy", "never"}) != nil)
	is.True(c.Load([]string{"--threads", "0"}) != nil)
}
