package game

import (
	"flag"
	"fmt"

	"github.com/edwinsyarief/combine/internal/config"
)

// Config holds the command configuration. Environment variables set the
// defaults; flags override them.
type Config struct {
	Editor      bool   `env:"COMBINE_EDITOR" envDefault:"false"`
	Headless    bool   `env:"COMBINE_HEADLESS" envDefault:"false"`
	Frames      uint64 `env:"COMBINE_FRAMES" envDefault:"0"`
	Hz          int    `env:"COMBINE_HZ" envDefault:"60"`
	Profile     string `env:"COMBINE_PROFILE"`
	AssetFolder string `env:"COMBINE_ASSET_FOLDER" envDefault:"assets"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.BoolVar(&cfg.Editor, "editor", cfg.Editor, "Enable the in-game editor and diagnostics")
	fs.BoolVar(&cfg.Headless, "headless", cfg.Headless, "Run without a window")
	fs.Uint64Var(&cfg.Frames, "frames", cfg.Frames, "Stop after this many frames in headless mode (0 runs until interrupted)")
	fs.IntVar(&cfg.Hz, "hz", cfg.Hz, "Headless frame rate")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "Write a profile: cpu or mem")
	fs.StringVar(&cfg.AssetFolder, "assets", cfg.AssetFolder, "Asset folder watched for changes")
	if err := config.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	switch cfg.Profile {
	case "", "cpu", "mem":
	default:
		return Config{}, fmt.Errorf("unknown profile mode %q", cfg.Profile)
	}
	if cfg.Hz <= 0 {
		return Config{}, fmt.Errorf("hz must be positive, got %d", cfg.Hz)
	}
	return cfg, nil
}
