package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   base URL of the upstream API
//	-s int      users page size
//	-i int      countdown tick interval (in seconds)
//	-l string   log level
//
// Only these flags are looked at; see flagx.Pick.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the upstream API")
	fs.IntVar(&cfg.PageSize, "s", cfg.PageSize, "users page size")
	tick := fs.Int("i", int(cfg.TickInterval/time.Second), "countdown tick interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.Pick(args, "-a", "-s", "-i", "-l")); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.TickInterval = time.Duration(*tick) * time.Second
		}
	})
	return nil
}
