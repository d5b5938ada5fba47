// Package config builds the root CLI command: flags, environment
// overrides and validation for the server's handful of ambient settings.
// Grounded on Seednode-partybox/config.go's cobra+pflag+viper wiring.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every flag/env-driven setting the server needs at startup.
type Config struct {
	BoardFile     string
	Bind          string
	QueueCapacity int
	Verbose       bool
}

func (c *Config) validate() error {
	if c.QueueCapacity < 1 {
		return fmt.Errorf("--queue-capacity must be at least 1, got %d", c.QueueCapacity)
	}
	return nil
}

// New builds the root cobra command. run is called once flags are parsed
// and validated, with the positional board file path already copied into
// cfg.BoardFile.
func New(cfg *Config, run func(*Config) error) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CODENAMES")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "codenames <board-file>",
		Short:         "Real-time multiplayer word-association party game server",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.BoardFile = args[0]
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&cfg.Bind, "bind", "b", "0.0.0.0:8080", "address to bind to (env: CODENAMES_BIND)")
	fs.IntVar(&cfg.QueueCapacity, "queue-capacity", 16, "per-connection outbound queue capacity before a slow client is disconnected (env: CODENAMES_QUEUE_CAPACITY)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable verbose logging (env: CODENAMES_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	return cmd
}
