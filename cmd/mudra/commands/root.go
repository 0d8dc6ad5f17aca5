// Package commands implements the mudra command tree.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/config"
)

// cli carries the global flags and what PersistentPreRunE builds from them.
type cli struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "mudra",
		Short: "Real-time hand signal interpreter",
		Long: `mudra turns the 21 hand landmarks of a webcam feed into signals:
pointing directions, zoom gestures, a pointing cursor and the
pitch/yaw/roll of a closed fist.

Signals are drawn on a preview window, streamed to the web UI,
journaled to sqlite and can trigger plugin actions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", config.DefaultPath(), "config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newRunCmd(c),
		newReplayCmd(c),
		newConfigCmd(c),
		newLabelsCmd(),
	)
	return root
}

func (c *cli) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	logger, err := cfg.Log.NewLogger(c.verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	c.cfg = cfg
	c.logger = logger
	return nil
}
