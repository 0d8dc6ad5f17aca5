package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
)

type replayOptions struct {
	interval time.Duration
	journal  bool
}

func newReplayCmd(c *cli) *cobra.Command {
	opts := &replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay <file.jsonl>",
		Short: "Feed recorded landmarks through the signal pipeline",
		Long: `Replay a landmark recording without a camera and print every
emitted signal as "<frame>\t<text>".

Each line of the file is a JSON array of 21 {"x","y","z"} landmarks,
or null for a frame without a hand.

Example:
  mudra replay session.jsonl
  mudra replay --journal --interval 30ms session.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.replay(cmd, args[0], opts)
		},
	}

	cmd.Flags().DurationVar(&opts.interval, "interval", time.Millisecond, "pause between frames")
	cmd.Flags().BoolVar(&opts.journal, "journal", false, "journal the replay as a session")
	return cmd
}

// printer writes one line per frame result.
type printer struct {
	mu  sync.Mutex
	out io.Writer
}

func (p *printer) Publish(v any) {
	r, ok := v.(app.Result)
	if !ok {
		return
	}
	text := r.Text
	if !r.Hand {
		text = r.Label
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "%d\t%s\n", r.Seq, text)
}

func (c *cli) replay(cmd *cobra.Command, path string, opts *replayOptions) error {
	if opts.interval <= 0 {
		return fmt.Errorf("--interval must be positive")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open recording: %w", err)
	}
	snaps, err := detector.ReadSnapshots(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("read recording %s: %w", path, err)
	}

	appCfg := app.Config{
		Camera:    capture.NewBlankCamera(c.cfg.Camera.Width, c.cfg.Camera.Height, -1),
		Detector:  detector.NewSequenceDetector(snaps),
		Params:    c.cfg.Hand,
		Loop:      c.cfg.Loop,
		Source:    "replay",
		Publisher: &printer{out: cmd.OutOrStdout()},
		Logger:    c.logger,
	}
	appCfg.Loop.ActiveWait = opts.interval
	appCfg.Loop.IdleWait = opts.interval

	if opts.journal {
		st, err := openStore(c.cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()
		appCfg.Store = st
	}

	a, err := app.New(appCfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.Run(ctx); err != nil {
		return err
	}

	stats := a.Stats()
	fmt.Fprintf(cmd.ErrOrStderr(), "frames=%d hands=%d skipped=%d", stats.Frames, stats.Hands, stats.Skipped)
	if id := a.SessionID(); id != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), " session=%s", id)
	}
	fmt.Fprintln(cmd.ErrOrStderr())
	return nil
}
