package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/overlay"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

type runOptions struct {
	addr      string
	device    int
	noWindow  bool
	noServer  bool
	tray      bool
	noJournal bool
}

func newRunCmd(c *cli) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Track the webcam and emit hand signals",
		Long: `Open the camera and interpret the tracked hand until interrupted.

Press ESC in the preview window, send SIGINT/SIGTERM or choose Quit
in the tray menu to stop.

Example:
  mudra run
  mudra run --device 1 --no-window --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.apply(cmd, c.cfg)
			return run(cmd.Context(), c.cfg, c.logger)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", "", "HTTP listen address (overrides server.addr)")
	f.IntVar(&opts.device, "device", 0, "camera device index (overrides camera.device)")
	f.BoolVar(&opts.noWindow, "no-window", false, "do not open the preview window")
	f.BoolVar(&opts.noServer, "no-server", false, "do not start the HTTP API")
	f.BoolVar(&opts.tray, "tray", false, "show the system tray icon")
	f.BoolVar(&opts.noJournal, "no-journal", false, "do not journal signals")
	return cmd
}

// apply copies the flags the user set over the loaded config.
func (o *runOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("addr") {
		cfg.Server.Addr = o.addr
	}
	if f.Changed("device") {
		cfg.Camera.Device = o.device
	}
	if o.noWindow {
		cfg.Display.Window = false
	}
	if o.noServer {
		cfg.Server.Enabled = false
	}
	if f.Changed("tray") {
		cfg.Tray.Enabled = o.tray
	}
	if o.noJournal {
		cfg.Store.Journal = false
	}
}

// toggle keeps the loop and the tray menu in step when the HTTP API pauses
// or resumes processing.
type toggle struct {
	app  *app.App
	tray *tray.Tray
}

func (t toggle) SetEnabled(enabled bool) {
	t.app.SetEnabled(enabled)
	if t.tray != nil {
		t.tray.SetEnabled(enabled)
	}
}

func (t toggle) IsEnabled() bool {
	return t.app.IsEnabled()
}

func run(parent context.Context, cfg *config.Config, logger *zap.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st, err := openStore(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	plugins := plugin.NewManager(cfg.Plugins.Dir, logger)
	if err := plugins.Discover(); err != nil {
		logger.Warn("discover plugins", zap.String("dir", cfg.Plugins.Dir), zap.Error(err))
	}
	dispatcher := plugin.NewDispatcher(st.Actions(), plugins, plugin.NewExecutor(cfg.Plugins.Timeout), logger)

	det := newDetector(cfg.Detector, logger)
	defer det.Close()

	var display overlay.Display
	if cfg.Display.Window {
		display = overlay.NewWindow(cfg.Display.Title)
	}

	var tr *tray.Tray
	if cfg.Tray.Enabled {
		tr = tray.New()
	}

	hub := server.NewHub(logger)
	frames := server.NewFrameBuffer()

	appCfg := app.Config{
		Camera:    capture.NewCamera(cfg.Camera),
		Detector:  det,
		Params:    cfg.Hand,
		Loop:      cfg.Loop,
		Renderer:  overlay.NewRenderer(cfg.Display.Skeleton),
		Display:   display,
		Source:    "camera",
		Publisher: hub,
		Frames:    frames,
		Observer:  dispatcher,
		Logger:    logger,
	}
	if cfg.Store.Journal {
		appCfg.Store = st
	}
	if tr != nil {
		appCfg.OnSignal = func(r app.Result) { tr.SetLastSignal(r.Label) }
	}

	a, err := app.New(appCfg)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return a.Run(gctx)
	})
	g.Go(func() error {
		return dispatcher.Run(gctx)
	})
	if cfg.Server.Enabled {
		staticDir := cfg.Server.StaticDir
		if staticDir == "" {
			staticDir = findWebDir()
		}
		srv := server.New(server.Config{
			StaticDir: staticDir,
			Store:     st,
			Hub:       hub,
			Frames:    frames,
			Plugins:   plugins,
			Toggle:    toggle{app: a, tray: tr},
			Logger:    logger,
		})
		g.Go(func() error {
			return srv.Run(gctx, cfg.Server.Addr)
		})
	} else {
		defer hub.Close()
	}

	if tr == nil {
		return g.Wait()
	}

	// The tray owns the main goroutine until the pipeline is done.
	tr.OnToggle(a.SetEnabled)
	tr.OnQuit(cancel)
	tr.OnOpen(func() {
		if err := openBrowser(webURL(cfg.Server.Addr)); err != nil {
			logger.Warn("open browser", zap.Error(err))
		}
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- g.Wait()
		tr.Quit()
	}()
	tr.Run()
	cancel()
	return <-errCh
}

func openStore(path string) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return store.New(path)
}

// newDetector starts the MediaPipe provider, or falls back to a detector
// that never sees a hand so the preview and the API still work.
func newDetector(cfg detector.Config, logger *zap.Logger) detector.Detector {
	mp, err := detector.NewMediaPipeDetector(cfg, logger)
	if err != nil {
		if errors.Is(err, detector.ErrScriptNotFound) {
			logger.Warn("mediapipe service not found, no hands will be detected", zap.Error(err))
		} else {
			logger.Warn("mediapipe detector unavailable", zap.Error(err))
		}
		return detector.NewMockDetector()
	}
	return mp
}

// findWebDir searches for the web UI in common locations: "web", "../web",
// "../../web" and ~/.mudra/web. It returns "" when none exists.
func findWebDir() string {
	for _, p := range []string{"web", "../web", "../../web"} {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, config.DataDirName, "web")
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	return ""
}

// webURL turns a listen address into a browsable URL.
func webURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/"
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
