package plugin

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/store"
)

// dispatchQueue bounds pending label edges. Edges arriving while it is full
// are dropped.
const dispatchQueue = 16

// ActionSource looks up the enabled actions bound to a signal label.
type ActionSource interface {
	ListByLabel(label string) ([]*store.Action, error)
}

// Result reports one plugin run.
type Result struct {
	Label    string
	ActionID string
	Plugin   string
	Response *Response
	Err      error
}

type edge struct {
	label  string
	signal json.RawMessage
}

// Dispatcher runs bound plugin actions when a label starts. A label fires
// once when it first appears and again only after some other label (or no
// hand) was seen in between.
type Dispatcher struct {
	actions ActionSource
	plugins *Manager
	exec    *Executor
	logger  *zap.Logger
	edges   chan edge

	// OnResult, if set before Run, is called after every plugin run.
	OnResult func(Result)

	mu      sync.Mutex
	last    string
	dropped int
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(actions ActionSource, plugins *Manager, exec *Executor, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		actions: actions,
		plugins: plugins,
		exec:    exec,
		logger:  logger.Named("dispatch"),
		edges:   make(chan edge, dispatchQueue),
	}
}

// Observe is called once per frame with the emitted label, or "" when no hand
// was seen. It reports whether a rising edge was queued. It never blocks.
func (d *Dispatcher) Observe(label string, signal any) bool {
	d.mu.Lock()
	rising := label != "" && label != "NONE" && label != d.last
	d.last = label
	d.mu.Unlock()

	if !rising {
		return false
	}

	raw, err := json.Marshal(signal)
	if err != nil {
		d.logger.Warn("encode signal", zap.String("label", label), zap.Error(err))
		raw = nil
	}

	select {
	case d.edges <- edge{label: label, signal: raw}:
		return true
	default:
		d.mu.Lock()
		d.dropped++
		d.mu.Unlock()
		d.logger.Warn("dispatch queue full, dropping", zap.String("label", label))
		return false
	}
}

// Dropped returns how many edges were lost to a full queue.
func (d *Dispatcher) Dropped() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dropped
}

// Run executes queued edges until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-d.edges:
			d.fire(ctx, e)
		}
	}
}

func (d *Dispatcher) fire(ctx context.Context, e edge) {
	bound, err := d.actions.ListByLabel(e.label)
	if err != nil {
		d.logger.Error("lookup actions", zap.String("label", e.label), zap.Error(err))
		return
	}

	for _, a := range bound {
		res := d.run(ctx, a, e)
		if res.Err != nil {
			d.logger.Warn("action failed",
				zap.String("label", e.label),
				zap.String("plugin", a.PluginName),
				zap.String("action", a.ActionName),
				zap.Error(res.Err))
		} else {
			d.logger.Info("action executed",
				zap.String("label", e.label),
				zap.String("plugin", a.PluginName),
				zap.String("action", a.ActionName))
		}
		if d.OnResult != nil {
			d.OnResult(res)
		}
	}
}

func (d *Dispatcher) run(ctx context.Context, a *store.Action, e edge) Result {
	res := Result{Label: e.label, ActionID: a.ID, Plugin: a.PluginName}

	p, err := d.plugins.Get(a.PluginName)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", a.PluginName, err)
		return res
	}
	if !p.Supports(a.ActionName) {
		res.Err = fmt.Errorf("plugin %s has no action %q", a.PluginName, a.ActionName)
		return res
	}

	res.Response, res.Err = d.exec.Execute(ctx, p, &Request{
		Action: a.ActionName,
		Label:  e.label,
		Signal: e.signal,
		Config: a.Config,
	})
	if res.Err == nil && !res.Response.Success {
		res.Err = fmt.Errorf("plugin %s: %s", a.PluginName, res.Response.Error)
	}
	return res
}
