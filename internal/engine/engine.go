package engine

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/leengari/groupgrid/internal/config"
	"github.com/leengari/groupgrid/internal/domain/data"
	"github.com/leengari/groupgrid/internal/domain/pass"
	"github.com/leengari/groupgrid/internal/format"
	"github.com/leengari/groupgrid/internal/grouping"
	"github.com/leengari/groupgrid/internal/render"
	"github.com/leengari/groupgrid/internal/storage"
)

// Request is one grid to group and render
type Request struct {
	Rows    []data.Row
	Columns []config.Column // displayed columns, used when Grid lists none
	Grid    *config.Grid    // nil means no merging and no summary rows
	Format  string          // text, box or json
}

// Result is the outcome of a single pass
type Result struct {
	PassID  string
	Output  string
	Plan    *render.Plan
	Changes *grouping.ChangeMap
}

// Engine runs the group-then-render pipeline
type Engine struct {
	formatter format.Formatter
	mu        sync.RWMutex
	observers []Observer // Observers for lifecycle events
}

// Option configures an Engine at construction time
type Option func(*Engine)

// WithFormatter replaces the default cell formatter.
// The formatter is fixed for the engine's lifetime so Run needs no lock for it.
func WithFormatter(f format.Formatter) Option {
	return func(e *Engine) {
		e.formatter = f
	}
}

// New creates a new Engine, by default with format.New() as cell formatter
func New(opts ...Option) *Engine {
	e := &Engine{
		formatter: format.New(),
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run detects groups over the request rows and renders them.
// No partial output is produced when grouping fails.
func (e *Engine) Run(req Request) (*Result, error) {
	p := pass.New()

	grid := config.Grid{}
	if req.Grid != nil {
		grid = *req.Grid
	}
	grid.ApplyDefaults()
	if len(grid.Columns) == 0 {
		grid.Columns = req.Columns
	}
	if len(grid.Columns) == 0 {
		grid.Columns = storage.InferColumns(req.Rows)
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	renderer, err := render.For(req.Format)
	if err != nil {
		return nil, err
	}

	// 1. Group
	rows := data.Values(req.Rows)
	e.notify(p, Event{Type: EventGroupStart, Data: len(rows)})
	grouper, err := grouping.New(grid.Grouping(e.formatter))
	if err != nil {
		return nil, err
	}
	view, err := grouper.Group(rows)
	if err != nil {
		return nil, fmt.Errorf("grouping failed: %w", err)
	}
	e.notify(p, Event{Type: EventGroupEnd, Data: map[string]interface{}{
		"entries": view.ChangeMap().Len(),
		"tracked": len(grouper.Tracked()),
	}})

	// 2. Render
	e.notify(p, Event{Type: EventRenderStart, Data: req.Format})
	plan, err := render.Build(render.Grid{
		Columns:     grid.Columns,
		Rows:        rows,
		View:        view,
		Formatter:   e.formatter,
		NullDisplay: grid.NullDisplay,
	})
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, plan); err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}
	e.notify(p, Event{Type: EventRenderEnd, Data: map[string]interface{}{
		"rows":     len(plan.Rows),
		"size":     humanize.IBytes(uint64(buf.Len())),
		"duration": p.Elapsed().String(),
	}})

	return &Result{
		PassID:  p.ID,
		Output:  buf.String(),
		Plan:    plan,
		Changes: view.ChangeMap(),
	}, nil
}

// RunTable renders a loaded dataset
func (e *Engine) RunTable(t *storage.Table, grid *config.Grid, outputFormat string) (*Result, error) {
	return e.Run(Request{Rows: t.Rows, Columns: t.Columns, Grid: grid, Format: outputFormat})
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify stamps the event with the pass identity and sends it to all registered observers
func (e *Engine) notify(p *pass.Pass, event Event) {
	event.PassID = p.ID
	event.PassSeq = p.Seq
	event.Timestamp = time.Now()
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}
