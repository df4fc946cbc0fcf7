package explorer

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cfgexplorer/pkg/errors"
	"github.com/matzehuels/cfgexplorer/pkg/graph"
	"github.com/matzehuels/cfgexplorer/pkg/input"
	"github.com/matzehuels/cfgexplorer/pkg/layout"
	"github.com/matzehuels/cfgexplorer/pkg/navigation"
	"github.com/matzehuels/cfgexplorer/pkg/observability"
	"github.com/matzehuels/cfgexplorer/pkg/render"
	"github.com/matzehuels/cfgexplorer/pkg/viewport"
)

// =============================================================================
// Options
// =============================================================================

// Option configures an Explorer.
type Option func(*Explorer)

// WithLogger sets the logger for load and navigation events.
// The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Explorer) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHooks overrides the explorer hooks registered with
// observability.SetExplorerHooks.
func WithHooks(h observability.ExplorerHooks) Option {
	return func(e *Explorer) {
		if h != nil {
			e.hooks = h
		}
	}
}

// WithTheme sets the color theme used to paint frames.
func WithTheme(t render.Theme) Option {
	return func(e *Explorer) { e.theme = &t }
}

// =============================================================================
// Explorer
// =============================================================================

// Explorer is the controller for one exploration session.
type Explorer struct {
	surface  render.Surface
	panel    Panel
	renderer *render.Renderer
	theme    *render.Theme
	logger   *log.Logger
	hooks    observability.ExplorerHooks

	doc     *graph.CrateDocument
	fnIndex int
	layout  *layout.GraphLayout
	nav     *navigation.State
	vp      viewport.Viewport
}

// New creates an explorer that paints onto surface and reports the current
// block to panel. Nothing is drawn until a document is loaded.
func New(surface render.Surface, panel Panel, opts ...Option) (*Explorer, error) {
	if surface == nil {
		return nil, errors.New(errors.ErrCodeInitialization, "drawing surface not resolved")
	}
	if panel == nil {
		return nil, errors.New(errors.ErrCodeInitialization, "context panel not resolved")
	}

	e := &Explorer{
		surface: surface,
		panel:   panel,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		hooks:   observability.Explorer(),
		vp:      viewport.New(),
	}
	for _, opt := range opts {
		opt(e)
	}

	var ropts []render.Option
	if e.theme != nil {
		ropts = append(ropts, render.WithTheme(*e.theme))
	}
	e.renderer = render.NewRenderer(ropts...)
	return e, nil
}

// =============================================================================
// Document
// =============================================================================

// Load parses a JSON document and selects its first function.
//
// A malformed document returns a DOCUMENT_PARSE error and a document without
// functions returns EMPTY_DOCUMENT. Either way the previous document, if any,
// stays loaded.
func (e *Explorer) Load(data []byte) error {
	doc, err := graph.Parse(data)
	if err != nil {
		e.logger.Debug("load rejected", "error", err)
		e.hooks.OnLoad("", 0, err)
		return err
	}
	return e.LoadDocument(doc)
}

// LoadDocument validates and loads an already decoded document.
func (e *Explorer) LoadDocument(doc *graph.CrateDocument) error {
	if doc == nil {
		err := errors.New(errors.ErrCodeDocumentParse, "document is nil")
		e.hooks.OnLoad("", 0, err)
		return err
	}
	if err := doc.Validate(); err != nil {
		e.logger.Debug("load rejected", "crate", doc.Name, "error", err)
		e.hooks.OnLoad(doc.Name, len(doc.Functions), err)
		return err
	}

	e.doc = doc
	e.logger.Debug("document loaded", "crate", doc.Name, "functions", len(doc.Functions))
	e.hooks.OnLoad(doc.Name, len(doc.Functions), nil)
	e.SelectFunction(0)
	return nil
}

// FunctionCount returns the number of functions, 0 before a load.
func (e *Explorer) FunctionCount() int {
	if e.doc == nil {
		return 0
	}
	return len(e.doc.Functions)
}

// FunctionName returns the display name of function i.
func (e *Explorer) FunctionName(i int) (string, bool) {
	if e.doc == nil || i < 0 || i >= len(e.doc.Functions) {
		return "", false
	}
	return e.doc.Functions[i].DisplayName(), true
}

// CrateName returns the loaded document's crate name.
func (e *Explorer) CrateName() (string, bool) {
	if e.doc == nil {
		return "", false
	}
	return e.doc.Name, true
}

// =============================================================================
// Navigation
// =============================================================================

// SelectFunction switches to function i: the layout is computed once, the
// view is fitted and navigation restarts at the entry block.
func (e *Explorer) SelectFunction(i int) {
	if e.doc == nil || i < 0 || i >= len(e.doc.Functions) {
		return
	}
	fn := &e.doc.Functions[i]

	start := time.Now()
	l := layout.Compute(fn)
	elapsed := time.Since(start)
	e.logger.Debug("layout computed", "function", fn.Name, "nodes", len(l.Nodes),
		"edges", len(l.Edges), "layers", l.LayerCount(), "duration", elapsed)
	e.hooks.OnLayout(fn.Name, len(l.Nodes), len(l.Edges), elapsed)

	e.fnIndex = i
	e.layout = l
	e.nav = navigation.Start(fn)
	e.vp.FitToView(e.surface.Size(), l.Bounds)
	e.Render()
}

// GoToBlock moves to block id, recording the current block on the path.
func (e *Explorer) GoToBlock(id int) {
	if e.nav != nil && e.nav.GoTo(id, true) {
		e.moved()
	}
}

// GoBack returns to the previous block on the path.
func (e *Explorer) GoBack() {
	if e.nav != nil && e.nav.GoBack() {
		e.moved()
	}
}

// Reset clears the path and returns to the entry block.
func (e *Explorer) Reset() {
	if e.nav != nil && e.nav.Reset() {
		e.moved()
	}
}

// FollowEdge moves along the current block's i-th outgoing edge.
func (e *Explorer) FollowEdge(i int) {
	if e.nav != nil && e.nav.FollowEdge(i) {
		e.moved()
	}
}

// SelectNextEdge cycles the selected edge forward.
func (e *Explorer) SelectNextEdge() {
	if e.nav != nil && e.nav.SelectNextEdge() {
		e.Render()
	}
}

// SelectPrevEdge cycles the selected edge backward.
func (e *Explorer) SelectPrevEdge() {
	if e.nav != nil && e.nav.SelectPrevEdge() {
		e.Render()
	}
}

// moved recenters on the new current block and repaints.
func (e *Explorer) moved() {
	if n, ok := e.layout.Node(e.nav.Current()); ok {
		e.vp.CenterOn(n.Rect(), e.surface.Size())
	}
	e.logger.Debug("navigated", "block", e.nav.Current(), "depth", e.nav.Depth())
	e.Render()
}

// =============================================================================
// Input
// =============================================================================

// HandleKey applies the action bound to key and reports whether the key was
// handled. FocusSearch is reported unhandled so the host can open its own
// search UI.
func (e *Explorer) HandleKey(key string) bool {
	a := input.ParseKey(key)
	handled := true
	switch a.Kind {
	case input.GoBack:
		e.GoBack()
	case input.Reset:
		e.Reset()
	case input.SelectEdge:
		e.FollowEdge(a.Edge)
	case input.MoveDown:
		e.SelectNextEdge()
	case input.MoveUp:
		e.SelectPrevEdge()
	case input.MoveRight:
		if e.nav != nil {
			e.FollowEdge(e.nav.SelectedEdge())
		}
	case input.FocusSearch, input.None:
		handled = false
	}
	e.hooks.OnAction(a.String(), handled)
	return handled
}

// HandleWheel zooms around the pointer at (x, y): out when deltaY is
// positive, in otherwise.
func (e *Explorer) HandleWheel(deltaY, x, y float64) {
	dir := viewport.ZoomIn
	if deltaY > 0 {
		dir = viewport.ZoomOut
	}
	e.vp.Zoom(dir, viewport.Point{X: x, Y: y})
	e.Render()
}

// HandleDrag pans the view by (dx, dy) screen units.
func (e *Explorer) HandleDrag(dx, dy float64) {
	e.vp.Pan(dx, dy)
	e.Render()
}

// HandleClick jumps to the block under the screen point (x, y) and reports
// whether there was one.
func (e *Explorer) HandleClick(x, y float64) bool {
	id, ok := e.BlockAt(x, y)
	if !ok {
		return false
	}
	e.GoToBlock(id)
	return true
}

// FitToView scales and centers the whole graph on the surface.
func (e *Explorer) FitToView() {
	if e.layout != nil {
		e.vp.FitToView(e.surface.Size(), e.layout.Bounds)
	}
	e.Render()
}

// =============================================================================
// Rendering
// =============================================================================

// Render repaints the surface and refreshes the panel. It does nothing
// before a document is loaded.
func (e *Explorer) Render() {
	fn, ok := e.CurrentFunction()
	if !ok || e.layout == nil {
		return
	}

	start := time.Now()
	e.renderer.Render(e.surface, render.Frame{
		Walk:     e.nav.Walk(),
		Layout:   e.layout,
		Viewport: e.vp,
	})
	e.hooks.OnRender(time.Since(start))

	if info, ok := e.BlockInfo(); ok {
		e.panel.Update(info, fn.Locals)
	}
}

// =============================================================================
// Queries
// =============================================================================

// CurrentFunction returns the selected function.
func (e *Explorer) CurrentFunction() (*graph.FunctionDoc, bool) {
	if e.doc == nil || e.fnIndex >= len(e.doc.Functions) {
		return nil, false
	}
	return &e.doc.Functions[e.fnIndex], true
}

// BlockAt returns the id of the block drawn under the screen point (x, y).
func (e *Explorer) BlockAt(x, y float64) (int, bool) {
	n, ok := e.layout.NodeAt(e.vp.ToGraph(viewport.Point{X: x, Y: y}))
	if !ok {
		return 0, false
	}
	return n.ID, true
}

// SelectedFunction returns the selected function's index.
func (e *Explorer) SelectedFunction() int { return e.fnIndex }

// Layout returns the cached layout of the selected function, or nil.
func (e *Explorer) Layout() *layout.GraphLayout { return e.layout }

// Viewport returns the current view transform.
func (e *Explorer) Viewport() viewport.Viewport { return e.vp }

// Current returns the current block id.
func (e *Explorer) Current() (int, bool) {
	if e.nav == nil {
		return 0, false
	}
	return e.nav.Current(), true
}

// SelectedEdge returns the selected outgoing edge index of the current block.
func (e *Explorer) SelectedEdge() int {
	if e.nav == nil {
		return 0
	}
	return e.nav.SelectedEdge()
}

// Path returns the visited-block stack, oldest first.
func (e *Explorer) Path() []int {
	if e.nav == nil {
		return nil
	}
	return e.nav.Path()
}

// Breadcrumb returns the path followed by the current block.
func (e *Explorer) Breadcrumb() []int {
	if e.nav == nil {
		return nil
	}
	return append(e.nav.Path(), e.nav.Current())
}

// BlockInfo describes the current block.
func (e *Explorer) BlockInfo() (BlockInfo, bool) {
	fn, ok := e.CurrentFunction()
	if !ok || e.nav == nil {
		return BlockInfo{}, false
	}
	b, ok := fn.Block(e.nav.Current())
	if !ok {
		return BlockInfo{}, false
	}
	return newBlockInfo(b, e.nav.Path(), e.nav.SelectedEdge()), true
}

// BlockInfoJSON returns [Explorer.BlockInfo] encoded as JSON.
func (e *Explorer) BlockInfoJSON() (string, bool) {
	info, ok := e.BlockInfo()
	if !ok {
		return "", false
	}
	return marshalString(info)
}

// LocalsJSON returns the selected function's locals encoded as a JSON array.
func (e *Explorer) LocalsJSON() (string, bool) {
	fn, ok := e.CurrentFunction()
	if !ok {
		return "", false
	}
	return marshalString(orEmpty(fn.Locals))
}
