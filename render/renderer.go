package render

import (
	"fmt"
	"sort"

	"github.com/gogv/gview"
	"github.com/gogv/gview/backend"
)

// Option configures a Renderer during creation.
type Option func(*Renderer)

// WithBackend selects the drawing backend. The default is the registry's
// Default backend.
func WithBackend(bk backend.Backend) Option {
	return func(r *Renderer) { r.bk = bk }
}

// WithConfig installs viewer defaults (colors, quality hints, fps log).
func WithConfig(cfg gview.Config) Option {
	return func(r *Renderer) { r.cfg = cfg }
}

// WithSelection attaches the interactive selection collaborator. Its
// overlay renderer is created lazily on first use.
func WithSelection(sel gview.Selection) Option {
	return func(r *Renderer) { r.sel = sel }
}

// WithBackLayer installs a hook drawn after the background, before the
// view transform is pushed.
func WithBackLayer(l LayerRenderer) Option {
	return func(r *Renderer) { r.back = l }
}

// WithForeLayer installs a hook drawn after the view transform is popped,
// before the selection overlay.
func WithForeLayer(l LayerRenderer) Option {
	return func(r *Renderer) { r.fore = l }
}

// Renderer sequences complete frames against one scene. It owns the
// backend between Open and Close, the camera, and the per-group renderer
// cache. Not safe for concurrent use: callers serialize Render calls.
type Renderer struct {
	scene  gview.Scene
	cam    *gview.Camera
	bk     backend.Backend
	cfg    gview.Config
	groups *groupCache

	sel  gview.Selection
	selR *selectionRenderer

	back, fore LayerRenderer

	fps  *frameLog
	open bool
}

// New creates a renderer for the scene.
func New(scene gview.Scene, opts ...Option) *Renderer {
	r := &Renderer{
		scene:  scene,
		cam:    gview.NewCamera(),
		cfg:    gview.DefaultConfig(),
		groups: newGroupCache(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.bk == nil {
		r.bk = backend.Default()
	}
	return r
}

// Camera returns the camera. Callers use it for interactive control
// (zoom, pan, rotate) and for picking queries.
func (r *Renderer) Camera() *gview.Camera { return r.cam }

// Backend returns the drawing backend.
func (r *Renderer) Backend() backend.Backend { return r.bk }

// Open acquires the drawing surface and installs the backend's geometry
// factory on the scene. Opening an already-open renderer is a
// precondition violation.
func (r *Renderer) Open(s backend.Surface) error {
	if r.open {
		return backend.ErrAlreadyOpen
	}
	if err := r.bk.Open(s); err != nil {
		return err
	}
	r.scene.SetSkeletonFactory(r.bk.SkeletonFactory())
	r.open = true
	gview.Logger().Info("renderer open",
		"backend", r.bk.Name(), "width", s.Width(), "height", s.Height())
	return nil
}

// Close tears the renderer down: instrumentation, the renderer cache and
// the backend are released deterministically, in that order. This is the
// only abort path for a renderer.
func (r *Renderer) Close() error {
	if !r.open {
		return backend.ErrNotOpen
	}
	if r.fps != nil {
		r.fps.close()
		r.fps = nil
	}
	r.groups.RemoveAll()
	r.selR = nil
	err := r.bk.Close()
	r.open = false
	gview.Logger().Info("renderer closed")
	return err
}

// Render executes one complete frame at the given pixel size. On a closed
// renderer or a detached scene it is a no-op performing zero backend
// calls; that is the only permitted skip of the sequence.
func (r *Renderer) Render(width, height int) error {
	if !r.open || !r.scene.IsOpen() {
		return nil
	}

	r.startFrame()

	r.applyHints()
	if err := r.bk.PrepareNewFrame(width, height); err != nil {
		return fmt.Errorf("render: new frame: %w", err)
	}
	r.cam.SetBackend(r.bk)
	r.cam.SetBounds(r.scene)
	r.cam.SetViewport(float64(width), float64(height))

	r.groups.Prune(r.scene)

	// Background.
	if g := graphGroup(r.scene); g != nil {
		r.groups.Renderer(g).Render(r.bk, r.cam, r.scene)
	} else if bg, err := r.cfg.BackgroundColor(); err == nil {
		r.bk.Context().Clear(bg)
	}

	if r.back != nil {
		r.renderLayer(r.back, width, height)
	}

	if err := r.cam.PushView(); err != nil {
		return err
	}

	// Shadow pass: every shadow-casting group, strictly before any
	// normal-pass drawing.
	for _, g := range r.scene.Groups() {
		if g.Kind() == gview.KindGraph || !g.CastsShadow() {
			continue
		}
		if sr, ok := r.groups.Renderer(g).(ShadowRenderer); ok {
			sr.RenderShadow(r.bk, r.cam, r.scene)
		}
	}

	// Normal pass in non-decreasing z-index order, graph type excluded.
	for _, g := range zOrdered(r.scene) {
		r.groups.Renderer(g).Render(r.bk, r.cam, r.scene)
	}

	if err := r.cam.PopView(); err != nil {
		return err
	}

	if r.fore != nil {
		r.renderLayer(r.fore, width, height)
	}

	if r.sel != nil && r.sel.Active() {
		if r.selR == nil {
			r.selR = newSelectionRenderer(r.sel, r.cfg)
		}
		r.selR.Render(r.bk, width, height)
	}

	r.endFrame()
	return nil
}

// applyHints reads the quality toggles, scene attributes overriding
// config, and forwards them to the backend. Re-read every frame; both are
// cheap side-effect-only calls.
func (r *Renderer) applyHints() {
	aa, q := r.cfg.Antialias, r.cfg.Quality
	if v, ok := r.scene.Attribute(gview.AttrAntialias); ok {
		aa = v != "false"
	}
	if v, ok := r.scene.Attribute(gview.AttrQuality); ok {
		q = v != "false"
	}
	r.bk.SetAntialias(aa)
	r.bk.SetQuality(q)
}

func (r *Renderer) renderLayer(l LayerRenderer, width, height int) {
	l.Render(r.bk.Context(), r.scene, r.cam.Ratio(), width, height,
		r.cam.VisibleLow(), r.cam.VisibleHigh())
}

// startFrame reconciles instrumentation with the scene's log attribute
// and records the frame begin time.
func (r *Renderer) startFrame() {
	path, ok := r.scene.Attribute(gview.AttrLog)
	if !ok && r.cfg.FPSLog != "" {
		path, ok = r.cfg.FPSLog, true
	}
	switch {
	case !ok && r.fps != nil:
		r.fps.close()
		r.fps = nil
	case ok && (r.fps == nil || r.fps.path != path):
		if r.fps != nil {
			r.fps.close()
		}
		r.fps = newFrameLog(path)
	}
	if r.fps != nil {
		r.fps.begin()
	}
}

func (r *Renderer) endFrame() {
	if r.fps != nil {
		r.fps.end()
	}
}

// graphGroup returns the scene's graph-level group, or nil.
func graphGroup(scene gview.Scene) gview.StyleGroup {
	for _, g := range scene.Groups() {
		if g.Kind() == gview.KindGraph {
			return g
		}
	}
	return nil
}

// zOrdered returns the element groups sorted by ascending z-index. The
// sort is stable so a non-mutating scene renders identically each frame;
// order within one z bucket is otherwise the scene's iteration order.
func zOrdered(scene gview.Scene) []gview.StyleGroup {
	var groups []gview.StyleGroup
	for _, g := range scene.Groups() {
		if g.Kind() != gview.KindGraph {
			groups = append(groups, g)
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].ZIndex() < groups[j].ZIndex()
	})
	return groups
}
