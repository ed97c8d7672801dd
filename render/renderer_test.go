package render

import (
	"image/color"
	"testing"

	"github.com/gogv/gview"
	"github.com/gogv/gview/backend"
	"github.com/gogv/gview/memscene"
)

// testScene is the canonical scenario: a background group, a
// shadow-casting node group at z=1 and a plain edge group at z=2.
func testScene() *memscene.Scene {
	sc := memscene.New()

	bg := sc.AddGroup("background", gview.KindGraph, 0, false)
	bg.SetColors(color.White, color.White)

	nodes := sc.AddGroup("nodes", gview.KindNode, 1, true)
	nodes.SetColors(color.RGBA{R: 0x40, G: 0x80, B: 0xc0, A: 0xff}, color.Black)
	nodes.AddNode("a", 0, 0)
	nodes.AddNode("b", 2, 0)

	edges := sc.AddGroup("edges", gview.KindEdge, 2, false)
	edges.SetColors(color.Gray{Y: 0x40}, color.Gray{Y: 0x40})
	edges.AddEdge("ab", "a", "b")

	sc.Open()
	return sc
}

func newTestRenderer(t *testing.T, sc gview.Scene) (*Renderer, *backend.RecordBackend) {
	t.Helper()
	bk := backend.NewRecordBackend()
	r := New(sc, WithBackend(bk))
	if err := r.Open(backend.NewImageSurface(100, 100)); err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	bk.Reset()
	return r, bk
}

func firstIndex(names []string, want string) int {
	for i, n := range names {
		if n == want {
			return i
		}
	}
	return -1
}

func TestRenderDetachedSceneIsNoop(t *testing.T) {
	sc := testScene()
	sc.Close()
	r, bk := newTestRenderer(t, sc)
	if err := r.Render(100, 100); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := len(bk.Ops()); n != 0 {
		t.Errorf("detached scene produced %d backend calls, want 0: %v", n, bk.OpNames())
	}
}

func TestRenderClosedRendererIsNoop(t *testing.T) {
	sc := testScene()
	bk := backend.NewRecordBackend()
	r := New(sc, WithBackend(bk))
	// Never opened.
	if err := r.Render(100, 100); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := len(bk.Ops()); n != 0 {
		t.Errorf("closed renderer produced %d backend calls, want 0", n)
	}
}

func TestFrameSequence(t *testing.T) {
	sc := testScene()
	r, bk := newTestRenderer(t, sc)

	if err := r.Render(100, 100); err != nil {
		t.Fatalf("Render: %v", err)
	}

	names := bk.OpNames()
	clear := firstIndex(names, "clear")
	push := firstIndex(names, "push")
	circle := firstIndex(names, "drawCircle")
	line := firstIndex(names, "drawLine")
	pop := firstIndex(names, "pop")

	if clear < 0 || push < 0 || circle < 0 || line < 0 || pop < 0 {
		t.Fatalf("missing frame steps in %v", names)
	}
	// background → view push → nodes (z=1) → edges (z=2) → view pop.
	if !(clear < push && push < circle && circle < line && line < pop) {
		t.Errorf("frame order wrong: clear=%d push=%d circle=%d line=%d pop=%d",
			clear, push, circle, line, pop)
	}

	// Push/pop balanced across the frame.
	pushes, pops := 0, 0
	for _, n := range names {
		switch n {
		case "push":
			pushes++
		case "pop":
			pops++
		}
	}
	if pushes != pops {
		t.Errorf("pushes = %d, pops = %d, want balanced", pushes, pops)
	}
	if d := r.Camera().Depth(); d != 0 {
		t.Errorf("camera depth after frame = %d, want 0", d)
	}
}

func TestShadowPassPrecedesNormalPass(t *testing.T) {
	sc := testScene()
	r, bk := newTestRenderer(t, sc)

	if err := r.Render(100, 100); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Node "a" sits at the origin. Shadow circles are offset, normal
	// circles are exact, so the first circle at x==0 marks the start of
	// the normal pass; every offset circle must come before it.
	var circles []backend.Op
	for _, op := range bk.Ops() {
		if op.Name == "drawCircle" {
			circles = append(circles, op)
		}
	}
	// 2 shadow + 2 fill + 2 border circles.
	if len(circles) != 6 {
		t.Fatalf("drawCircle count = %d, want 6", len(circles))
	}

	firstExact := -1
	for i, op := range circles {
		if op.Args[0] == 0 && op.Args[1] == 0 {
			firstExact = i
			break
		}
	}
	if firstExact < 0 {
		t.Fatal("no normal-pass circle found at node position")
	}
	for i := 0; i < firstExact; i++ {
		if circles[i].Args[0] == 0 && circles[i].Args[1] == 0 {
			t.Errorf("circle %d is unshifted before the normal pass", i)
		}
	}
	if firstExact != 2 {
		t.Errorf("normal pass starts at circle %d, want 2 (after both shadows)", firstExact)
	}
}

func TestZOrderSortsGroupsAndExcludesGraph(t *testing.T) {
	sc := memscene.New()
	sc.AddGroup("background", gview.KindGraph, 0, false)
	sc.AddGroup("high", gview.KindNode, 5, false)
	sc.AddGroup("low", gview.KindEdge, 1, false)
	sc.AddGroup("mid", gview.KindDecor, 3, false)
	sc.Open()

	got := zOrdered(sc)
	want := []string{"low", "mid", "high"}
	if len(got) != len(want) {
		t.Fatalf("zOrdered returned %d groups, want %d", len(got), len(want))
	}
	for i, g := range got {
		if g.ID() != want[i] {
			t.Errorf("zOrdered[%d] = %q, want %q", i, g.ID(), want[i])
		}
	}
}

func TestGroupCacheIdentityAndRemoval(t *testing.T) {
	sc := testScene()
	var nodes gview.StyleGroup
	for _, g := range sc.Groups() {
		if g.ID() == "nodes" {
			nodes = g
		}
	}

	c := newGroupCache()
	r1 := c.Renderer(nodes)
	r2 := c.Renderer(nodes)
	if r1 != r2 {
		t.Error("Renderer(group) returned different instances across calls")
	}

	c.RemoveAll()
	if r3 := c.Renderer(nodes); r3 == r1 {
		t.Error("Renderer(group) after RemoveAll returned the removed instance")
	}
}

func TestGroupCacheGraphSlotIsDistinct(t *testing.T) {
	sc := testScene()
	groups := sc.Groups()

	c := newGroupCache()
	graph := c.Renderer(groups[0]) // background
	nodes := c.Renderer(groups[1])
	if graph == nodes {
		t.Error("graph-level renderer shares the per-group slot")
	}
	if g2 := c.Renderer(groups[0]); g2 != graph {
		t.Error("graph-level slot is not cached")
	}
}

func TestGroupCachePrune(t *testing.T) {
	sc := testScene()
	var edges gview.StyleGroup
	for _, g := range sc.Groups() {
		if g.ID() == "edges" {
			edges = g
		}
	}

	c := newGroupCache()
	c.Renderer(edges)
	if len(c.byGroup) != 1 {
		t.Fatalf("cache size = %d, want 1", len(c.byGroup))
	}

	sc.RemoveGroup("edges")
	c.Prune(sc)
	if len(c.byGroup) != 0 {
		t.Errorf("cache size after Prune = %d, want 0", len(c.byGroup))
	}
}

func TestQualityHintsFollowSceneAttributes(t *testing.T) {
	sc := testScene()
	sc.SetAttribute(gview.AttrAntialias, "false")
	r, bk := newTestRenderer(t, sc)

	if err := r.Render(100, 100); err != nil {
		t.Fatal(err)
	}

	found := false
	for _, op := range bk.Ops() {
		if op.Name == "setAntialias" {
			found = true
			if op.Args[0] != 0 {
				t.Errorf("setAntialias arg = %v, want 0", op.Args[0])
			}
		}
	}
	if !found {
		t.Error("no setAntialias call recorded")
	}
}

func TestLayerHooksBracketTheView(t *testing.T) {
	sc := testScene()
	bk := backend.NewRecordBackend()

	backMark := func(ctx backend.DrawContext, _ gview.Scene, ratio float64,
		w, h int, lo, hi gview.Point) {
		if ratio <= 0 {
			t.Errorf("back layer ratio = %v, want > 0", ratio)
		}
		if w != 100 || h != 100 {
			t.Errorf("back layer viewport = %dx%d, want 100x100", w, h)
		}
		if !(lo.X < hi.X && lo.Y < hi.Y) {
			t.Errorf("back layer visible region lo=%v hi=%v", lo, hi)
		}
		ctx.DrawRectangle(-111, 0, 1, 1)
	}
	foreMark := func(ctx backend.DrawContext, _ gview.Scene, _ float64,
		_, _ int, _, _ gview.Point) {
		ctx.DrawRectangle(-222, 0, 1, 1)
	}

	r := New(sc, WithBackend(bk),
		WithBackLayer(LayerFunc(backMark)),
		WithForeLayer(LayerFunc(foreMark)))
	if err := r.Open(backend.NewImageSurface(100, 100)); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	bk.Reset()

	if err := r.Render(100, 100); err != nil {
		t.Fatal(err)
	}

	back, fore, push, pop := -1, -1, -1, -1
	for i, op := range bk.Ops() {
		switch {
		case op.Name == "drawRectangle" && op.Args[0] == -111:
			back = i
		case op.Name == "drawRectangle" && op.Args[0] == -222:
			fore = i
		case op.Name == "push" && push < 0:
			push = i
		case op.Name == "pop":
			pop = i
		}
	}
	if back < 0 || fore < 0 {
		t.Fatal("layer hooks did not run")
	}
	if !(back < push && pop < fore) {
		t.Errorf("layer order wrong: back=%d push=%d pop=%d fore=%d", back, push, pop, fore)
	}
}

func TestSelectionOverlayRendersLast(t *testing.T) {
	sc := testScene()
	sel := memscene.NewSelection()
	sel.Begin(10, 10)
	sel.Grow(40, 30)

	bk := backend.NewRecordBackend()
	r := New(sc, WithBackend(bk), WithSelection(sel))
	if err := r.Open(backend.NewImageSurface(100, 100)); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	bk.Reset()

	if err := r.Render(100, 100); err != nil {
		t.Fatal(err)
	}

	names := bk.OpNames()
	rect := firstIndex(names, "drawRectangle")
	pop := firstIndex(names, "pop")
	if rect < 0 {
		t.Fatal("selection overlay drew nothing")
	}
	if rect < pop {
		t.Errorf("selection drawn at %d, before view pop at %d", rect, pop)
	}

	// Inactive selection draws nothing.
	sel.End()
	bk.Reset()
	if err := r.Render(100, 100); err != nil {
		t.Fatal(err)
	}
	if i := firstIndex(bk.OpNames(), "drawRectangle"); i >= 0 {
		t.Error("inactive selection still drew a rectangle")
	}
}

func TestRenderWithoutGraphGroupUsesConfigBackground(t *testing.T) {
	sc := memscene.New()
	nodes := sc.AddGroup("nodes", gview.KindNode, 1, false)
	nodes.AddNode("a", 0, 0)
	sc.Open()

	r, bk := newTestRenderer(t, sc)
	if err := r.Render(100, 100); err != nil {
		t.Fatal(err)
	}
	if firstIndex(bk.OpNames(), "clear") < 0 {
		t.Error("no background clear without a graph group")
	}
}
