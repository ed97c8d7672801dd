// Package gview renders a dynamic, styled scene graph onto a pixel surface
// through a pluggable drawing backend.
//
// # Overview
//
// A scene is a set of style groups: elements (nodes, edges, decorations)
// that share one visual rule set. gview draws a scene in a deterministic
// multi-pass frame: background, back layer, shadow pass, z-ordered normal
// pass, fore layer, selection overlay. The camera maps graph units to
// pixels and is the single source of projection state for every pass.
//
// # Quick start
//
//	sc := memscene.New()
//	nodes := sc.AddGroup("nodes", gview.KindNode, 1, false)
//	nodes.AddNode("a", 0, 0)
//	nodes.AddNode("b", 3, 2)
//	sc.Open()
//
//	r := render.New(sc)
//	surf := backend.NewImageSurface(800, 600)
//	if err := r.Open(surf); err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//
//	if err := r.Render(800, 600); err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
// The module is organized into:
//   - Root package: camera, affine geometry, collaborator interfaces, config
//   - backend/: drawing-surface abstraction and concrete backends
//   - render/: frame orchestrator, style-group renderer cache, export
//   - memscene/: in-memory scene implementation
//
// The backend is a leaf dependency: renderers describe geometry through
// backend-independent skeletons and draw through the backend's DrawContext,
// so the same style-group renderer code targets any registered backend.
//
// # Coordinate system
//
// Graph units are arbitrary; the camera derives a pixels-per-unit ratio
// from the scene bounds and the viewport (zoom to fit) unless an explicit
// zoom, center or rotation overrides it. Pixel coordinates follow image
// conventions: origin top-left, y down.
package gview
