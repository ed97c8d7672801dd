// Package render orchestrates gview frames.
//
// The top-level Renderer owns the camera, the backend and the per-group
// renderer cache, and sequences every frame deterministically: background,
// back layer, shadow pass, z-ordered normal pass, fore layer, selection
// overlay. Rendering is single-threaded and non-reentrant: one Render call
// runs the whole sequence to completion, and callers must serialize
// invocations against the same Renderer.
package render
