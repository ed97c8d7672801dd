// Package backend abstracts the drawing surface and raw drawing context
// that gview renders into.
//
// A Backend owns exactly one Surface between Open and Close and hands out
// a DrawContext bound per frame by PrepareNewFrame. Element renderers never
// touch the concrete drawing API: they describe geometry through skeletons
// built by the backend's SkeletonFactory and draw through the DrawContext,
// which is what lets one renderer implementation target every backend.
//
// Backends register themselves by name via Register and are selected with
// Get or Default.
package backend
