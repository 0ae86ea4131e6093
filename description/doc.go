// Package description holds declarative presentation properties for streamed
// 3D assets: the asset URI, scaling bounds, visibility and animation flags,
// and the highlight color the inversion stage tints unclassified fragments
// with.
//
// A Model is a layered property container. Fields are tri-state: unset fields
// report a documented default and are distinguishable from fields explicitly
// set to that same value, which is what makes Merge meaningful. Change
// listeners let the rendering side react to host-driven edits without
// polling.
package description
