// Package kernel provides the shared domain primitives used by every aggregate
// of the shop-floor engine.
//
// The package includes:
//   - UUID: the immutable identifier value object used for parts
//   - Clock: the source of "now" for task start/close times and the paint cure window
//
// Both are safe for concurrent use.
package kernel
