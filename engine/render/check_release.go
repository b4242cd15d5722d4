//go:build release

package render

// Render contexts are assumed correct in release builds.
const checkContext = false
