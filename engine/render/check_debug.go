//go:build !release

package render

const checkContext = true
