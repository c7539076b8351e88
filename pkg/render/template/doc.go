// Package template declares the engine contract HTML renderers depend on. The
// gotemplate subpackage provides the pongo2 backed implementation; tests and
// callers can substitute their own.
package template
