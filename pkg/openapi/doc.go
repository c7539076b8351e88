// Package openapi turns OpenAPI request bodies into form schemas. The types
// here are plain wrappers; the kin-openapi backed loader and parser live under
// internal/openapi and are constructed through the adminkit package.
package openapi
