// Package form maps schema nodes onto input controls. Renderer.Render picks
// exactly one control per node kind, unwrapping Effects and Optional wrappers
// transparently, and fails with ErrNoRenderer rather than dropping a field it
// cannot draw. RenderForm walks a whole object schema against a
// formstate.State. The resulting Control tree is markup free; the vanilla and
// tui renderers turn it into HTML or terminal prompts.
package form
