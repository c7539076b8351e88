// Package table turns a row dataset and a list of column definitions into an
// immutable grid snapshot that supports sorting, column visibility and export.
//
// The package never owns the data. Callers keep a State value (sort keys and
// hidden columns), feed it to Build together with the rows, and replace it
// with the value returned by ToggleSort, ToggleSortMulti or ToggleVisibility
// when the user interacts with the grid:
//
//	model, err := table.Build(rows, columns, state)
//	if err != nil {
//		return err // duplicate or unknown column keys
//	}
//	state, err = table.ToggleSort(model.State(), "score")
//
// Export always reads the base rows in their original order across every
// defined column, so downloads do not depend on the current view.
package table
