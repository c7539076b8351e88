package openapi

import "context"

// Violation is one problem found in the adminkit extensions of a document.
type Violation struct {
	// Location is a " > " separated path such as
	// "components > schemas > StudentInput > properties > track".
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

// Linter reports unsupported or malformed x-adminkit-* extensions.
type Linter interface {
	Lint(ctx context.Context, doc Document) ([]Violation, error)
}
