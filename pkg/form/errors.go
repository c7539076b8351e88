package form

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-adminkit/pkg/schema"
)

// ErrNoRenderer matches every *NoRendererError through errors.Is.
var ErrNoRenderer = errors.New("form: no renderer for schema kind")

// NoRendererError reports a node whose kind has no built-in or registered
// renderer.
type NoRendererError struct {
	Kind schema.Kind
	Name string
}

func (e *NoRendererError) Error() string {
	return fmt.Sprintf("form: no renderer for schema kind %q (field %q)", e.Kind, e.Name)
}

func (e *NoRendererError) Is(target error) bool {
	return target == ErrNoRenderer
}
