package schema

import (
	"errors"
	"fmt"
	"strings"
)

// NewObject returns an object node holding fields in the supplied order.
func NewObject(meta Meta, fields ...Field) *Object {
	return &Object{Meta: meta, Fields: append([]Field(nil), fields...)}
}

// Prop is shorthand for an object field.
func Prop(name string, node Node) Field {
	return Field{Name: name, Node: node}
}

// MakeOptional wraps node so it is no longer required.
func MakeOptional(node Node) *Optional {
	return &Optional{Of: node}
}

// Refine wraps node with a named validation refinement.
func Refine(node Node, name string, fn func(any) error) *Effects {
	return &Effects{Of: node, Name: name, Refine: fn}
}

// Transform wraps node with a named value transform applied before validation.
func Transform(node Node, name string, fn func(any) any) *Effects {
	return &Effects{Of: node, Name: name, Transform: fn}
}

// ErrBlank is returned by the nonblank refinement.
var ErrBlank = errors.New("must not be blank")

type effectFactory func(Node) *Effects

var builtinEffects = map[string]effectFactory{
	"trim": func(node Node) *Effects {
		return Transform(node, "trim", func(value any) any {
			if s, ok := value.(string); ok {
				return strings.TrimSpace(s)
			}
			return value
		})
	},
	"lowercase": func(node Node) *Effects {
		return Transform(node, "lowercase", func(value any) any {
			if s, ok := value.(string); ok {
				return strings.ToLower(s)
			}
			return value
		})
	},
	"nonblank": func(node Node) *Effects {
		return Refine(node, "nonblank", func(value any) error {
			if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
				return ErrBlank
			}
			return nil
		})
	},
}

// ApplyEffect wraps node with the built-in effect registered under name
// (trim, lowercase, nonblank).
func ApplyEffect(node Node, name string) (*Effects, error) {
	factory, ok := builtinEffects[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("schema: unknown effect %q", name)
	}
	return factory(node), nil
}
