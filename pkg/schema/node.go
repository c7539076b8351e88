package schema

import "strings"

// Kind tags a schema node variant. Renderers dispatch on the concrete node type
// and fall back to the kind when looking up extension renderers.
type Kind string

const (
	KindBoolean  Kind = "boolean"
	KindString   Kind = "string"
	KindNumber   Kind = "number"
	KindEnum     Kind = "enum"
	KindEffects  Kind = "effects"
	KindOptional Kind = "optional"
	KindObject   Kind = "object"
)

// Kinds lists the built-in node kinds in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindBoolean,
		KindString,
		KindNumber,
		KindEnum,
		KindEffects,
		KindOptional,
		KindObject,
	}
}

// Meta carries the display metadata every node variant exposes to renderers.
type Meta struct {
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

// Node describes an expected data shape. The built-in variants are the
// pointer types declared in this file; packages may declare additional kinds
// and register matching renderers for them.
type Node interface {
	Kind() Kind
	Info() Meta
}

// Wrapper is implemented by nodes that decorate an inner node without changing
// how it renders.
type Wrapper interface {
	Node
	Inner() Node
}

// Boolean renders as a checkbox.
type Boolean struct {
	Meta    Meta
	Default bool
}

func (n *Boolean) Kind() Kind { return KindBoolean }
func (n *Boolean) Info() Meta { return n.Meta }

// String covers single line, multi line and formatted (email, url) text.
type String struct {
	Meta      Meta
	Format    string
	Multiline bool
	MinLength *int
	MaxLength *int
	Pattern   string
	Default   string
}

func (n *String) Kind() Kind { return KindString }
func (n *String) Info() Meta { return n.Meta }

// Number covers integer and floating point inputs.
type Number struct {
	Meta    Meta
	Integer bool
	Min     *float64
	Max     *float64
	Default *float64
}

func (n *Number) Kind() Kind { return KindNumber }
func (n *Number) Info() Meta { return n.Meta }

// Choice is a single enumeration option.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Display returns the label or falls back to the value.
func (c Choice) Display() string {
	if strings.TrimSpace(c.Label) != "" {
		return c.Label
	}
	return c.Value
}

// Enum restricts a value to a fixed list of choices.
type Enum struct {
	Meta    Meta
	Choices []Choice
	Default string
}

func (n *Enum) Kind() Kind { return KindEnum }
func (n *Enum) Info() Meta { return n.Meta }

// Values returns the raw choice values in order.
func (n *Enum) Values() []string {
	out := make([]string, 0, len(n.Choices))
	for _, choice := range n.Choices {
		out = append(out, choice.Value)
	}
	return out
}

// Effects wraps a node with a refinement and/or transform applied on submit.
// Rendering ignores the wrapper entirely.
type Effects struct {
	Of        Node
	Name      string
	Transform func(any) any
	Refine    func(any) error
}

func (n *Effects) Kind() Kind  { return KindEffects }
func (n *Effects) Inner() Node { return n.Of }

func (n *Effects) Info() Meta {
	if n.Of == nil {
		return Meta{}
	}
	return n.Of.Info()
}

// Optional marks the inner node as not required.
type Optional struct {
	Of Node
}

func (n *Optional) Kind() Kind  { return KindOptional }
func (n *Optional) Inner() Node { return n.Of }

func (n *Optional) Info() Meta {
	if n.Of == nil {
		return Meta{}
	}
	meta := n.Of.Info()
	meta.Required = false
	return meta
}

// Field binds a property name to a node inside an Object.
type Field struct {
	Name string
	Node Node
}

// Object groups ordered fields. Field order is render order.
type Object struct {
	Meta   Meta
	Fields []Field
}

func (n *Object) Kind() Kind { return KindObject }
func (n *Object) Info() Meta { return n.Meta }

// Field returns the node registered under name.
func (n *Object) Field(name string) (Node, bool) {
	for _, field := range n.Fields {
		if field.Name == name {
			return field.Node, true
		}
	}
	return nil, false
}

// Unwrap strips every wrapper layer and returns the innermost node.
func Unwrap(node Node) Node {
	for node != nil {
		wrapper, ok := node.(Wrapper)
		if !ok {
			return node
		}
		node = wrapper.Inner()
	}
	return nil
}

// IsRequired reports whether a value must be supplied for node. Optional
// wrappers win over the inner metadata.
func IsRequired(node Node) bool {
	switch n := node.(type) {
	case nil:
		return false
	case *Optional:
		return false
	case *Effects:
		return IsRequired(n.Of)
	default:
		return node.Info().Required
	}
}
