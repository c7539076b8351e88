package formstate

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-adminkit/pkg/schema"
)

// Messages reported by Validate.
const (
	MsgRequired      = "Required"
	MsgInvalidNumber = "Invalid number"
	MsgWholeNumber   = "Must be a whole number"
	MsgInvalidFormat = "Invalid format"
	MsgInvalidEmail  = "Invalid email"
	MsgInvalidURL    = "Invalid URL"
)

// ErrInvalid matches every *ValidationError through errors.Is.
var ErrInvalid = errors.New("formstate: invalid submission")

// ValidationError lists the field paths that failed validation.
type ValidationError struct {
	Fields map[string][]string
	Form   []string
}

func (e *ValidationError) Error() string {
	paths := make([]string, 0, len(e.Fields))
	for path := range e.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return "formstate: invalid submission"
	}
	return fmt.Sprintf("formstate: invalid fields: %s", strings.Join(paths, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks the submitted values in state against obj. Effects
// transforms run before the inner node is checked and refinements after it
// passes. Messages are recorded on state; the cleaned, typed values are
// returned. The error is a *ValidationError when any field failed.
func Validate(obj *schema.Object, state *State) (map[string]any, error) {
	if obj == nil {
		return nil, fmt.Errorf("formstate: schema object is required")
	}
	if state == nil {
		state = New(nil)
	}

	w := &walker{state: state}
	out := w.object(obj, "", state.Values())

	if state.Valid() {
		return out, nil
	}
	return out, &ValidationError{Fields: state.Errors(), Form: state.FormErrors()}
}

type walker struct {
	state *State
}

func (w *walker) fail(path, message string) {
	w.state.AddError(path, message)
}

func (w *walker) object(obj *schema.Object, prefix string, raw any) map[string]any {
	values, _ := raw.(map[string]any)
	out := make(map[string]any, len(obj.Fields))
	for _, field := range obj.Fields {
		path := JoinPath(prefix, field.Name)
		input, present := values[field.Name]
		if !present {
			input = nil
		}
		if value, keep := w.node(field.Node, path, input, schema.IsRequired(field.Node)); keep {
			out[field.Name] = value
		}
	}
	return out
}

// node validates raw against n and reports the cleaned value and whether it
// should be kept in the output.
func (w *walker) node(n schema.Node, path string, raw any, required bool) (any, bool) {
	switch node := n.(type) {
	case *schema.Optional:
		if isEmpty(raw) {
			return nil, false
		}
		return w.node(node.Of, path, raw, false)
	case *schema.Effects:
		if node.Transform != nil {
			raw = node.Transform(raw)
		}
		before := len(w.state.ErrorsFor(path))
		value, keep := w.node(node.Of, path, raw, required)
		if node.Refine != nil && keep && len(w.state.ErrorsFor(path)) == before {
			if err := node.Refine(value); err != nil {
				w.fail(path, capitalize(err.Error()))
			}
		}
		return value, keep
	case *schema.Boolean:
		checked := false
		if !isEmpty(raw) {
			parsed, ok := toBool(raw)
			if !ok {
				w.fail(path, "Invalid value")
				return nil, false
			}
			checked = parsed
		}
		if required && !checked {
			w.fail(path, MsgRequired)
		}
		return checked, true
	case *schema.String:
		return w.str(node, path, raw, required)
	case *schema.Number:
		return w.number(node, path, raw, required)
	case *schema.Enum:
		if isEmpty(raw) {
			if required {
				w.fail(path, MsgRequired)
			}
			return nil, false
		}
		text := strings.TrimSpace(fmt.Sprint(raw))
		if !slices.Contains(node.Values(), text) {
			w.fail(path, "Must be one of: "+strings.Join(node.Values(), ", "))
			return text, false
		}
		return text, true
	case *schema.Object:
		return w.object(node, path, raw), true
	case nil:
		return nil, false
	default:
		// extension kinds carry their own semantics; pass the value through
		if required && isEmpty(raw) {
			w.fail(path, MsgRequired)
			return nil, false
		}
		return raw, !isEmpty(raw)
	}
}

func (w *walker) str(node *schema.String, path string, raw any, required bool) (any, bool) {
	text := ""
	if raw != nil {
		text = fmt.Sprint(raw)
	}
	if strings.TrimSpace(text) == "" {
		if required {
			w.fail(path, MsgRequired)
			return nil, false
		}
		return text, text != ""
	}

	var tags []string
	switch node.Format {
	case "email":
		tags = append(tags, "email")
	case "url":
		tags = append(tags, "url")
	}
	if node.MinLength != nil {
		tags = append(tags, "min="+strconv.Itoa(*node.MinLength))
	}
	if node.MaxLength != nil {
		tags = append(tags, "max="+strconv.Itoa(*node.MaxLength))
	}
	if len(tags) > 0 {
		if err := engine().Var(text, strings.Join(tags, ",")); err != nil {
			w.validationMessages(path, err, "characters")
			return text, false
		}
	}
	if node.Pattern != "" {
		re, err := regexp.Compile(node.Pattern)
		if err != nil || !re.MatchString(text) {
			w.fail(path, MsgInvalidFormat)
			return text, false
		}
	}
	return text, true
}

func (w *walker) number(node *schema.Number, path string, raw any, required bool) (any, bool) {
	if isEmpty(raw) {
		if required {
			w.fail(path, MsgRequired)
		}
		return nil, false
	}

	value, ok := toNumber(raw)
	if !ok {
		w.fail(path, MsgInvalidNumber)
		return nil, false
	}
	if node.Integer && value != math.Trunc(value) {
		w.fail(path, MsgWholeNumber)
		return value, false
	}

	var tags []string
	if node.Min != nil {
		tags = append(tags, "gte="+formatNumber(*node.Min))
	}
	if node.Max != nil {
		tags = append(tags, "lte="+formatNumber(*node.Max))
	}
	if len(tags) > 0 {
		if err := engine().Var(value, strings.Join(tags, ",")); err != nil {
			w.validationMessages(path, err, "")
			return value, false
		}
	}
	if node.Integer {
		return int64(value), true
	}
	return value, true
}

func (w *walker) validationMessages(path string, err error, unit string) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		w.fail(path, "Invalid value")
		return
	}
	suffix := ""
	if unit != "" {
		suffix = " " + unit
	}
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "email":
			w.fail(path, MsgInvalidEmail)
		case "url":
			w.fail(path, MsgInvalidURL)
		case "min", "gte":
			w.fail(path, fmt.Sprintf("Must be at least %s%s", fe.Param(), suffix))
		case "max", "lte":
			w.fail(path, fmt.Sprintf("Must be at most %s%s", fe.Param(), suffix))
		default:
			w.fail(path, "Invalid value")
		}
	}
}

func isEmpty(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

func capitalize(message string) string {
	if message == "" {
		return message
	}
	return strings.ToUpper(message[:1]) + message[1:]
}
