// Package template compiles and renders URL templates containing
// {{identifier}} placeholders.
package template

import (
	"errors"
	"fmt"
	"io"

	"github.com/valyala/fasttemplate"
)

const (
	startTag = "{{"
	endTag   = "}}"
)

var (
	// ErrMalformed is returned by Parse for an unterminated tag or an identifier
	// outside [A-Za-z0-9_].
	ErrMalformed = errors.New("malformed template")
	// ErrMissingPlaceholder matches every *MissingPlaceholderError.
	ErrMissingPlaceholder = errors.New("missing placeholder")
)

// MissingPlaceholderError names the identifier a render could not resolve.
type MissingPlaceholderError struct {
	Name string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("missing placeholder %q", e.Name)
}

func (e *MissingPlaceholderError) Is(target error) bool { return target == ErrMissingPlaceholder }

// Source supplies placeholder values for a render.
type Source interface {
	Lookup(name string) (string, bool)
}

// Values is a flat identifier -> value Source.
type Values map[string]string

func (v Values) Lookup(name string) (string, bool) {
	s, ok := v[name]
	return s, ok
}

// Template is a compiled template. It is immutable and safe for concurrent use.
type Template struct {
	text  string
	ft    *fasttemplate.Template
	names []string
}

// Parse compiles text once so it can be rendered repeatedly.
func Parse(text string) (*Template, error) {
	ft, err := fasttemplate.NewTemplate(text, startTag, endTag)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	seen := map[string]struct{}{}
	var names []string
	_, err = ft.ExecuteFuncStringWithErr(func(_ io.Writer, tag string) (int, error) {
		if !validIdentifier(tag) {
			return 0, fmt.Errorf("%w: invalid placeholder %q", ErrMalformed, startTag+tag+endTag)
		}
		if _, ok := seen[tag]; !ok {
			seen[tag] = struct{}{}
			names = append(names, tag)
		}
		return 0, nil
	})
	if err != nil {
		return nil, err
	}
	return &Template{text: text, ft: ft, names: names}, nil
}

// MustParse is like Parse but panics on error. Use it for compile-time constants.
func MustParse(text string) *Template {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

// Render substitutes every placeholder with its value from src. Either the
// fully resolved string or an error is returned, never a partial result.
func (t *Template) Render(src Source) (string, error) {
	return t.ft.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		v, ok := src.Lookup(tag)
		if !ok {
			return 0, &MissingPlaceholderError{Name: tag}
		}
		return io.WriteString(w, v)
	})
}

// Placeholders returns the distinct identifiers in order of first appearance.
func (t *Template) Placeholders() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Missing reports which placeholders src cannot resolve.
func (t *Template) Missing(src Source) []string {
	var out []string
	for _, n := range t.names {
		if _, ok := src.Lookup(n); !ok {
			out = append(out, n)
		}
	}
	return out
}

func (t *Template) String() string { return t.text }

func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}
