package formatter

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	apperrors "github.com/mcncl/jsonview/internal/errors"
	"github.com/mcncl/jsonview/internal/models"
)

// Indent is the per-level indentation used by Format.
const Indent = "  "

// Formatter re-serializes parsed JSON values. It never re-reads raw
// text, so member order and number literals come out exactly as parsed.
type Formatter struct {
	indent string
}

// NewFormatter creates a Formatter using two-space indentation
func NewFormatter() *Formatter {
	return &Formatter{indent: Indent}
}

// Format serializes v with one indent per nesting level.
func (f *Formatter) Format(v *models.Value) (string, error) {
	return f.serialize(v, f.indent)
}

// Minify serializes v without any insignificant whitespace.
func (f *Formatter) Minify(v *models.Value) (string, error) {
	return f.serialize(v, "")
}

func (f *Formatter) serialize(v *models.Value, indent string) (string, error) {
	if v == nil {
		return "", apperrors.ErrNoDocument
	}
	w := &writer{indent: indent}
	if err := w.value(v, 0); err != nil {
		return "", err
	}
	return w.buf.String(), nil
}

type writer struct {
	buf    bytes.Buffer
	indent string
}

func (w *writer) newline(level int) {
	if w.indent == "" {
		return
	}
	w.buf.WriteByte('\n')
	w.buf.WriteString(strings.Repeat(w.indent, level))
}

func (w *writer) value(v *models.Value, level int) error {
	switch v.Kind() {
	case models.KindNull:
		w.buf.WriteString("null")
	case models.KindBoolean:
		if v.Bool() {
			w.buf.WriteString("true")
		} else {
			w.buf.WriteString("false")
		}
	case models.KindNumber:
		w.buf.WriteString(v.Number().String())
	case models.KindString:
		return w.str(v.Str())
	case models.KindArray:
		items := v.Items()
		if len(items) == 0 {
			w.buf.WriteString("[]")
			return nil
		}
		w.buf.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			w.newline(level + 1)
			if err := w.value(item, level+1); err != nil {
				return errors.Wrapf(err, "index %d", i)
			}
		}
		w.newline(level)
		w.buf.WriteByte(']')
	case models.KindObject:
		members := v.Members()
		if len(members) == 0 {
			w.buf.WriteString("{}")
			return nil
		}
		w.buf.WriteByte('{')
		for i, m := range members {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			w.newline(level + 1)
			if err := w.str(m.Key); err != nil {
				return errors.Wrapf(err, "key %q", m.Key)
			}
			w.buf.WriteByte(':')
			if w.indent != "" {
				w.buf.WriteByte(' ')
			}
			if err := w.value(m.Value, level+1); err != nil {
				return errors.Wrapf(err, "member %q", m.Key)
			}
		}
		w.newline(level)
		w.buf.WriteByte('}')
	default:
		return errors.Errorf("unknown kind %v", v.Kind())
	}
	return nil
}

// str writes s as a JSON string literal. HTML characters are left as is.
func (w *writer) str(s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, "encode string")
	}
	w.buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
