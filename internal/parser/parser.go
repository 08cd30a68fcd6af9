package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/mcncl/jsonview/internal/errors"
	"github.com/mcncl/jsonview/internal/models"
)

// DefaultMaxDepth matches the nesting limit of encoding/json, which
// rejects deeper documents as malformed before any other check runs.
const DefaultMaxDepth = 10000

// Options controls parsing.
type Options struct {
	// MaxDepth is the deepest container nesting accepted. Zero, a
	// negative value or a value above DefaultMaxDepth falls back to
	// DefaultMaxDepth.
	MaxDepth int
}

// DefaultOptions returns the options used by ParseString.
func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

// ReadAll reads raw JSON text from reader.
func ReadAll(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return data, nil
}

// ParseString parses JSON from a string.
func ParseString(jsonString string) (models.Document, error) {
	return ParseBytes([]byte(jsonString), DefaultOptions())
}

// ParseBytes parses a single strict JSON value. Empty or whitespace-only
// input yields an empty Document and no error. Rejected input yields a
// MalformedInput error carrying the decoder's diagnostic; no partial
// value is returned.
func ParseBytes(data []byte, opts Options) (models.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Document{}, nil
	}

	// encoding/json validates the whole input, including trailing data,
	// and supplies the diagnostic reported to the user.
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Document{}, errors.NewMalformedInputError(err.Error())
	}

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 || maxDepth > DefaultMaxDepth {
		maxDepth = DefaultMaxDepth
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	b := &builder{dec: dec, maxDepth: maxDepth}
	root, err := b.value(0)
	if err != nil {
		if pkgerrors.Cause(err) == errors.ErrTooDeep {
			return models.Document{}, errors.NewParsingError(
				fmt.Sprintf("nesting exceeds the maximum depth of %d", maxDepth),
				errors.ErrTooDeep,
			)
		}
		return models.Document{}, errors.NewParsingError("failed to decode JSON", err)
	}
	return models.Document{Root: root}, nil
}

// ReadFile reads raw JSON text from a file path.
func ReadFile(filePath string) ([]byte, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	return data, nil
}

// builder walks the decoder's token stream so object members keep the
// order they were written in.
type builder struct {
	dec      *json.Decoder
	maxDepth int
}

// value decodes one value; level is the number of enclosing containers.
func (b *builder) value(level int) (*models.Value, error) {
	tok, err := b.dec.Token()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "read token")
	}

	switch t := tok.(type) {
	case json.Delim:
		if level+1 > b.maxDepth {
			return nil, pkgerrors.WithStack(errors.ErrTooDeep)
		}
		switch t {
		case '[':
			return b.array(level + 1)
		case '{':
			return b.object(level + 1)
		default:
			return nil, pkgerrors.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return models.String(t), nil
	case json.Number:
		return models.Number(t), nil
	case bool:
		return models.Bool(t), nil
	case nil:
		return models.Null(), nil
	default:
		return nil, pkgerrors.Errorf("unexpected token %T", tok)
	}
}

func (b *builder) array(level int) (*models.Value, error) {
	items := make([]*models.Value, 0)
	for b.dec.More() {
		item, err := b.value(level)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if _, err := b.dec.Token(); err != nil {
		return nil, pkgerrors.Wrap(err, "close array")
	}
	return models.Array(items...), nil
}

func (b *builder) object(level int) (*models.Value, error) {
	members := make([]models.Member, 0)
	for b.dec.More() {
		tok, err := b.dec.Token()
		if err != nil {
			return nil, pkgerrors.Wrap(err, "read object key")
		}
		key, ok := tok.(string)
		if !ok {
			return nil, pkgerrors.Errorf("object key is %T, not a string", tok)
		}
		val, err := b.value(level)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "member %q", key)
		}
		members = append(members, models.Member{Key: key, Value: val})
	}
	if _, err := b.dec.Token(); err != nil {
		return nil, pkgerrors.Wrap(err, "close object")
	}
	return models.Object(members...), nil
}
