// Package viewer ties raw input, the parsed document, its tree state and
// its statistics together for one viewing session.
package viewer

import (
	_ "embed"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonview/internal/classify"
	"github.com/mcncl/jsonview/internal/clipboard"
	"github.com/mcncl/jsonview/internal/config"
	"github.com/mcncl/jsonview/internal/errors"
	"github.com/mcncl/jsonview/internal/formatter"
	"github.com/mcncl/jsonview/internal/models"
	"github.com/mcncl/jsonview/internal/parser"
	"github.com/mcncl/jsonview/internal/stats"
	"github.com/mcncl/jsonview/internal/tree"
)

//go:embed sample.json
var sampleJSON string

// SampleJSON returns the built-in sample document.
func SampleJSON() string {
	return sampleJSON
}

// State describes what a session currently holds.
type State int

const (
	// StateEmpty means no document has been supplied.
	StateEmpty State = iota
	// StateInvalid means the last input was rejected by the parser.
	StateInvalid
	// StateReady means a document is loaded and its tree is built.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateInvalid:
		return "invalid"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Session holds the current input text and everything derived from it.
// Replacing the input discards the previous document and tree.
type Session struct {
	cfg       *config.Config
	log       *zap.Logger
	formatter *formatter.Formatter

	input string
	doc   models.Document
	root  *tree.Node
	err   error
}

// New creates an empty session. A nil logger disables logging.
func New(cfg *config.Config, log *zap.Logger) *Session {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		cfg:       cfg,
		log:       log,
		formatter: formatter.NewFormatter(),
	}
}

// SetInput replaces the raw text, re-parses it and rebuilds the tree.
func (s *Session) SetInput(text string) State {
	s.input = text
	doc, err := parser.ParseBytes([]byte(text), parser.Options{MaxDepth: s.cfg.Parser.MaxDepth})
	if err != nil {
		s.reset(err)
		s.log.Debug("input rejected", zap.Int("bytes", len(text)), zap.Error(err))
		return StateInvalid
	}
	s.load(doc)
	return s.State()
}

// SetValue loads an already parsed host value, such as the result of
// decoding JSON into an interface{}. The input text becomes its
// formatted serialization.
func (s *Session) SetValue(v interface{}) error {
	root, err := classify.Normalize(v)
	if err != nil {
		return errors.NewInputError("unsupported value", err)
	}
	text, err := s.formatter.Format(root)
	if err != nil {
		return errors.NewRenderError("failed to serialize value", err)
	}
	s.input = text
	s.load(models.Document{Root: root})
	return nil
}

// SetYAMLInput decodes a YAML document and loads it as JSON. The raw
// text stays the input until the document is formatted or minified.
func (s *Session) SetYAMLInput(text string) State {
	if strings.TrimSpace(text) == "" {
		return s.SetInput(text)
	}
	var v interface{}
	if err := yaml.Unmarshal([]byte(text), &v); err != nil {
		s.input = text
		s.reset(errors.NewInputError("invalid YAML", err))
		s.log.Debug("yaml rejected", zap.Error(err))
		return StateInvalid
	}
	if err := s.SetValue(v); err != nil {
		s.input = text
		s.reset(err)
		return StateInvalid
	}
	s.input = text
	return s.State()
}

func (s *Session) load(doc models.Document) {
	s.doc = doc
	s.err = nil
	s.root = nil
	if doc.Empty() {
		s.log.Debug("no document")
		return
	}
	s.root = tree.NewWithOptions(doc.Root, s.cfg.Tree.ExpandDepth)
	s.log.Debug("document loaded",
		zap.Stringer("kind", doc.Root.Kind()),
		zap.Int("children", doc.Root.Len()),
	)
}

func (s *Session) reset(err error) {
	s.doc = models.Document{}
	s.root = nil
	s.err = err
}

// Clear empties the session.
func (s *Session) Clear() {
	s.input = ""
	s.reset(nil)
}

// LoadSample loads the built-in sample document.
func (s *Session) LoadSample() State {
	return s.SetInput(sampleJSON)
}

// State reports whether the session is empty, invalid or ready.
func (s *Session) State() State {
	switch {
	case s.err != nil:
		return StateInvalid
	case s.root == nil:
		return StateEmpty
	default:
		return StateReady
	}
}

// Input returns the current raw text.
func (s *Session) Input() string {
	return s.input
}

// Document returns the parsed document; it is empty unless the session is ready.
func (s *Session) Document() models.Document {
	return s.doc
}

// Tree returns the root tree node, or nil unless the session is ready.
func (s *Session) Tree() *tree.Node {
	return s.root
}

// Err returns the error raised by the last input, if any.
func (s *Session) Err() error {
	return s.err
}

// ErrorMessage returns the user-facing message for the last error, or "".
func (s *Session) ErrorMessage() string {
	if s.err == nil {
		return ""
	}
	return errors.UserFriendlyError(s.err)
}

// Stats aggregates the current document. It is recomputed on every call.
func (s *Session) Stats() (stats.Stats, bool) {
	if s.doc.Empty() {
		return stats.Stats{}, false
	}
	result := stats.Aggregate(s.doc.Root)
	s.log.Debug("statistics aggregated", zap.Int("values", result.Values()))
	return result, true
}

// Formatted returns the two-space serialization of the document.
func (s *Session) Formatted() (string, error) {
	return s.formatter.Format(s.doc.Root)
}

// Minified returns the whitespace-free serialization of the document.
func (s *Session) Minified() (string, error) {
	return s.formatter.Minify(s.doc.Root)
}

// Format replaces the input text with the formatted document. The
// document and tree state are left as they are.
func (s *Session) Format() error {
	text, err := s.Formatted()
	if err != nil {
		return err
	}
	s.input = text
	return nil
}

// Minify replaces the input text with the minified document. The
// document and tree state are left as they are.
func (s *Session) Minify() error {
	text, err := s.Minified()
	if err != nil {
		return err
	}
	s.input = text
	return nil
}

// Copy exports the formatted document to w. A clipboard failure is
// returned but leaves the session untouched.
func (s *Session) Copy(w clipboard.Writer) error {
	text, err := s.Formatted()
	if err != nil {
		return err
	}
	if err := w.WriteAll(text); err != nil {
		s.log.Warn("copy to clipboard failed", zap.Error(err))
		return errors.NewClipboardError("failed to copy document", err)
	}
	s.log.Debug("document copied", zap.Int("bytes", len(text)))
	return nil
}
