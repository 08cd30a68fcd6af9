// Package clipboard exports text to the system clipboard.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
	"github.com/pkg/errors"

	apperrors "github.com/mcncl/jsonview/internal/errors"
)

// Writer receives exported text.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

// WriteAll copies text to the system clipboard.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return apperrors.ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return errors.Wrap(err, "write system clipboard")
	}
	return nil
}

// Memory keeps the last copied text. It is safe for concurrent use.
type Memory struct {
	mu   sync.Mutex
	text string
	n    int
}

// WriteAll stores text.
func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.n++
	return nil
}

// Text returns the last copied text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Writes returns how many times WriteAll was called.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.n
}
