package session

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/surveylens/surveylens-cli/internal/dataset"
)

// Session holds the state of one interactive analysis: the loaded dataset
// and where it came from. Commands receive it explicitly; there is no
// ambient shared state, and nothing persists between invocations.
type Session struct {
	ID       string
	Source   string
	Data     *dataset.Dataset
	OpenedAt time.Time
}

// Open loads the given tabular file into a fresh session.
func Open(path string, opt dataset.LoadOptions) (*Session, error) {
	d, err := dataset.Load(path, opt)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return &Session{
		ID:       uuid.NewString(),
		Source:   filepath.Base(path),
		Data:     d,
		OpenedAt: time.Now(),
	}, nil
}

// Convert applies the numeric coercion helper to the named columns; the
// session's dataset is the only thing it mutates.
func (s *Session) Convert(cols []string) error {
	if len(cols) == 0 {
		return nil
	}
	return s.Data.Coerce(cols...)
}
