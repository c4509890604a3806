package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/okian/rentyield/internal/domain/types"
	"github.com/okian/rentyield/pkg/logger"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 4

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Sink persists a report at a path.
type Sink interface {
	Write(ctx context.Context, path string, r types.Report) error
}

// Writer encodes reports with goccy/go-json and replaces the target file atomically.
type Writer struct {
	indent int
	logger logger.Logger
}

// New creates a Writer.
func New(opts ...Option) *Writer {
	w := &Writer{
		indent: DefaultIndent,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Encode renders r as JSON followed by a newline. Field order follows the
// struct declaration, so equal reports encode to equal bytes.
func (w *Writer) Encode(r types.Report) ([]byte, error) {
	if r.TopSuburbs == nil {
		r.TopSuburbs = []types.SuburbEntry{}
	}
	var (
		b   []byte
		err error
	)
	if w.indent == 0 {
		b, err = json.Marshal(r)
	} else {
		b, err = json.MarshalIndent(r, "", strings.Repeat(" ", w.indent))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return append(b, '\n'), nil
}

// Write encodes r and stores it at path, creating parent directories. The
// document is written to a temporary file in the same directory and renamed
// into place, so readers never observe a partial report and a failed run
// leaves any previous report untouched.
func (w *Writer) Write(ctx context.Context, path string, r types.Report) error {
	data, err := w.Encode(r)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("%w: create directory %s: %w", ErrWrite, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	committed = true

	w.logger.Debug(ctx, "report written",
		logger.String("path", path),
		logger.Int("suburbs", len(r.TopSuburbs)),
		logger.Int("bytes", len(data)),
	)
	return nil
}
