package reports

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrInvalidFilename = errors.New("invalid report filename")
)

// Info describes one stored report.
type Info struct {
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists rendered reports by file name.
type Store interface {
	Save(ctx context.Context, name string, data []byte) error
	List(ctx context.Context) ([]Info, error)
	// Open returns the report content and its size, -1 when unknown.
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, name string) error
}

// CheckFilename rejects anything but a plain "*.pdf" name, so callers can
// never address files outside the report store.
func CheckFilename(name string) error {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) ||
		strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".pdf") {
		return ErrInvalidFilename
	}
	return nil
}
