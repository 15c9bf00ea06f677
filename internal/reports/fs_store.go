package reports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FSStore keeps reports as files in one directory.
type FSStore struct {
	dir string
}

func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create reports dir: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) Save(_ context.Context, name string, data []byte) error {
	if err := CheckFilename(name); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".report-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.dir, name))
}

// List returns the stored reports, newest first.
func (s *FSStore) List(context.Context) ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	out := make([]Info, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".pdf") || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		out = append(out, Info{
			Filename:  e.Name(),
			Path:      DownloadPath(e.Name()),
			Size:      fi.Size(),
			CreatedAt: fi.ModTime().UTC(),
		})
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *FSStore) Open(_ context.Context, name string) (io.ReadCloser, int64, error) {
	if err := CheckFilename(name); err != nil {
		return nil, 0, err
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, ErrReportNotFound
		}
		return nil, 0, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, fi.Size(), nil
}

func (s *FSStore) Delete(_ context.Context, name string) error {
	if err := CheckFilename(name); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrReportNotFound
	}
	return err
}

func sortNewestFirst(infos []Info) {
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].Filename > infos[j].Filename
		}
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
}
