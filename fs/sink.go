// Package fs provides file-based output for crawled records.
package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	pagecrawler "github.com/alexotsu/docs-page-crawler"
)

// Ensure FileSink implements pagecrawler.Sink at compile time.
var _ pagecrawler.Sink = (*FileSink)(nil)

// FileSink appends formatted records to a single text file with atomic
// update semantics. Records are written to path.tmp, which is renamed to
// path on Commit and removed on Abort, so an existing output file is only
// replaced by a finished crawl.
type FileSink struct {
	path string

	mu sync.Mutex
	f  *os.File
}

// NewFileSink creates a FileSink for the given output path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) tempPath() string {
	return s.path + ".tmp"
}

// Open creates the temporary output file, truncating any leftover from an
// earlier run.
func (s *FileSink) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f != nil {
		return pagecrawler.Errorf(pagecrawler.EINVALID, "file sink %s is already open", s.path)
	}

	f, err := os.Create(s.tempPath())
	if err != nil {
		return pagecrawler.Errorf(pagecrawler.ESINK, "cannot open output file: %v", err)
	}
	s.f = f
	return nil
}

// Append writes one record. Writes are serialized.
func (s *FileSink) Append(_ context.Context, r *pagecrawler.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f == nil {
		return pagecrawler.Errorf(pagecrawler.ESINK, "file sink %s is not open", s.path)
	}
	if _, err := io.WriteString(s.f, pagecrawler.FormatRecord(r)); err != nil {
		return pagecrawler.Errorf(pagecrawler.ESINK, "write %s: %v", s.tempPath(), err)
	}
	return nil
}

// Commit flushes the temporary file to disk and moves it into place.
func (s *FileSink) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f == nil {
		return pagecrawler.Errorf(pagecrawler.ESINK, "file sink %s is not open", s.path)
	}
	f := s.f
	s.f = nil

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(s.tempPath(), s.path)
}

// Abort discards the temporary file. The final path is left untouched.
func (s *FileSink) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f != nil {
		_ = s.f.Close()
		s.f = nil
	}
	if err := os.Remove(s.tempPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
