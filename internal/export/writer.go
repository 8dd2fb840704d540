package export

// ============================================================================
// CSV export
// Responsibility: write generated records to disk in one atomic step
// ============================================================================
//
// Write flow:
//   1. render header + rows into <path>.tmp
//   2. os.Rename over <path>
//
// A failed write leaves any previous file untouched. Errors are returned as
// *WriteError and never retried.
//
// ============================================================================

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ChuLiYu/attgen/pkg/types"
)

// DefaultPath output file used when none is configured
const DefaultPath = "data.csv"

// WriteError output destination could not be written
type WriteError struct {
	Path  string // destination file
	Op    string // create, write, sync, close, rename
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("export: %s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// WriteRecords writes the header and one row per record to w
func WriteRecords(w io.Writer, recs []types.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, rec := range recs {
		if err := cw.Write(Row(rec)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Writer writes record files to a fixed path
type Writer struct {
	path string
}

// NewWriter creates a writer for path, DefaultPath when empty
func NewWriter(path string) *Writer {
	if path == "" {
		path = DefaultPath
	}
	return &Writer{path: path}
}

// Path returns the destination file
func (w *Writer) Path() string {
	return w.path
}

// Write replaces the destination file with recs
func (w *Writer) Write(recs []types.Record) error {
	tmpPath := w.path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return &WriteError{Path: w.path, Op: "create", Cause: err}
	}

	buf := bufio.NewWriter(f)
	if err := WriteRecords(buf, recs); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return &WriteError{Path: w.path, Op: "write", Cause: err}
	}
	if err := buf.Flush(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return &WriteError{Path: w.path, Op: "write", Cause: err}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return &WriteError{Path: w.path, Op: "sync", Cause: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: w.path, Op: "close", Cause: err}
	}

	if err := os.Rename(tmpPath, w.path); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: w.path, Op: "rename", Cause: err}
	}
	return nil
}
