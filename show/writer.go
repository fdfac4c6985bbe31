package show

import (
	"bufio"
	"os"
)

// Writer appends entries to a show file. A file has exactly one Writer for
// the lifetime of a recording session and is immutable afterwards.
type Writer struct {
	f *os.File
	w *bufio.Writer
}

// NewWriter creates (or truncates) the show file at filename.
func NewWriter(filename string) (*Writer, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	return &Writer{f: f, w: bufio.NewWriter(f)}, nil
}

// Append writes one entry to the end of the file.
func (w *Writer) Append(e Entry) error {
	return WriteEntry(w.w, e)
}

// Close flushes buffered entries and closes the file.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
