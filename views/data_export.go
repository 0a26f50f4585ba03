package views

import (
	"bufio"
	"encoding/csv"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"sense-logger/models"
)

// CSVWriter appends rows to a single CSV log file.
//
// Every row is pushed to the OS before WriteRow returns so that a power cut
// loses at most the row being written. With sync set the file is also
// fsync'ed after each row.
type CSVWriter struct {
	path   string
	file   *os.File
	buf    *bufio.Writer
	csv    *csv.Writer
	header []string
	sync   bool
	rows   uint64
}

// NewCSVWriter creates path (failing if it already exists) and writes the
// header row. If the header cannot be written the file is removed again.
func NewCSVWriter(path string, header []string, sync bool) (*CSVWriter, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "csv create %s", path)
	}
	return newCSVWriter(path, f, header, sync)
}

func newCSVWriter(path string, f *os.File, header []string, sync bool) (*CSVWriter, error) {
	bw := bufio.NewWriter(f)
	w := &CSVWriter{
		path:   path,
		file:   f,
		buf:    bw,
		csv:    csv.NewWriter(bw),
		header: append([]string(nil), header...),
		sync:   sync,
	}

	if err := w.write(header); err != nil {
		err = multierr.Append(errors.Wrap(err, "csv write header"), f.Close())
		return nil, multierr.Append(err, os.Remove(path))
	}
	return w, nil
}

// WriteRow appends one row. The row must have as many fields as the header.
func (w *CSVWriter) WriteRow(row []string) error {
	if err := CheckRow(w.header, row); err != nil {
		return err
	}
	if err := w.write(row); err != nil {
		return errors.Wrapf(err, "csv write %s", w.path)
	}
	w.rows++
	return nil
}

// WriteRecord appends the row of rec.
func (w *CSVWriter) WriteRecord(rec models.CSVRowWriter) error {
	return w.WriteRow(rec.CSVRow())
}

func (w *CSVWriter) write(row []string) error {
	if err := w.csv.Write(row); err != nil {
		return err
	}
	return w.Flush()
}

// Flush pushes buffered data to the OS, and to disk when sync is set.
func (w *CSVWriter) Flush() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return err
	}
	if err := w.buf.Flush(); err != nil {
		return err
	}
	if w.sync {
		return w.file.Sync()
	}
	return nil
}

// Close flushes remaining data and closes the file.
func (w *CSVWriter) Close() error {
	return multierr.Combine(w.Flush(), w.file.Close())
}

// Path returns the file the writer appends to.
func (w *CSVWriter) Path() string { return w.path }

// Rows returns the number of data rows written (excludes header).
func (w *CSVWriter) Rows() uint64 { return w.rows }
