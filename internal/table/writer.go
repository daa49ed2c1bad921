package table

import (
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
)

const timestampLayout = "20060102_150405"

// Writer saves a Table with tiered fallback: the primary XLSX path, then a
// timestamped XLSX when the primary is locked, then a timestamped CSV.
type Writer struct {
	Now       func() time.Time
	WriteXLSX func(path string, t *Table) error
	WriteCSV  func(path string, t *Table) error
}

// NewWriter returns a Writer backed by the filesystem.
func NewWriter() *Writer {
	return &Writer{
		Now:       time.Now,
		WriteXLSX: WriteXLSX,
		WriteCSV:  WriteCSV,
	}
}

// Save writes t and returns the path actually written.
func (w *Writer) Save(t *Table, primary string) (string, error) {
	err := w.WriteXLSX(primary, t)
	if err == nil {
		return primary, nil
	}

	stem := strings.TrimSuffix(primary, filepath.Ext(primary)) + "_" + w.Now().Format(timestampLayout)
	log := zap.L().With(zap.String("primary", primary))

	if errors.Is(err, fs.ErrPermission) {
		alt := stem + ".xlsx"
		log.Warn("table: output locked, writing timestamped copy", zap.String("path", alt), zap.Error(err))
		altErr := w.WriteXLSX(alt, t)
		if altErr == nil {
			return alt, nil
		}
		err = altErr
	}

	csvPath := stem + ".csv"
	log.Warn("table: xlsx save failed, writing csv", zap.String("path", csvPath), zap.Error(err))
	if csvErr := w.WriteCSV(csvPath, t); csvErr != nil {
		return "", eris.Wrapf(csvErr, "table: every save tier failed (xlsx: %v)", err)
	}
	return csvPath, nil
}

// WriteXLSX writes t as a single-sheet workbook. Errors from creating the
// file are returned unwrapped so callers can classify them.
func WriteXLSX(path string, t *Table) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	if err != nil {
		return eris.Wrap(err, "table: add sheet")
	}

	for _, r := range append([][]string{t.Header}, t.Rows...) {
		row := sheet.AddRow()
		for _, v := range r {
			row.AddCell().SetString(v)
		}
	}
	return f.Save(path)
}

// WriteCSV writes t as CSV with a header row.
func WriteCSV(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "table: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return eris.Wrap(err, "table: write csv header")
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return eris.Wrap(err, "table: write csv rows")
	}
	return f.Sync()
}
