// Package table loads the business list and saves the enriched copy. A
// Table is a header plus string rows, read from CSV or XLSX.
package table

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/ajofficial223/Data-Scraper/internal/model"
)

// Column names.
const (
	ColNo              = "No."
	ColBusinessType    = "Business Type"
	ColCompanyName     = "Company Name"
	ColLocation        = "Location"
	ColWebsite         = "Website"
	ColOwner           = "Founder(s)/Owner(s)/Director(s)"
	ColEmail           = "Email"
	ColPhone           = "Phone"
	ColFacebook        = "Facebook"
	ColInstagram       = "Instagram"
	ColLinkedIn        = "LinkedIn"
	ColAddress         = "Address"
	ColDataQuality     = "Data Quality"
	ColSourcesUsed     = "Sources Used"
	ColConfidenceScore = "Confidence Score"
	ColValidationNotes = "Validation Notes"
)

// RequiredColumns must be present in the input.
var RequiredColumns = []string{ColBusinessType, ColCompanyName, ColLocation}

// ExpectedColumns are created empty when missing, in this order.
var ExpectedColumns = []string{
	ColNo,
	ColBusinessType,
	ColCompanyName,
	ColLocation,
	ColWebsite,
	ColOwner,
	ColEmail,
	ColPhone,
	ColFacebook,
	ColInstagram,
	ColLinkedIn,
	ColAddress,
	ColDataQuality,
	ColSourcesUsed,
	ColConfidenceScore,
	ColValidationNotes,
}

// FieldColumns maps content fields to their output column.
var FieldColumns = map[model.Field]string{
	model.FieldWebsite:   ColWebsite,
	model.FieldEmail:     ColEmail,
	model.FieldPhone:     ColPhone,
	model.FieldFacebook:  ColFacebook,
	model.FieldInstagram: ColInstagram,
	model.FieldLinkedIn:  ColLinkedIn,
	model.FieldOwner:     ColOwner,
	model.FieldAddress:   ColAddress,
}

// Table is an in-memory sheet. Every row has exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// New builds a Table, padding or truncating rows to the header width.
func New(header []string, rows [][]string) *Table {
	t := &Table{Header: make([]string, len(header)), index: map[string]int{}}
	for i, h := range header {
		h = strings.TrimSpace(h)
		t.Header[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, t.fit(r))
	}
	return t
}

func (t *Table) fit(r []string) []string {
	out := make([]string, len(t.Header))
	copy(out, r)
	return out
}

// Load reads a table from a .csv or .xlsx file. Rows with no content are
// dropped.
func Load(path string) (*Table, error) {
	var (
		raw [][]string
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		raw, err = readCSV(path)
	case ".xlsx":
		raw, err = readXLSX(path)
	default:
		return nil, eris.Errorf("table: unsupported input format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, eris.Errorf("table: %s is empty", path)
	}

	header := raw[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	for _, r := range raw[1:] {
		if !blankRow(r) {
			rows = append(rows, r)
		}
	}
	return New(header, rows), nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "table: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "table: read csv %s", path)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "table: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("table: %s has no sheets", path)
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			if cell != nil {
				cells[j] = cell.String()
			}
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func blankRow(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Has reports whether col exists.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Missing returns the required columns absent from the header.
func (t *Table) Missing(cols []string) []string {
	var out []string
	for _, c := range cols {
		if !t.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// RequireColumns fails when any of cols is absent.
func (t *Table) RequireColumns(cols []string) error {
	if missing := t.Missing(cols); len(missing) > 0 {
		return eris.Errorf("table: missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// EnsureColumns appends every missing column with empty cells.
func (t *Table) EnsureColumns(cols []string) {
	for _, c := range cols {
		if t.Has(c) {
			continue
		}
		t.index[c] = len(t.Header)
		t.Header = append(t.Header, c)
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], "")
		}
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Get returns the trimmed cell at row i, column col. Unknown columns read
// as empty.
func (t *Table) Get(i int, col string) string {
	j, ok := t.index[col]
	if !ok {
		return ""
	}
	return strings.TrimSpace(t.Rows[i][j])
}

// Set writes a cell, adding the column when needed.
func (t *Table) Set(i int, col, v string) {
	if !t.Has(col) {
		t.EnsureColumns([]string{col})
	}
	t.Rows[i][t.index[col]] = v
}

// Record returns the business identity of row i.
func (t *Table) Record(i int) model.BusinessRecord {
	return model.BusinessRecord{
		Name:     t.Get(i, ColCompanyName),
		Industry: t.Get(i, ColBusinessType),
		Location: t.Get(i, ColLocation),
	}
}
