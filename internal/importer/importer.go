// Package importer provides CSV and Excel import functionality for custom
// part catalogs. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/StudCode/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the parts read from one file and the per-row problems
// found along the way. Rows with errors are skipped.
type ImportResult struct {
	Parts    []model.Part
	Errors   []string
	Warnings []string
}

func (r *ImportResult) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ImportResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ColumnMapping holds the index of each known column, -1 when absent.
type ColumnMapping struct {
	Name      int
	Width     int
	Height    int
	Rotations int
	Shape     int
}

// positional is the mapping used for files without a header row.
var positional = ColumnMapping{Name: 0, Width: 1, Height: 2, Rotations: 3, Shape: 4}

// columnAliases maps every accepted lowercase header to its column role.
var columnAliases = map[string]string{
	"name": "name", "label": "name", "part": "name", "piece": "name", "element": "name", "description": "name",
	"width": "width", "w": "width", "x": "width", "studs x": "width",
	"height": "height", "h": "height", "y": "height", "length": "height", "len": "height", "studs y": "height",
	"rotations": "rotations", "rotation": "rotations", "rot": "rotations", "angles": "rotations", "angle": "rotations",
	"shape": "shape", "kind": "shape", "type": "shape",
}

// slot returns the mapping field for a column role.
func (m *ColumnMapping) slot(role string) *int {
	switch role {
	case "name":
		return &m.Name
	case "width":
		return &m.Width
	case "height":
		return &m.Height
	case "rotations":
		return &m.Rotations
	default:
		return &m.Shape
	}
}

var delimiterNames = map[rune]string{',': "comma", ';': "semicolon", '\t': "tab", '|': "pipe"}

// newCSVReader returns a lenient reader accepting ragged rows.
func newCSVReader(r io.Reader, delimiter rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// DetectCSVDelimiter picks the delimiter among comma, semicolon, tab and pipe
// that splits the first line into at least two fields and keeps that field
// count on the most lines. Wider first lines break ties. Comma is the fallback.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		records, err := newCSVReader(bytes.NewReader(data), delim).ReadAll()
		if err != nil || len(records) == 0 || len(records[0]) < 2 {
			continue
		}
		width := len(records[0])
		consistent := 0
		for _, rec := range records {
			if len(rec) == width {
				consistent++
			}
		}
		if score := consistent*10 + width; score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

// DetectColumns maps a header row to column indices. The first column
// carrying a known alias wins each role. When no cell is a known alias the
// row is data, and the positional mapping is returned with false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	m := ColumnMapping{Name: -1, Width: -1, Height: -1, Rotations: -1, Shape: -1}
	found := false
	for i, cell := range row {
		role, ok := columnAliases[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}
		found = true
		if idx := m.slot(role); *idx == -1 {
			*idx = i
		}
	}
	if !found {
		return positional, false
	}
	return m, true
}

// parseRotations reads an angle list such as "0;90", "0 90 180 270", "all"
// or "none". Angles keep their listed order.
func parseRotations(s string) ([]int, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all":
		return []int{0, 90, 180, 270}, true
	case "none", "0", "-":
		return []int{0}, true
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ' ' || r == '/' || r == '+'
	})
	if len(fields) == 0 {
		return nil, false
	}
	angles := make([]int, 0, len(fields))
	for _, f := range fields {
		a, err := strconv.Atoi(strings.TrimSuffix(f, "°"))
		if err != nil {
			return nil, false
		}
		switch a {
		case 0, 90, 180, 270:
			angles = append(angles, a)
		default:
			return nil, false
		}
	}
	return angles, true
}

// field returns the trimmed value of column idx, or "" when the row is too
// short or the column is absent.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// studs parses a positive stud count from column idx.
func studs(row []string, idx int, what, label string) (int, string) {
	v := field(row, idx)
	if v == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", label, what)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", label, what, v)
	}
	if n <= 0 {
		return 0, fmt.Sprintf("%s: Width and height must be positive", label)
	}
	return n, ""
}

// parseRow builds one part from a data row. It returns the part, an error
// message when the row must be skipped, and an optional warning.
func parseRow(row []string, mapping ColumnMapping, label string) (model.Part, string, string) {
	w, msg := studs(row, mapping.Width, "width", label)
	if msg != "" {
		return model.Part{}, msg, ""
	}
	h, msg := studs(row, mapping.Height, "height", label)
	if msg != "" {
		return model.Part{}, msg, ""
	}

	var part model.Part
	switch shape := strings.ToLower(field(row, mapping.Shape)); shape {
	case "", "rect", "rectangle", "brick", "plate":
		part = model.NewBrick(w, h)
	case "corner", "notched":
		if w < 2 || h < 2 {
			return model.Part{}, fmt.Sprintf("%s: Corner pieces need at least 2x2 studs", label), ""
		}
		part = model.Part{
			Name:      fmt.Sprintf("%dx%d corner", w, h),
			Footprint: cornerFootprint(w, h),
			Rotations: []int{0, 90, 180, 270},
		}
	default:
		return model.Part{}, fmt.Sprintf("%s: Unknown shape '%s'", label, shape), ""
	}

	if name := field(row, mapping.Name); name != "" {
		part.Name = name
	}

	rot := field(row, mapping.Rotations)
	if rot == "" {
		return part, "", ""
	}
	angles, ok := parseRotations(rot)
	if !ok {
		return part, "", fmt.Sprintf("%s: Unknown rotations '%s', using defaults", label, rot)
	}
	part.Rotations = angles
	return part, "", ""
}

// cornerFootprint returns a w x h rectangle with its far corner stud removed.
func cornerFootprint(w, h int) model.Footprint {
	f := model.RectFootprint(w, h)
	f[w-1][h-1] = false
	return f
}

func blank(row []string) bool {
	return strings.TrimSpace(strings.Join(row, "")) == ""
}

// ImportCSV reads parts from a CSV file, detecting its delimiter.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}

	delimiter := DetectCSVDelimiter(data)
	var notes []string
	if delimiter != ',' {
		notes = append(notes, fmt.Sprintf("Detected %s delimiter", delimiterNames[delimiter]))
	}
	return importCSV(bytes.NewReader(data), delimiter, notes)
}

// ImportCSVFromReader reads parts from CSV data with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	return importCSV(reader, delimiter, nil)
}

func importCSV(r io.Reader, delimiter rune, notes []string) ImportResult {
	records, err := newCSVReader(r, delimiter).ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}, Warnings: notes}
	}
	return importRows(records, "Line", notes)
}

// ImportExcel reads parts from the first sheet of an .xlsx workbook.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Excel file has no sheets"}}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read Excel data: %v", err)}}
	}
	return importRows(rows, "Row", nil)
}

// importRows turns raw rows from either source into parts. Row labels use
// 1-based numbering so they match what a spreadsheet shows.
func importRows(rows [][]string, rowPrefix string, notes []string) ImportResult {
	res := ImportResult{Warnings: notes}
	if len(rows) == 0 {
		res.errorf("No data rows found")
		return res
	}

	mapping, hasHeader := DetectColumns(rows[0])
	first := 0
	switch {
	case hasHeader:
		first = 1
		res.warnf("Detected header row, skipping")
		var missing []string
		if mapping.Width < 0 {
			missing = append(missing, "Width")
		}
		if mapping.Height < 0 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			res.errorf("Required columns not found in header: %s", strings.Join(missing, ", "))
			return res
		}
	case len(rows[0]) >= 3:
		// An unrecognized header still has a non-numeric width column
		if _, err := strconv.Atoi(strings.TrimSpace(rows[0][1])); err != nil {
			first = 1
			res.warnf("Detected header row, skipping")
		}
	}

	for i, row := range rows[first:] {
		if blank(row) {
			continue
		}
		label := fmt.Sprintf("%s %d", rowPrefix, first+i+1)
		part, errMsg, warning := parseRow(row, mapping, label)
		if errMsg != "" {
			res.Errors = append(res.Errors, errMsg)
			continue
		}
		if warning != "" {
			res.Warnings = append(res.Warnings, warning)
		}
		res.Parts = append(res.Parts, part)
	}
	return res
}

// ImportFile dispatches on the file extension: .xlsx/.xlsm read the first
// sheet, anything else is read as CSV.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}

// LoadCatalog imports the parts listed in path and orders them with policy.
// Any row error fails the whole catalog, since a silently missing piece
// would change every count.
func LoadCatalog(path string, policy model.CatalogPolicy) (model.Catalog, []string, error) {
	result := ImportFile(path)
	if len(result.Errors) > 0 {
		return model.Catalog{}, result.Warnings, fmt.Errorf("catalog %s: %s", path, strings.Join(result.Errors, "; "))
	}
	cat, err := policy.BuildCatalog(result.Parts)
	if err != nil {
		return model.Catalog{}, result.Warnings, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, result.Warnings, nil
}
