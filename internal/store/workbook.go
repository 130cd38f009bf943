package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ivrlabs/callstore/internal/models"
)

// sheetName is used when creating a fresh workbook. Loading accepts whatever
// the first sheet is called, so workbooks produced by other tools keep working.
const sheetName = "Calls"

// workbook encodes the call collection to and from a single .xlsx file.
// It holds no state besides the path; callers own all synchronization.
type workbook struct {
	path string
}

func newWorkbook(path string) *workbook {
	return &workbook{path: path}
}

// load reads all records from the backing file. If the file does not exist it
// creates an empty workbook with the header row and returns no records.
func (w *workbook) load() ([]models.CallRecord, error) {
	if _, err := os.Stat(w.path); os.IsNotExist(err) {
		if err := w.write(nil); err != nil {
			return nil, err
		}
		return nil, nil
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", w.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no header row", w.path)
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	records := make([]models.CallRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		rec, err := decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// write encodes records and atomically replaces the backing file: the new
// workbook is written to a temp file in the same directory, synced, and
// renamed over the old one. The previous file is untouched until the new one
// is fully on disk.
func (w *workbook) write(records []models.CallRecord) error {
	return w.writeTo(w.path, records)
}

func (w *workbook) writeTo(path string, records []models.CallRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, 0, len(models.Columns()))
	for _, col := range models.Columns() {
		header = append(header, col)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range records {
		row := encodeRow(rec)
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".calls-*.xlsx")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("encoding workbook: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func checkHeader(header []string) error {
	want := models.Columns()
	if len(header) < len(want) {
		return fmt.Errorf("header has %d columns, want %d", len(header), len(want))
	}
	for i, col := range want {
		if strings.TrimSpace(header[i]) != col {
			return fmt.Errorf("header column %d is %q, want %q", i+1, header[i], col)
		}
	}
	return nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func decodeRow(row []string) (models.CallRecord, error) {
	// GetRows drops trailing empty cells; pad so indexing stays uniform.
	cells := make([]string, len(models.Columns()))
	copy(cells, row)

	id, err := strconv.Atoi(strings.TrimSpace(cells[0]))
	if err != nil {
		return models.CallRecord{}, fmt.Errorf("parsing %s %q: %w", models.ColumnCallID, cells[0], err)
	}

	score := 0.0
	if v := strings.TrimSpace(cells[8]); v != "" {
		score, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return models.CallRecord{}, fmt.Errorf("parsing %s %q: %w", models.ColumnConfidenceScore, cells[8], err)
		}
	}

	return models.CallRecord{
		CallID:              id,
		CustomerName:        cells[1],
		PhoneNumber:         cells[2],
		PolicyNumber:        cells[3],
		QuestionAsked:       cells[4],
		CustomerResponse:    cells[5],
		ResponseType:        cells[6],
		CallStatus:          cells[7],
		ConfidenceScore:     score,
		AgentActionRequired: cells[9],
	}, nil
}

func encodeRow(rec models.CallRecord) []any {
	return []any{
		rec.CallID,
		rec.CustomerName,
		rec.PhoneNumber,
		rec.PolicyNumber,
		rec.QuestionAsked,
		rec.CustomerResponse,
		rec.ResponseType,
		rec.CallStatus,
		rec.ConfidenceScore,
		rec.AgentActionRequired,
	}
}
