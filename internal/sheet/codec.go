// =============================================================================
// Order Sheet - Tabular Record Codec
// =============================================================================
//
// This module reads and writes typed rows against a workbook's first sheet.
//
// READ CONTRACT:
//   - The header row (row 0) is skipped.
//   - Rows are read until the last non-empty row.
//   - A row that fails the schema check (required cell empty or mistyped) is
//     skipped silently and logged at debug level; it is never an error.
//   - A missing file is ErrMissingFile; an unreadable container is
//     ErrCorruptCatalog.
//
// WRITE CONTRACT:
//   - The whole sheet is replaced: header row first, then one row per record
//     in the given order, preserving each cell's stored type.
//   - The workbook is written to a temporary file in the target directory and
//     atomically renamed over the target, with one retry on transient I/O
//     failure. A failed write leaves the previous file intact.
//
// =============================================================================

package sheet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"github.com/xuri/excelize/v2"
)

// DefaultWriteRetries is the number of extra attempts after a failed save.
const DefaultWriteRetries = 1

// Codec reads and writes typed rows from single-sheet workbooks.
type Codec struct {
	log          zerolog.Logger
	writeRetries uint64
	retryBackoff time.Duration
}

// NewCodec creates a Codec with the default retry policy.
func NewCodec(log zerolog.Logger) *Codec {
	return &Codec{
		log:          log,
		writeRetries: DefaultWriteRetries,
		retryBackoff: 150 * time.Millisecond,
	}
}

// =============================================================================
// READING
// =============================================================================

// ReadRecords reads the data rows of the workbook's first sheet, validated
// and normalized against the schema. Rows that fail validation are skipped.
func (c *Codec) ReadRecords(path string, sc Schema) ([]Row, error) {
	_, raw, err := c.ReadRaw(path)
	if err != nil {
		return nil, err
	}

	var records []Row
	for i, row := range raw {
		if i == 0 {
			// Header row.
			continue
		}
		if row.IsEmpty() {
			continue
		}
		normalized, ok := sc.Conform(row)
		if !ok {
			c.log.Debug().
				Str("file", filepath.Base(path)).
				Int("row", i+1).
				Msg("skipping malformed row")
			continue
		}
		records = append(records, normalized)
	}
	return records, nil
}

// ReadRaw reads every row of the first sheet, header included, with no
// validation and with per-cell types preserved. It returns the sheet name so
// rewrites can keep it.
func (c *Codec) ReadRaw(path string) (string, []Row, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: %v", ErrCorruptCatalog, path, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return "", nil, fmt.Errorf("%w: %s: workbook has no sheets", ErrCorruptCatalog, path)
	}

	grid, err := f.GetRows(sheetName)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: %v", ErrCorruptCatalog, path, err)
	}

	rows := make([]Row, len(grid))
	for r := range grid {
		row := make(Row, len(grid[r]))
		for col := range grid[r] {
			cell, err := readCell(f, sheetName, col+1, r+1)
			if err != nil {
				return "", nil, fmt.Errorf("%w: %s: %v", ErrCorruptCatalog, path, err)
			}
			row[col] = cell
		}
		rows[r] = row
	}
	return sheetName, rows, nil
}

// readCell extracts one cell with its stored type. Plain numeric cells carry
// no explicit type attribute in the container, so an untyped cell whose raw
// value parses as a number is a number.
func readCell(f *excelize.File, sheetName string, col, row int) (Cell, error) {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Blank(), err
	}

	formula, err := f.GetCellFormula(sheetName, axis)
	if err != nil {
		return Blank(), err
	}
	if formula != "" {
		return Formula(formula), nil
	}

	raw, err := f.GetCellValue(sheetName, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		return Blank(), err
	}

	cellType, err := f.GetCellType(sheetName, axis)
	if err != nil {
		return Blank(), err
	}

	switch cellType {
	case excelize.CellTypeBool:
		return Bool(raw == "1" || raw == "TRUE"), nil
	case excelize.CellTypeInlineString, excelize.CellTypeSharedString:
		return String(raw), nil
	case excelize.CellTypeNumber:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return Number(n), nil
		}
		return String(raw), nil
	default:
		if raw == "" {
			return Blank(), nil
		}
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return Number(n), nil
		}
		return String(raw), nil
	}
}

// =============================================================================
// WRITING
// =============================================================================

// WriteRecords replaces the sheet content with the schema header followed by
// the given rows.
func (c *Codec) WriteRecords(path string, sc Schema, rows []Row) error {
	all := make([]Row, 0, len(rows)+1)
	all = append(all, sc.Header())
	all = append(all, rows...)
	return c.WriteRaw(path, sc.Sheet, all)
}

// WriteRaw writes the rows (header included) as the entire content of a
// single-sheet workbook, preserving each cell's stored type.
func (c *Codec) WriteRaw(path, sheetName string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet %q: %w", sheetName, err)
	}

	for r, row := range rows {
		for col, cell := range row {
			if err := writeCell(f, sheetName, col+1, r+1, cell); err != nil {
				return fmt.Errorf("writing cell (%d,%d): %w", r+1, col+1, err)
			}
		}
	}

	return c.saveAtomic(f, path)
}

func writeCell(f *excelize.File, sheetName string, col, row int, cell Cell) error {
	if cell.Kind == KindBlank {
		return nil
	}
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	switch cell.Kind {
	case KindString:
		return f.SetCellStr(sheetName, axis, cell.Str)
	case KindNumber:
		return f.SetCellValue(sheetName, axis, cell.Num)
	case KindBool:
		return f.SetCellBool(sheetName, axis, cell.Bool)
	case KindFormula:
		return f.SetCellFormula(sheetName, axis, cell.Formula)
	default:
		return nil
	}
}

// saveAtomic writes the workbook to a temporary file next to the target and
// renames it into place, retrying transient failures once.
func (c *Codec) saveAtomic(f *excelize.File, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	backoff := retry.WithMaxRetries(c.writeRetries, retry.NewConstant(c.retryBackoff))
	attempt := 0

	return retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		attempt++
		if err := saveOnce(f, dir, path); err != nil {
			c.log.Warn().
				Err(err).
				Str("file", filepath.Base(path)).
				Int("attempt", attempt).
				Msg("workbook save failed")
			return retry.RetryableError(err)
		}
		return nil
	})
}

func saveOnce(f *excelize.File, dir, path string) error {
	tmp, err := os.CreateTemp(dir, ".ordersheet-*.xlsx")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing workbook: %w", err)
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
