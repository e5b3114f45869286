package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// defaultSheet is the tab every new excelize file starts with
const defaultSheet = "Sheet1"

// WriteWorkbook writes one sheet per section, each with a header row of
// field names followed by a row per record
func WriteWorkbook(w io.Writer, b Bundle) (err error) {
	if len(b.Sections) == 0 {
		return fmt.Errorf("export %s has no sections", b.Prefix)
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	for i, s := range b.Sections {
		name := s.sheet()
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
		if err := writeSheet(f, name, s.Rows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, rows any) error {
	header, records, err := Table(rows)
	if err != nil {
		return fmt.Errorf("sheet %s: %w", name, err)
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("sheet %s: failed to write header: %w", name, err)
	}
	for r, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &record); err != nil {
			return fmt.Errorf("sheet %s: failed to write row %d: %w", name, r+1, err)
		}
	}
	return nil
}
