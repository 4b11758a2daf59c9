package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rbnabilahpulunganadm/jumatberkah/internal/repository"
)

// ExportHeaders is the fixed 12-column layout of the intake table.
var ExportHeaders = []string{
	"Timestamp", "ReservationID", "BookerName", "NationalID", "Phone",
	"Address", "ChildName", "ChildBirthDate", "TreatmentType",
	"ArrivalSlot", "Complaint", "AssignedStaff",
}

// exportColumnWidths mirrors the original sheet's pixel widths
// (150,150,180,150,120,250,180,120,250,120,300,120), converted to
// spreadsheet character units.
var exportColumnWidths = []float64{
	21.4, 21.4, 25.7, 21.4, 17.1, 35.7, 25.7, 17.1, 35.7, 17.1, 42.9, 17.1,
}

const exportSheetName = "Reservations"

// ExportService renders the full intake table as an XLSX workbook with the
// canonical header layout, for staff hand-off.
type ExportService struct {
	store repository.RowStore
}

// NewExportService creates the export service.
func NewExportService(store repository.RowStore) *ExportService {
	return &ExportService{store: store}
}

// Workbook builds the XLSX file: bold frozen header row, fixed column
// widths, one row per reservation in store order.
func (s *ExportService) Workbook() ([]byte, error) {
	rows, err := s.store.ScanRows()
	if err != nil {
		return nil, fmt.Errorf("export reservations: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, fmt.Errorf("export sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("export header style: %w", err)
	}
	for col, header := range ExportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("export header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(exportSheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("export header style %s: %w", cell, err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("export column name: %w", err)
		}
		if err := f.SetColWidth(exportSheetName, name, name, exportColumnWidths[col]); err != nil {
			return nil, fmt.Errorf("export column width %s: %w", name, err)
		}
	}
	if err := f.SetPanes(exportSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("export frozen header: %w", err)
	}

	for i := range rows {
		row := &rows[i]
		values := []interface{}{
			row.Timestamp.Format("2006-01-02 15:04:05"),
			row.ReservationID, row.BookerName, row.NationalID, row.Phone,
			row.Address, row.ChildName, row.ChildBirthDate, row.TreatmentType,
			row.ArrivalSlot, row.Complaint, row.AssignedStaff,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("export row cell: %w", err)
		}
		if err := f.SetSheetRow(exportSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("export row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	return buf.Bytes(), nil
}
