package v1

import (
	"bytes"
	"fmt"

	"github.com/smartbash/brgy_dispatch/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	dispatchSheet = "Dispatches"
	xlsxMIME      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var dispatchHeaders = []string{
	"Dispatch ID", "Report ID", "Incident Type", "Barangay", "Location",
	"Status", "SMS Sent", "SMS Error", "Dispatched At", "Updated At",
}

var dispatchColumnWidths = []float64{38, 10, 14, 20, 40, 12, 10, 40, 20, 20}

// dispatchesWorkbook renders a service's dispatch history as an XLSX file
func dispatchesWorkbook(list []*models.ServiceDispatchNotification) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(dispatchSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range dispatchHeaders {
		if err := setCell(f, i+1, 1, header); err != nil {
			return nil, err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(dispatchSheet, col, col, dispatchColumnWidths[i]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(dispatchHeaders), 1)
	if err := f.SetCellStyle(dispatchSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i, n := range list {
		row := i + 2
		smsSent := "No"
		if n.SMSSent {
			smsSent = "Yes"
		}
		smsError := ""
		if n.SMSError != nil {
			smsError = *n.SMSError
		}
		values := []any{
			n.ID.String(),
			n.ReportID,
			string(n.IncidentType),
			n.Barangay,
			n.LocationText,
			string(n.Status),
			smsSent,
			smsError,
			n.CreatedAt.Format("2006-01-02 15:04:05"),
			n.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetPanes(dispatchSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellValue(dispatchSheet, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}
