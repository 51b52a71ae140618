// Package export renders leave permits to printable Excel documents.
package export

import (
	"context"
	"fmt"

	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	formSheet  = "Surat Izin"
	recapSheet = "Rekap"
)

// Exporter writes permit documents as .xlsx files.
type Exporter struct {
	logger *zap.Logger
}

// NewExporter creates a new Exporter
func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// WritePermitForm renders one finalized permit as a printable exit-permit
// form and saves it to outputPath.
func (e *Exporter) WritePermitForm(ctx context.Context, permit *entity.LeavePermit, outputPath string) (string, error) {
	if !permit.IsFinalized() {
		return "", fmt.Errorf("permit %s is not approved yet", permit.ID)
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	if err := file.SetSheetName(sheet, formSheet); err != nil {
		return "", fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := file.SetColWidth(formSheet, "A", "A", 24); err != nil {
		return "", fmt.Errorf("failed to set column width: %w", err)
	}
	if err := file.SetColWidth(formSheet, "B", "B", 40); err != nil {
		return "", fmt.Errorf("failed to set column width: %w", err)
	}

	title, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create style: %w", err)
	}

	if err := file.MergeCell(formSheet, "A1", "B1"); err != nil {
		return "", fmt.Errorf("failed to merge title cells: %w", err)
	}
	if err := file.SetCellValue(formSheet, "A1", "SURAT IZIN KELUAR KARYAWAN"); err != nil {
		return "", fmt.Errorf("failed to set title: %w", err)
	}
	if err := file.SetCellStyle(formSheet, "A1", "B1", title); err != nil {
		return "", fmt.Errorf("failed to apply title style: %w", err)
	}

	rows := [][2]interface{}{
		{"Nomor", permit.ID},
		{"Nama", permit.EmployeeName},
		{"Tanggal", permit.Date},
		{"Jam Keluar (rencana)", permit.LeaveTime},
		{"Keperluan", permit.Purpose},
		{"Security Jaga", permit.SecurityOnDuty},
		{"Status", permit.Status},
		{"Disetujui Oleh", permit.ApprovedBy},
		{"Jam Keluar (aktual)", permit.ActualLeaveTime},
		{"Jam Kembali (aktual)", permit.ActualReturnTime},
	}
	for i, row := range rows {
		cellA, _ := excelize.CoordinatesToCellName(1, i+3)
		cellB, _ := excelize.CoordinatesToCellName(2, i+3)
		if err := file.SetCellValue(formSheet, cellA, row[0]); err != nil {
			return "", fmt.Errorf("failed to set cell %s: %w", cellA, err)
		}
		if err := file.SetCellValue(formSheet, cellB, row[1]); err != nil {
			return "", fmt.Errorf("failed to set cell %s: %w", cellB, err)
		}
	}

	if err := file.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	e.logger.Info("Permit form exported",
		zap.String("id", permit.ID),
		zap.String("output_path", outputPath))

	return outputPath, nil
}

var recapHeaders = []string{
	"No", "Nama", "Tanggal", "Jam Keluar", "Keperluan",
	"Status", "Disetujui Oleh", "Jam Keluar Aktual", "Jam Kembali",
}

// WriteMonthlyRecap renders the month's permits as a recap sheet, one row
// per permit, and saves it to outputPath.
func (e *Exporter) WriteMonthlyRecap(ctx context.Context, month string, permits []*entity.LeavePermit, outputPath string) (string, error) {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	if err := file.SetSheetName(sheet, recapSheet); err != nil {
		return "", fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := file.SetCellValue(recapSheet, "A1", fmt.Sprintf("Rekap Izin Keluar %s", month)); err != nil {
		return "", fmt.Errorf("failed to set title: %w", err)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create style: %w", err)
	}

	for i, header := range recapHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := file.SetCellValue(recapSheet, cell, header); err != nil {
			return "", fmt.Errorf("failed to set header %s: %w", header, err)
		}
	}
	firstHeader, _ := excelize.CoordinatesToCellName(1, 2)
	lastHeader, _ := excelize.CoordinatesToCellName(len(recapHeaders), 2)
	if err := file.SetCellStyle(recapSheet, firstHeader, lastHeader, headerStyle); err != nil {
		return "", fmt.Errorf("failed to apply header style: %w", err)
	}

	for i, permit := range permits {
		values := []interface{}{
			i + 1,
			permit.EmployeeName,
			permit.Date,
			permit.LeaveTime,
			permit.Purpose,
			permit.Status,
			permit.ApprovedBy,
			permit.ActualLeaveTime,
			permit.ActualReturnTime,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+3)
			if err := file.SetCellValue(recapSheet, cell, value); err != nil {
				return "", fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	e.logger.Info("Monthly recap exported",
		zap.String("month", month),
		zap.Int("permits", len(permits)),
		zap.String("output_path", outputPath))

	return outputPath, nil
}
