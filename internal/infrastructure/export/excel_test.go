package export

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func finalizedPermit() *entity.LeavePermit {
	return &entity.LeavePermit{
		ID:                   "01HZXC5TESTID",
		EmployeeID:           "budi",
		EmployeeName:         "Budi",
		Date:                 "2024-06-01",
		LeaveTime:            "09:00",
		Purpose:              "Keperluan keluarga",
		SecurityOnDuty:       "Pak Joko",
		Status:               entity.PermitStatusReturned,
		ApprovedBy:           "Ibu Sari",
		SecurityOutSignature: "data:image/png;base64,abc",
		ActualLeaveTime:      "09:15",
		ActualReturnTime:     "12:30",
		CreatedAt:            time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestWritePermitForm(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	exporter := NewExporter(logger)
	outputPath := filepath.Join(t.TempDir(), "permit.xlsx")

	resultPath, err := exporter.WritePermitForm(context.Background(), finalizedPermit(), outputPath)
	require.NoError(t, err)
	assert.Equal(t, outputPath, resultPath)
	assert.FileExists(t, outputPath)

	f, err := excelize.OpenFile(outputPath)
	require.NoError(t, err)
	defer f.Close()

	title, _ := f.GetCellValue("Surat Izin", "A1")
	assert.Equal(t, "SURAT IZIN KELUAR KARYAWAN", title)

	name, _ := f.GetCellValue("Surat Izin", "B4")
	assert.Equal(t, "Budi", name)

	returnTime, _ := f.GetCellValue("Surat Izin", "B12")
	assert.Equal(t, "12:30", returnTime)
}

func TestWritePermitForm_RejectsUnapprovedPermit(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	exporter := NewExporter(logger)

	permit := finalizedPermit()
	permit.Status = entity.PermitStatusPending

	_, err := exporter.WritePermitForm(context.Background(), permit, filepath.Join(t.TempDir(), "x.xlsx"))
	assert.Error(t, err)
}

func TestWriteMonthlyRecap(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	exporter := NewExporter(logger)
	outputPath := filepath.Join(t.TempDir(), "recap.xlsx")

	second := finalizedPermit()
	second.EmployeeName = "Siti"
	second.Status = entity.PermitStatusApproved

	permits := []*entity.LeavePermit{finalizedPermit(), second}

	resultPath, err := exporter.WriteMonthlyRecap(context.Background(), "2024-06", permits, outputPath)
	require.NoError(t, err)
	assert.FileExists(t, resultPath)

	f, err := excelize.OpenFile(outputPath)
	require.NoError(t, err)
	defer f.Close()

	title, _ := f.GetCellValue("Rekap", "A1")
	assert.Equal(t, "Rekap Izin Keluar 2024-06", title)

	firstName, _ := f.GetCellValue("Rekap", "B3")
	assert.Equal(t, "Budi", firstName)

	secondName, _ := f.GetCellValue("Rekap", "B4")
	assert.Equal(t, "Siti", secondName)
}
