package service

import (
	"context"
	"errors"
	"testing"

	"github.com/awahyudi/facility-portal/internal/application/port"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportAttendanceRepo struct {
	mockAttendanceRepo
	byDate map[string][]*entity.AttendanceRecord
}

func (m *reportAttendanceRepo) ListByDate(ctx context.Context, date string) ([]*entity.AttendanceRecord, error) {
	return m.byDate[date], nil
}

type mockGenerator struct {
	gotInput port.ReportInput
	report   string
	err      error
}

func (m *mockGenerator) GenerateDailyReport(ctx context.Context, input port.ReportInput) (string, error) {
	m.gotInput = input
	return m.report, m.err
}

type mockWasteRepo struct {
	byDate map[string][]*entity.WasteRecord
}

func (m *mockWasteRepo) Create(ctx context.Context, rec *entity.WasteRecord) error { return nil }
func (m *mockWasteRepo) Update(ctx context.Context, rec *entity.WasteRecord) error { return nil }
func (m *mockWasteRepo) Delete(ctx context.Context, id string) error               { return nil }
func (m *mockWasteRepo) GetByID(ctx context.Context, id string) (*entity.WasteRecord, error) {
	return nil, nil
}
func (m *mockWasteRepo) List(ctx context.Context) ([]*entity.WasteRecord, error) { return nil, nil }
func (m *mockWasteRepo) ListByIntakeDate(ctx context.Context, date string) ([]*entity.WasteRecord, error) {
	return m.byDate[date], nil
}

func TestGenerateDailyReport_ComposesSummaries(t *testing.T) {
	attendance := &reportAttendanceRepo{byDate: map[string][]*entity.AttendanceRecord{
		"2024-06-01": {
			{Status: entity.AttendanceStatusPresent},
			{Status: entity.AttendanceStatusPresent},
			{Status: entity.AttendanceStatusClockedOut},
			{Status: entity.AttendanceStatusAbsent},
		},
	}}
	waste := NewWasteService(&mockWasteRepo{byDate: map[string][]*entity.WasteRecord{
		"2024-06-01": {
			{Kind: "Oli bekas", Quantity: 12.5, Unit: "liter", Source: "Workshop", Treatment: "Disimpan di TPS"},
		},
	}}, nil, nopLogger{})
	gen := &mockGenerator{report: "Laporan harian siap."}

	svc := NewReportService(attendance, waste, gen, nopLogger{})
	report, err := svc.GenerateDailyReport(context.Background(), "2024-06-01", "Inspeksi gudang pagi")
	require.NoError(t, err)
	assert.Equal(t, "Laporan harian siap.", report)

	assert.Equal(t, "2024-06-01", gen.gotInput.Date)
	assert.Equal(t, "Inspeksi gudang pagi", gen.gotInput.Activities)
	assert.Contains(t, gen.gotInput.AttendanceSummary, entity.AttendanceStatusPresent+": 2")
	assert.Contains(t, gen.gotInput.AttendanceSummary, entity.AttendanceStatusClockedOut+": 1")
	assert.Contains(t, gen.gotInput.WasteSummary, "Oli bekas")
	assert.Contains(t, gen.gotInput.WasteSummary, "12.50 liter")
}

func TestGenerateDailyReport_EmptyDayPlaceholders(t *testing.T) {
	attendance := &reportAttendanceRepo{byDate: map[string][]*entity.AttendanceRecord{}}
	waste := NewWasteService(&mockWasteRepo{byDate: map[string][]*entity.WasteRecord{}}, nil, nopLogger{})
	gen := &mockGenerator{report: "ok"}

	svc := NewReportService(attendance, waste, gen, nopLogger{})
	_, err := svc.GenerateDailyReport(context.Background(), "2024-06-02", "")
	require.NoError(t, err)

	assert.Equal(t, "Tidak ada data absensi.", gen.gotInput.AttendanceSummary)
	assert.Equal(t, "Tidak ada limbah B3 masuk.", gen.gotInput.WasteSummary)
}

func TestGenerateDailyReport_RequiresDate(t *testing.T) {
	svc := NewReportService(&reportAttendanceRepo{}, nil, &mockGenerator{}, nopLogger{})
	_, err := svc.GenerateDailyReport(context.Background(), "", "x")
	assert.Error(t, err)
}

func TestGenerateDailyReport_GeneratorFailurePropagates(t *testing.T) {
	attendance := &reportAttendanceRepo{byDate: map[string][]*entity.AttendanceRecord{}}
	waste := NewWasteService(&mockWasteRepo{byDate: map[string][]*entity.WasteRecord{}}, nil, nopLogger{})
	genErr := errors.New("model unavailable")
	gen := &mockGenerator{err: genErr}

	svc := NewReportService(attendance, waste, gen, nopLogger{})
	_, err := svc.GenerateDailyReport(context.Background(), "2024-06-02", "x")
	assert.ErrorIs(t, err, genErr)
}
