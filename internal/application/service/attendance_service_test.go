package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	seq     int
	records map[string]*entity.AttendanceRecord // key employeeID|date
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*entity.AttendanceRecord)}
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, rec *entity.AttendanceRecord) error {
	r.seq++
	rec.ID = fmt.Sprintf("att-%d", r.seq)
	clone := *rec
	r.records[rec.EmployeeID+"|"+rec.Date] = &clone
	return nil
}

func (r *fakeAttendanceRepo) Update(ctx context.Context, rec *entity.AttendanceRecord) error {
	clone := *rec
	r.records[rec.EmployeeID+"|"+rec.Date] = &clone
	return nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*entity.AttendanceRecord, error) {
	rec, ok := r.records[employeeID+"|"+date]
	if !ok {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (r *fakeAttendanceRepo) ListByDate(ctx context.Context, date string) ([]*entity.AttendanceRecord, error) {
	var out []*entity.AttendanceRecord
	for _, rec := range r.records {
		if rec.Date == date {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) List(ctx context.Context) ([]*entity.AttendanceRecord, error) {
	var out []*entity.AttendanceRecord
	for _, rec := range r.records {
		clone := *rec
		out = append(out, &clone)
	}
	return out, nil
}

func TestClockIn_CreatesPresentRecord(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo(), nil, nopLogger{})

	rec, err := svc.ClockIn(context.Background(), "budi", "Budi", "2024-06-01", "07:58", "")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, entity.AttendanceStatusPresent, rec.Status)
	assert.Equal(t, "07:58", rec.ClockIn)
	assert.Equal(t, "-", rec.ClockOut)
	assert.Equal(t, "-", rec.Notes)
	assert.True(t, rec.HasClockedIn())
}

func TestClockIn_RejectsSecondRecordSameDay(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo(), nil, nopLogger{})
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, "budi", "Budi", "2024-06-01", "07:58", "")
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, "budi", "Budi", "2024-06-01", "08:10", "")
	assert.Error(t, err)

	// Same employee on another date is fine.
	_, err = svc.ClockIn(ctx, "budi", "Budi", "2024-06-02", "08:01", "")
	assert.NoError(t, err)
}

func TestClockOut_StampsTimeAndStatus(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, nil, nopLogger{})
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, "budi", "Budi", "2024-06-01", "07:58", "")
	require.NoError(t, err)

	rec, err := svc.ClockOut(ctx, "budi", "2024-06-01", "17:05", "Lembur selesai")
	require.NoError(t, err)
	assert.Equal(t, entity.AttendanceStatusClockedOut, rec.Status)
	assert.Equal(t, "17:05", rec.ClockOut)
	assert.Equal(t, "Lembur selesai", rec.Notes)
	assert.True(t, rec.HasClockedIn())

	stored, err := repo.GetByEmployeeAndDate(ctx, "budi", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, entity.AttendanceStatusClockedOut, stored.Status)
}

func TestClockOut_WithoutClockInFails(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo(), nil, nopLogger{})

	_, err := svc.ClockOut(context.Background(), "budi", "2024-06-01", "17:05", "")
	assert.ErrorIs(t, err, ErrNotFound)
}
