package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/awahyudi/facility-portal/internal/application/port"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/awahyudi/facility-portal/pkg/utils"
)

// ReportService composes the daily operational report: it gathers the
// attendance and waste summaries for a date and hands them, with the
// operator-supplied activities text, to the AI text-generation collaborator.
type ReportService interface {
	GenerateDailyReport(ctx context.Context, date, activities string) (string, error)
}

type reportServiceImpl struct {
	attendanceRepo port.AttendanceRepository
	wasteService   WasteService
	generator      port.ReportGenerator
	logger         Logger
}

// NewReportService creates a ReportService.
func NewReportService(
	attendanceRepo port.AttendanceRepository,
	wasteService WasteService,
	generator port.ReportGenerator,
	logger Logger,
) ReportService {
	return &reportServiceImpl{
		attendanceRepo: attendanceRepo,
		wasteService:   wasteService,
		generator:      generator,
		logger:         logger,
	}
}

func (s *reportServiceImpl) GenerateDailyReport(ctx context.Context, date, activities string) (string, error) {
	if err := utils.ValidateDate(date); err != nil {
		return "", err
	}

	attendanceSummary, err := s.attendanceSummary(ctx, date)
	if err != nil {
		return "", err
	}

	wasteSummary, err := s.wasteService.DailySummary(ctx, date)
	if err != nil {
		return "", err
	}

	report, err := s.generator.GenerateDailyReport(ctx, port.ReportInput{
		Date:              date,
		Activities:        activities,
		AttendanceSummary: attendanceSummary,
		WasteSummary:      wasteSummary,
	})
	if err != nil {
		s.logger.Error("Failed to generate daily report", "error", err, "date", date)
		return "", fmt.Errorf("generate daily report: %w", err)
	}

	s.logger.Info("Daily report generated", "date", date, "length", len(report))
	return report, nil
}

// attendanceSummary counts the day's ledger by status.
func (s *reportServiceImpl) attendanceSummary(ctx context.Context, date string) (string, error) {
	records, err := s.attendanceRepo.ListByDate(ctx, date)
	if err != nil {
		return "", fmt.Errorf("attendance summary: %w", err)
	}
	if len(records) == 0 {
		return "Tidak ada data absensi.", nil
	}

	counts := map[string]int{}
	for _, rec := range records {
		counts[rec.Status]++
	}

	parts := make([]string, 0, len(counts))
	for _, status := range []string{
		entity.AttendanceStatusPresent,
		entity.AttendanceStatusClockedOut,
		entity.AttendanceStatusOnLeave,
		entity.AttendanceStatusAbsent,
	} {
		if n := counts[status]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", status, n))
		}
	}
	return strings.Join(parts, ", "), nil
}
