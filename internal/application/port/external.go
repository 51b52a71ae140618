package port

import "context"

// ReportInput is the fixed input contract of the daily-report generator.
type ReportInput struct {
	Date              string // YYYY-MM-DD
	Activities        string
	AttendanceSummary string
	WasteSummary      string
}

// ReportGenerator is the opaque text-generation collaborator. Given the
// day's summaries it produces the full report text.
type ReportGenerator interface {
	GenerateDailyReport(ctx context.Context, input ReportInput) (string, error)
}
