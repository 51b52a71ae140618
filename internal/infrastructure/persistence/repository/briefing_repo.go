package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/awahyudi/facility-portal/internal/application/port"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"go.uber.org/zap"
)

// BriefingRepository implements port.BriefingRepository
type BriefingRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBriefingRepository creates a new briefing repository
func NewBriefingRepository(db *sql.DB, logger *zap.Logger) port.BriefingRepository {
	return &BriefingRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a briefing record. Attendees are stored as a JSON array in
// a text column.
func (r *BriefingRepository) Create(ctx context.Context, b *entity.SafetyBriefing) error {
	b.ID = newID()
	b.CreatedAt = time.Now().UTC()

	attendees, err := json.Marshal(b.Attendees)
	if err != nil {
		return fmt.Errorf("failed to encode attendees: %w", err)
	}

	query := `
		INSERT INTO safety_briefings (id, date, topic, conductor, attendees, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = executorFrom(ctx, r.db).ExecContext(ctx, query,
		b.ID,
		b.Date,
		b.Topic,
		b.Conductor,
		string(attendees),
		b.Notes,
		b.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create briefing", zap.Error(err))
		return fmt.Errorf("failed to create briefing: %w", err)
	}

	return nil
}

// List retrieves all briefings, newest first.
func (r *BriefingRepository) List(ctx context.Context) ([]*entity.SafetyBriefing, error) {
	query := `
		SELECT id, date, topic, conductor, attendees, notes, created_at
		FROM safety_briefings
		ORDER BY date DESC, created_at DESC
	`

	rows, err := executorFrom(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list briefings", zap.Error(err))
		return nil, fmt.Errorf("failed to list briefings: %w", err)
	}
	defer rows.Close()

	var briefings []*entity.SafetyBriefing
	for rows.Next() {
		var b entity.SafetyBriefing
		var attendees string
		err := rows.Scan(
			&b.ID,
			&b.Date,
			&b.Topic,
			&b.Conductor,
			&attendees,
			&b.Notes,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan briefing: %w", err)
		}
		if attendees != "" {
			if err := json.Unmarshal([]byte(attendees), &b.Attendees); err != nil {
				return nil, fmt.Errorf("failed to decode attendees: %w", err)
			}
		}
		briefings = append(briefings, &b)
	}

	return briefings, rows.Err()
}

// Verify interface compliance
var _ port.BriefingRepository = (*BriefingRepository)(nil)
