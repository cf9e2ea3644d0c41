package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"studybuddy/internal/domain"
	"studybuddy/internal/repository/models"
)

const feedbackHistoryColumns = `id, subject, grade, difficulty, score, total_questions, correct_answers, topics, feedback, completed_at`

// sqlxProgressRepository implements domain.ProgressRepository on the feedback_history table.
type sqlxProgressRepository struct {
	db DBTX
}

// NewSQLXProgressRepository creates a new instance of sqlxProgressRepository.
func NewSQLXProgressRepository(db DBTX) domain.ProgressRepository {
	return &sqlxProgressRepository{db: db}
}

func (r *sqlxProgressRepository) Save(ctx context.Context, record *domain.ProgressRecord) error {
	query := r.db.Rebind(`INSERT INTO feedback_history (` + feedbackHistoryColumns + `)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	m := models.NewFeedbackHistory(record)
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Subject,
		m.Grade,
		m.Difficulty,
		m.Score,
		m.TotalQuestions,
		m.CorrectAnswers,
		m.Topics,
		m.Feedback,
		m.CompletedAt,
	)
	if err != nil {
		return domain.NewInternalError("failed to save feedback history", err)
	}
	return nil
}

func (r *sqlxProgressRepository) List(ctx context.Context, subject string, limit int) ([]domain.ProgressRecord, error) {
	var (
		where string
		args  []interface{}
	)
	if subject = strings.TrimSpace(subject); subject != "" {
		where = " WHERE LOWER(subject) = ?"
		args = append(args, strings.ToLower(subject))
	}
	query := r.db.Rebind(`SELECT ` + feedbackHistoryColumns + ` FROM feedback_history` + where +
		` ORDER BY completed_at DESC, id DESC` + r.limitClause(limit))

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewInternalError("failed to list feedback history", err)
	}
	defer rows.Close()

	records := []domain.ProgressRecord{}
	for rows.Next() {
		m, err := scanFeedbackHistory(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, m.ToDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewInternalError("failed to iterate feedback history", err)
	}
	return records, nil
}

func (r *sqlxProgressRepository) Get(ctx context.Context, id string) (*domain.ProgressRecord, error) {
	query := r.db.Rebind(`SELECT ` + feedbackHistoryColumns + ` FROM feedback_history WHERE id = ?`)
	rows, err := r.db.QueryxContext(ctx, query, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get feedback history", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, domain.NewInternalError("failed to get feedback history", err)
		}
		return nil, domain.NewNotFoundError(fmt.Sprintf("Feedback record not found with ID: %s", id))
	}
	m, err := scanFeedbackHistory(rows)
	if err != nil {
		return nil, err
	}
	record := m.ToDomain()
	return &record, nil
}

func (r *sqlxProgressRepository) Delete(ctx context.Context, id string) error {
	query := r.db.Rebind(`DELETE FROM feedback_history WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return domain.NewInternalError("failed to delete feedback history", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewInternalError("failed to delete feedback history", err)
	}
	if n == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("Feedback record not found with ID: %s", id))
	}
	return nil
}

// scanFeedbackHistory reads the current row. The scan is positional because Oracle
// reports column names in upper case.
func scanFeedbackHistory(rows *sqlx.Rows) (models.FeedbackHistory, error) {
	var m models.FeedbackHistory
	if err := rows.Scan(
		&m.ID,
		&m.Subject,
		&m.Grade,
		&m.Difficulty,
		&m.Score,
		&m.TotalQuestions,
		&m.CorrectAnswers,
		&m.Topics,
		&m.Feedback,
		&m.CompletedAt,
	); err != nil {
		return m, domain.NewInternalError("failed to scan feedback history", err)
	}
	return m, nil
}

// limitClause renders a row limit in the dialect of the connected driver.
func (r *sqlxProgressRepository) limitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	switch r.db.DriverName() {
	case "oracle", "pgx":
		return fmt.Sprintf(" FETCH FIRST %d ROWS ONLY", limit)
	default:
		return fmt.Sprintf(" LIMIT %d", limit)
	}
}
