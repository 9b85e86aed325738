package submissions

import (
	"context"
	"fmt"

	apperrors "codeberg.org/interprep/server/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// stores an evaluated (or pending) submission
func (r *Repository) Create(ctx context.Context, s Submission) (*Submission, error) {
	if s.Status == "" {
		s.Status = StatusPending
	}

	var id int64

	err := r.db.QueryRow(ctx, queryCreate,
		s.UserID,
		s.QuestionID,
		s.Code,
		s.Language,
		s.Status,
		s.Runtime,
		s.Memory,
		s.Feedback,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert submission: %w", err)
	}

	return r.Get(ctx, id, s.UserID)
}

// returns the submission only if it belongs to userID
func (r *Repository) Get(ctx context.Context, submissionID, userID int64) (*Submission, error) {
	s, err := scanSubmission(r.db.QueryRow(ctx, queryGet, submissionID, userID))
	if apperrors.IsNoRows(err) {
		return nil, ErrSubmissionNotFound
	}

	return s, err
}

// the user's submissions, newest first
func (r *Repository) List(ctx context.Context, userID int64, f ListFilter, limit, offset int) ([]Submission, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCount, userID, f.QuestionID, f.Status).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, queryList, userID, f.QuestionID, f.Status, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	list := []Submission{}

	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, err
		}

		list = append(list, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// submission count per status
func (r *Repository) StatusCounts(ctx context.Context, userID int64) (map[string]int, error) {
	rows, err := r.db.Query(ctx, queryStatusCounts, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	counts := make(map[string]int)

	for rows.Next() {
		var (
			status string
			n      int
		)

		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}

		counts[status] = n
	}

	return counts, rows.Err()
}

func scanSubmission(row pgx.Row) (*Submission, error) {
	var s Submission

	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.QuestionID,
		&s.QuestionTitle,
		&s.Code,
		&s.Language,
		&s.Status,
		&s.Runtime,
		&s.Memory,
		&s.Feedback,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}
