package questions

import (
	"context"
	"fmt"

	"codeberg.org/interprep/server/internal/catalog"
	apperrors "codeberg.org/interprep/server/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// lists questions matching the filter, with the total match count
func (r *Repository) List(ctx context.Context, f catalog.Filter, limit, offset int) ([]Question, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCount, f.Topic, f.Difficulty, f.Company).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, queryList, f.Topic, f.Difficulty, f.Company, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	questions, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

func (r *Repository) Get(ctx context.Context, questionID int64) (*Question, error) {
	q, err := scanQuestion(r.db.QueryRow(ctx, queryGet, questionID))
	if apperrors.IsNoRows(err) {
		return nil, ErrQuestionNotFound
	}

	if err != nil {
		return nil, err
	}

	return q, nil
}

// loads a question with the caller's favorite flag and records the view
func (r *Repository) View(ctx context.Context, questionID, userID int64) (*Detail, error) {
	q, err := r.Get(ctx, questionID)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Question: *q}

	if userID == 0 {
		return detail, nil
	}

	if err := r.db.QueryRow(ctx, queryIsFavorite, userID, questionID).Scan(&detail.IsFavorite); err != nil {
		return nil, err
	}

	if _, err := r.RecordPractice(ctx, userID, questionID, false); err != nil {
		return nil, err
	}

	return detail, nil
}

// fetches questions by id, in the order given; unknown ids are skipped
func (r *Repository) ByIDs(ctx context.Context, ids []int64) ([]Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, queryByIDs, ids)
	if err != nil {
		return nil, err
	}

	found, err := collect(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]Question, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}

	ordered := make([]Question, 0, len(found))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}

	return ordered, nil
}

// inserts a question; a nil embedding leaves the vector column NULL
func (r *Repository) Create(ctx context.Context, req CreateRequest, embedding []float32) (*Question, error) {
	var vec *pgvector.Vector
	if embedding != nil {
		v := pgvector.NewVector(embedding)
		vec = &v
	}

	var id int64

	err := r.db.QueryRow(ctx, queryCreate,
		req.Title,
		req.Content,
		req.Difficulty,
		req.Topic,
		req.Company,
		req.CodeTemplate,
		req.Solution,
		nullableJSON(req.TestCases),
		nullableJSON(req.Hints),
		vec,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert question: %w", err)
	}

	return r.Get(ctx, id)
}

// replaces a question's content (used after HTML formatting)
func (r *Repository) UpdateContent(ctx context.Context, questionID int64, content string) error {
	tag, err := r.db.Exec(ctx, queryUpdateContent, content, questionID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrQuestionNotFound
	}

	return nil
}

// idempotent
func (r *Repository) AddFavorite(ctx context.Context, userID, questionID int64) error {
	if _, err := r.Get(ctx, questionID); err != nil {
		return err
	}

	_, err := r.db.Exec(ctx, queryAddFavorite, userID, questionID)

	return err
}

func (r *Repository) RemoveFavorite(ctx context.Context, userID, questionID int64) error {
	tag, err := r.db.Exec(ctx, queryRemoveFavorite, userID, questionID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}

func (r *Repository) ListFavorites(ctx context.Context, userID int64) ([]Favorite, error) {
	rows, err := r.db.Query(ctx, queryListFavorites, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	favorites := []Favorite{}

	for rows.Next() {
		var f Favorite
		err := rows.Scan(
			&f.ID,
			&f.AddedAt,
			&f.Question.ID,
			&f.Question.Title,
			&f.Question.Content,
			&f.Question.Difficulty,
			&f.Question.Topic,
			&f.Question.Company,
			&f.Question.CodeTemplate,
			&f.Question.Hints,
			&f.Question.Solution,
			&f.Question.TestCases,
			&f.Question.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		f.Question.Solution = ""
		f.Question.TestCases = nil
		favorites = append(favorites, f)
	}

	return favorites, rows.Err()
}

// upserts the practice record; completion never reverts to false
func (r *Repository) RecordPractice(ctx context.Context, userID, questionID int64, completed bool) (*History, error) {
	var h History

	err := r.db.QueryRow(ctx, queryRecordPractice, userID, questionID, completed).Scan(
		&h.ID,
		&h.UserID,
		&h.QuestionID,
		&h.Completed,
		&h.Attempts,
		&h.LastPracticed,
	)
	if err != nil {
		return nil, err
	}

	return &h, nil
}

// the user's practice records, most recent first
func (r *Repository) History(ctx context.Context, userID int64) ([]History, error) {
	rows, err := r.db.Query(ctx, queryHistory, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	history := []History{}

	for rows.Next() {
		var h History
		err := rows.Scan(
			&h.ID,
			&h.UserID,
			&h.QuestionID,
			&h.Title,
			&h.Topic,
			&h.Difficulty,
			&h.Completed,
			&h.Attempts,
			&h.LastPracticed,
		)
		if err != nil {
			return nil, err
		}

		history = append(history, h)
	}

	return history, rows.Err()
}

// the catalog view of a question, as indexed by the retrieval service
func ToItem(q Question) catalog.Item {
	return catalog.Item{
		ID:         q.ID,
		Title:      q.Title,
		Topic:      q.Topic,
		Difficulty: q.Difficulty,
		Company:    q.Company,
		Content:    q.Content,
	}
}

// strips answer material before sending a question to a client
func (q Question) Public() Question {
	q.Solution = ""
	q.TestCases = nil

	return q
}

func scanQuestion(row pgx.Row) (*Question, error) {
	var q Question

	err := row.Scan(
		&q.ID,
		&q.Title,
		&q.Content,
		&q.Difficulty,
		&q.Topic,
		&q.Company,
		&q.CodeTemplate,
		&q.Hints,
		&q.Solution,
		&q.TestCases,
		&q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &q, nil
}

func collect(rows pgx.Rows) ([]Question, error) {
	defer rows.Close()

	questions := []Question{}

	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}

		questions = append(questions, *q)
	}

	return questions, rows.Err()
}

func nullableJSON(raw []byte) *string {
	if len(raw) == 0 {
		return nil
	}

	s := string(raw)

	return &s
}
