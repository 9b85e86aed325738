package learning

import (
	"context"

	apperrors "codeberg.org/interprep/server/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Categories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx, queryCategories)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	categories := []Category{}

	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Order, &c.Icon); err != nil {
			return nil, err
		}

		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// topics of one category, or of all categories when categoryID is 0
func (r *Repository) Topics(ctx context.Context, categoryID int64) ([]Topic, error) {
	rows, err := r.db.Query(ctx, queryTopics, categoryID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	topics := []Topic{}

	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}

		topics = append(topics, *t)
	}

	return topics, rows.Err()
}

func (r *Repository) Topic(ctx context.Context, topicID int64) (*Topic, error) {
	t, err := scanTopic(r.db.QueryRow(ctx, queryTopic, topicID))
	if apperrors.IsNoRows(err) {
		return nil, ErrTopicNotFound
	}

	return t, err
}

// a topic's content in display order, with the user's progress if any
func (r *Repository) TopicContent(ctx context.Context, userID, topicID int64) (*TopicContent, error) {
	topic, err := r.Topic(ctx, topicID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, queryContentByTopic, topicID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	result := &TopicContent{Topic: *topic, Content: []Content{}}

	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}

		result.Content = append(result.Content, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if userID == 0 {
		return result, nil
	}

	p, err := scanProgress(r.db.QueryRow(ctx, queryProgressForTopic, userID, topicID))
	switch {
	case apperrors.IsNoRows(err):
	case err != nil:
		return nil, err
	default:
		result.Progress = p
	}

	return result, nil
}

func (r *Repository) Content(ctx context.Context, contentID int64) (*Content, error) {
	c, err := scanContent(r.db.QueryRow(ctx, queryContent, contentID))
	if apperrors.IsNoRows(err) {
		return nil, ErrContentNotFound
	}

	return c, err
}

func (r *Repository) Progress(ctx context.Context, userID int64) ([]Progress, error) {
	rows, err := r.db.Query(ctx, queryProgressByUser, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	progress := []Progress{}

	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}

		progress = append(progress, *p)
	}

	return progress, rows.Err()
}

// records progress on a topic; completed nil keeps the stored flag
func (r *Repository) UpdateProgress(ctx context.Context, userID int64, req UpdateProgressRequest) (*Progress, error) {
	if req.ProgressPercentage < 0 || req.ProgressPercentage > 100 {
		return nil, ErrInvalidProgress
	}

	if _, err := r.Topic(ctx, req.TopicID); err != nil {
		return nil, err
	}

	return scanProgress(r.db.QueryRow(ctx, queryUpsertProgress,
		userID,
		req.TopicID,
		req.ProgressPercentage,
		req.Completed,
	))
}

// loads the inputs of BuildPath, ComputeStats and Recommend
func (r *Repository) Snapshot(ctx context.Context, userID int64) (*Snapshot, error) {
	categories, err := r.Categories(ctx)
	if err != nil {
		return nil, err
	}

	topics, err := r.Topics(ctx, 0)
	if err != nil {
		return nil, err
	}

	progress, err := r.Progress(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Snapshot{Categories: categories, Topics: topics, Progress: progress}, nil
}

func scanTopic(row pgx.Row) (*Topic, error) {
	var t Topic
	if err := row.Scan(&t.ID, &t.CategoryID, &t.Name, &t.Description, &t.Order, &t.Icon); err != nil {
		return nil, err
	}

	return &t, nil
}

func scanContent(row pgx.Row) (*Content, error) {
	var c Content

	err := row.Scan(
		&c.ID,
		&c.TopicID,
		&c.Title,
		&c.ContentType,
		&c.Content,
		&c.Order,
		&c.Metadata,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func scanProgress(row pgx.Row) (*Progress, error) {
	var p Progress
	if err := row.Scan(&p.ID, &p.UserID, &p.TopicID, &p.Completed, &p.ProgressPercentage, &p.LastAccessed); err != nil {
		return nil, err
	}

	return &p, nil
}
