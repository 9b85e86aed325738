package learning

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrTopicNotFound   = errors.New("topic not found")
	ErrContentNotFound = errors.New("content not found")
	ErrInvalidProgress = errors.New("progress percentage must be between 0 and 100")
)

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

type Repository struct {
	db *pgxpool.Pool
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
	Icon        string `json:"icon,omitempty"`
}

type Topic struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
	Icon        string `json:"icon,omitempty"`
}

type Content struct {
	ID          int64           `json:"id"`
	TopicID     int64           `json:"topic_id"`
	Title       string          `json:"title"`
	ContentType string          `json:"content_type"`
	Content     string          `json:"content"`
	Order       int             `json:"order"`
	Metadata    json.RawMessage `json:"metadata"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Progress struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	TopicID            int64     `json:"topic_id"`
	Completed          bool      `json:"completed"`
	ProgressPercentage float64   `json:"progress_percentage"`
	LastAccessed       time.Time `json:"last_accessed"`
}

type UpdateProgressRequest struct {
	TopicID            int64   `json:"topic_id" binding:"required,gt=0"`
	ProgressPercentage float64 `json:"progress_percentage" binding:"gte=0,lte=100"`
	Completed          *bool   `json:"completed,omitempty"`
}

// everything the path/stats/recommendation views are computed from
type Snapshot struct {
	Categories []Category
	Topics     []Topic
	Progress   []Progress
}

type TopicContent struct {
	Topic    Topic     `json:"topic"`
	Content  []Content `json:"content"`
	Progress *Progress `json:"progress,omitempty"`
}

type PathTopic struct {
	Topic
	Status             string  `json:"status"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

type PathCategory struct {
	Category
	Topics []PathTopic `json:"topics"`
}

type Path struct {
	Categories  []PathCategory `json:"categories"`
	NextTopicID int64          `json:"next_topic_id,omitempty"`
}

type CategoryProgress struct {
	CategoryID      int64   `json:"category_id"`
	Name            string  `json:"name"`
	TotalTopics     int     `json:"total_topics"`
	CompletedTopics int     `json:"completed_topics"`
	Progress        float64 `json:"progress"`
}

type Activity struct {
	TopicID            int64     `json:"topic_id"`
	TopicName          string    `json:"topic_name"`
	CategoryName       string    `json:"category_name,omitempty"`
	ProgressPercentage float64   `json:"progress_percentage"`
	Completed          bool      `json:"completed"`
	LastAccessed       time.Time `json:"last_accessed"`
}

type Stats struct {
	OverallProgress  float64            `json:"overall_progress"`
	TotalTopics      int                `json:"total_topics"`
	CompletedTopics  int                `json:"completed_topics"`
	CategoryProgress []CategoryProgress `json:"category_progress"`
	RecentActivity   []Activity         `json:"recent_activity"`
}

type Recommendation struct {
	TopicID      int64  `json:"id"`
	Name         string `json:"name"`
	CategoryName string `json:"category_name,omitempty"`
	Reason       string `json:"reason"`
}
