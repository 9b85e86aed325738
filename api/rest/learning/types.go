package learning

import (
	"context"

	"codeberg.org/interprep/server/interprep/learning"
)

const defaultRecommendations = 3

type Store interface {
	Categories(ctx context.Context) ([]learning.Category, error)
	Topics(ctx context.Context, categoryID int64) ([]learning.Topic, error)
	TopicContent(ctx context.Context, userID, topicID int64) (*learning.TopicContent, error)
	Content(ctx context.Context, contentID int64) (*learning.Content, error)
	UpdateProgress(ctx context.Context, userID int64, req learning.UpdateProgressRequest) (*learning.Progress, error)
	Snapshot(ctx context.Context, userID int64) (*learning.Snapshot, error)
}

type TopicsQuery struct {
	CategoryID int64 `form:"category_id" binding:"gte=0"`
}

type RecommendationsQuery struct {
	Limit int `form:"limit,default=3" binding:"gte=0,lte=20"`
}

type CategoriesResponse struct {
	Categories []learning.Category `json:"categories"`
}

type TopicsResponse struct {
	Topics []learning.Topic `json:"topics"`
}

type RecommendationsResponse struct {
	Recommendations []learning.Recommendation `json:"recommendations"`
}
