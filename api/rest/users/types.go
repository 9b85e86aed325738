package users

import (
	"context"

	"codeberg.org/interprep/server/interprep/questions"
	"codeberg.org/interprep/server/interprep/users"
)

type StatsStore interface {
	Stats(ctx context.Context, userID int64) (*users.Stats, error)
}

type ActivityStore interface {
	ListFavorites(ctx context.Context, userID int64) ([]questions.Favorite, error)
	History(ctx context.Context, userID int64) ([]questions.History, error)
}

type FavoritesResponse struct {
	Favorites []questions.Favorite `json:"favorites"`
}

type HistoryResponse struct {
	History []questions.History `json:"history"`
}
