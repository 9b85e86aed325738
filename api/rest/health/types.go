package health

import (
	"context"

	"codeberg.org/interprep/server/internal/retriever"
)

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
	StatusDown     = "unhealthy"
)

type IndexStats interface {
	Stats() retriever.Stats
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Response struct {
	Status   string          `json:"status"`
	Service  string          `json:"service"`
	Version  string          `json:"version,omitempty"`
	Database string          `json:"database"`
	Index    retriever.Stats `json:"index"`
}

type PingResponse struct {
	Message string `json:"message"`
}
