package llm

import (
	"context"

	"slidecraft/internal/outline"
)

// Client plans slide content for a topic.
type Client interface {
	GeneratePlan(ctx context.Context, topic string) (*outline.Plan, error)
}
