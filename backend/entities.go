package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"

	"github.com/heritagegraph/dashboard-gateway/internal/errors"
	"github.com/heritagegraph/dashboard-gateway/session"
)

// Categories a cultural entity may belong to.
var Categories = []string{"monument", "festival", "ritual", "tradition", "artifact", "other"}

// EntityInput is the contribution payload for a new cultural entity.
type EntityInput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	FormData    map[string]any `json:"form_data"`
}

// Validate checks the required fields and the category against the fixed set.
func (in EntityInput) Validate() error {
	if in.Name == "" || in.Description == "" {
		return errors.ErrInvalidRequest
	}
	if !slices.Contains(Categories, in.Category) {
		return errors.ErrUnknownCategory
	}
	return nil
}

// CreateEntity submits a cultural entity contribution.
func (c *Client) CreateEntity(ctx context.Context, view *session.View, in EntityInput) (json.RawMessage, error) {
	if in.FormData == nil {
		in.FormData = map[string]any{}
	}

	var created json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/data/api/cultural-entities/", nil, view.Bearer(), in, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// Leaderboard fetches the contributor leaderboard.
func (c *Client) Leaderboard(ctx context.Context, view *session.View) (json.RawMessage, error) {
	var board json.RawMessage
	if err := c.get(ctx, view, "/data/api/leaderboard/", nil, &board); err != nil {
		return nil, err
	}
	return board, nil
}

// PersonalStats fetches the signed-in user's contribution statistics.
func (c *Client) PersonalStats(ctx context.Context, view *session.View) (json.RawMessage, error) {
	var stats json.RawMessage
	if err := c.get(ctx, view, "/data/api/personal-stats/", nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
