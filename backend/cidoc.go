package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/heritagegraph/dashboard-gateway/session"
)

// CIDOC resource collections exposed by the backend. Payloads are opaque
// JSON; the gateway relays them without interpreting the data model.
const (
	cidocLocations     = "/cidoc/locations/"
	cidocEvents        = "/cidoc/events/"
	cidocNotifications = "/cidoc/notifications/"
)

func (c *Client) listResource(ctx context.Context, view *session.View, path string, params PageParams) (*Page, error) {
	var page Page
	if err := c.get(ctx, view, path, params.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) getResource(ctx context.Context, view *session.View, path, id string) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.get(ctx, view, path+url.PathEscape(id)+"/", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) createResource(ctx context.Context, view *session.View, path string, payload json.RawMessage) (json.RawMessage, error) {
	var created json.RawMessage
	if err := c.do(ctx, http.MethodPost, path, nil, view.Bearer(), payload, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) updateResource(ctx context.Context, view *session.View, path, id string, payload json.RawMessage) (json.RawMessage, error) {
	var updated json.RawMessage
	if err := c.do(ctx, http.MethodPut, path+url.PathEscape(id)+"/", nil, view.Bearer(), payload, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Locations

func (c *Client) ListLocations(ctx context.Context, view *session.View, params PageParams) (*Page, error) {
	return c.listResource(ctx, view, cidocLocations, params)
}

func (c *Client) GetLocation(ctx context.Context, view *session.View, id string) (json.RawMessage, error) {
	return c.getResource(ctx, view, cidocLocations, id)
}

func (c *Client) CreateLocation(ctx context.Context, view *session.View, payload json.RawMessage) (json.RawMessage, error) {
	return c.createResource(ctx, view, cidocLocations, payload)
}

func (c *Client) UpdateLocation(ctx context.Context, view *session.View, id string, payload json.RawMessage) (json.RawMessage, error) {
	return c.updateResource(ctx, view, cidocLocations, id, payload)
}

// Events

func (c *Client) ListEvents(ctx context.Context, view *session.View, params PageParams) (*Page, error) {
	return c.listResource(ctx, view, cidocEvents, params)
}

func (c *Client) GetEvent(ctx context.Context, view *session.View, id string) (json.RawMessage, error) {
	return c.getResource(ctx, view, cidocEvents, id)
}

func (c *Client) CreateEvent(ctx context.Context, view *session.View, payload json.RawMessage) (json.RawMessage, error) {
	return c.createResource(ctx, view, cidocEvents, payload)
}

func (c *Client) UpdateEvent(ctx context.Context, view *session.View, id string, payload json.RawMessage) (json.RawMessage, error) {
	return c.updateResource(ctx, view, cidocEvents, id, payload)
}

// Notifications

func (c *Client) ListNotifications(ctx context.Context, view *session.View, params PageParams) (*Page, error) {
	return c.listResource(ctx, view, cidocNotifications, params)
}
