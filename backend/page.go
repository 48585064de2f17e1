package backend

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// Page is the backend's list envelope. Results stay opaque; entity payloads
// are relayed verbatim between the backend and the display layer.
type Page struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}

// PageParams carries limit/offset pagination. Zero values are omitted from
// the query string so the backend applies its own defaults.
type PageParams struct {
	Limit  int
	Offset int
}

func (p PageParams) query() url.Values {
	values := url.Values{}
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		values.Set("offset", strconv.Itoa(p.Offset))
	}
	return values
}
