package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mikey-austin/mu_browse/internal/media"
)

// Config configures the remote catalog client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client talks to the remote catalog's JSON API.
type Client struct {
	http   *http.Client
	config Config
}

// NewClient builds a client for cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, errors.New("base_url required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{http: &http.Client{Timeout: cfg.Timeout}, config: cfg}, nil
}

// Search runs the first page of a filtered search.
func (c *Client) Search(ctx context.Context, query string, filter media.Filter) (media.Page[media.Item], error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("filter", string(filter))
	var page media.Page[media.Item]
	err := c.doJSON(ctx, http.MethodGet, "/search", params, nil, &page)
	return page, err
}

// Continue fetches the page a continuation cursor points at.
func (c *Client) Continue(ctx context.Context, cursor string) (media.Page[media.Item], error) {
	params := url.Values{}
	params.Set("token", cursor)
	var page media.Page[media.Item]
	err := c.doJSON(ctx, http.MethodGet, "/continuation", params, nil, &page)
	return page, err
}

// Artist fetches a remote artist page.
func (c *Client) Artist(ctx context.Context, id string) (media.ArtistDetail, error) {
	var detail media.ArtistDetail
	err := c.doJSON(ctx, http.MethodGet, "/artists/"+url.PathEscape(id), nil, nil, &detail)
	return detail, err
}

// Album fetches a remote album page.
func (c *Client) Album(ctx context.Context, id string) (media.AlbumDetail, error) {
	var detail media.AlbumDetail
	err := c.doJSON(ctx, http.MethodGet, "/albums/"+url.PathEscape(id), nil, nil, &detail)
	return detail, err
}

// Playlist fetches the first page of a remote playlist.
func (c *Client) Playlist(ctx context.Context, id string) (media.PlaylistDetail, error) {
	var detail media.PlaylistDetail
	err := c.doJSON(ctx, http.MethodGet, "/playlists/"+url.PathEscape(id), nil, nil, &detail)
	return detail, err
}

func (c *Client) doJSON(ctx context.Context, method string, endpoint string, params url.Values, body any, out any) error {
	endpointURL := c.config.BaseURL + endpoint
	if len(params) > 0 {
		endpointURL += "?" + params.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpointURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	if c.config.APIKey != "" {
		req.Header.Set("X-Api-Key", c.config.APIKey)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("catalog %s: %w", endpoint, media.ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("catalog error: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}
