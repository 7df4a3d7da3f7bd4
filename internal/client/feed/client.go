package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to the external social-platform API. The platform is a black
// box: it serves posts and a keyword search over them, nothing else is
// assumed about it.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{HTTP: httpClient, BaseURL: baseURL}
}

// Post is the wire shape of a platform post. CreatedAt may be absent or null.
type Post struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	Author       string  `json:"author"`
	Karma        int     `json:"karma"`
	Upvotes      int     `json:"upvotes"`
	Downvotes    int     `json:"downvotes"`
	CommentCount int     `json:"comment_count"`
	CreatedAt    *string `json:"created_at"`
}

// Timestamp parses the post's creation time; nil when absent or malformed.
func (p Post) Timestamp() *time.Time {
	if p.CreatedAt == nil {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, *p.CreatedAt)
	if err != nil {
		return nil
	}
	ts = ts.UTC()
	return &ts
}

func (c *Client) ListPosts(ctx context.Context, limit, offset int) ([]Post, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	return c.fetchPosts(ctx, "/api/posts?"+params.Encode())
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]Post, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	return c.fetchPosts(ctx, "/api/search?"+params.Encode())
}

func (c *Client) fetchPosts(ctx context.Context, path string) ([]Post, error) {
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	var posts []Post
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("feed: decode posts: %w", err)
	}
	return posts, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed: %s %s: status %d", method, path, resp.StatusCode)
	}
	return body, nil
}
