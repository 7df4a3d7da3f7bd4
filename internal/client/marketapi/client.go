package marketapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Client consumes postmarket's own read API. Agents go through HTTP rather
// than the repository so they stay decoupled from the store, matching their
// deployment as independent processes.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{HTTP: httpClient, BaseURL: baseURL}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Probabilities struct {
	Yes float64 `json:"yes"`
	No  float64 `json:"no"`
}

type Market struct {
	ID            uint64        `json:"id"`
	Question      string        `json:"question"`
	Category      string        `json:"category"`
	Probabilities Probabilities `json:"probabilities"`
	TotalOpinions int           `json:"total_opinions"`
	Status        string        `json:"status"`
	Signal        string        `json:"signal"`
}

type MarketDetail struct {
	Market Market `json:"market"`
	Trend  string `json:"trend"`
}

type HistoryPoint struct {
	Timestamp  time.Time `json:"timestamp"`
	Yes        float64   `json:"yes"`
	No         float64   `json:"no"`
	TotalVotes int       `json:"totalVotes"`
}

type MarketHistory struct {
	MarketID uint64         `json:"market_id"`
	History  []HistoryPoint `json:"history"`
}

func (c *Client) ListMarkets(ctx context.Context, limit int) ([]Market, error) {
	var items []Market
	err := c.get(ctx, "/api/v1/markets?limit="+strconv.Itoa(limit), &items)
	return items, err
}

func (c *Client) GetMarket(ctx context.Context, id uint64) (*MarketDetail, error) {
	var detail MarketDetail
	if err := c.get(ctx, fmt.Sprintf("/api/v1/markets/%d", id), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) GetMarketHistory(ctx context.Context, id uint64) (*MarketHistory, error) {
	var history MarketHistory
	if err := c.get(ctx, fmt.Sprintf("/api/v1/markets/%d/history", id), &history); err != nil {
		return nil, err
	}
	return &history, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("marketapi: GET %s: status %d", path, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("marketapi: decode envelope: %w", err)
	}
	if env.Code != 0 {
		return fmt.Errorf("marketapi: GET %s: %s", path, env.Message)
	}
	return json.Unmarshal(env.Data, out)
}
