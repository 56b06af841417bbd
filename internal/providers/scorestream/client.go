// Package scorestream talks to the ScoreStream JSON-RPC API.
package scorestream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/logging"
	"github.com/preston-bernstein/schedule-import-service/internal/providers"
)

// Config controls how the client reaches the API.
type Config struct {
	BaseURL     string
	APIKey      string
	AccessToken string
	Country     string
	HTTPClient  *http.Client
	Timeout     time.Duration
	Logger      *slog.Logger
}

// Client implements providers.SportsService over JSON-RPC 2.0.
type Client struct {
	baseURL     string
	apiKey      string
	accessToken string
	country     string
	httpClient  httpDoer
	logger      *slog.Logger
	now         func() time.Time
	nextID      atomic.Int64
}

var _ providers.SportsService = (*Client)(nil)

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	country := cfg.Country
	if country == "" {
		country = defaultCountry
	}
	c := &Client{
		baseURL:     normalizeBaseURL(cfg.BaseURL),
		apiKey:      cfg.APIKey,
		accessToken: cfg.AccessToken,
		country:     country,
		httpClient:  resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger:      cfg.Logger,
		now:         time.Now,
	}
	c.nextID.Store(time.Now().UnixMilli())
	return c
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string { return providerName }

// SearchTeams runs teams.search and attaches mascot logos to the returned teams.
func (c *Client) SearchTeams(ctx context.Context, req providers.SearchRequest) (providers.SearchResult, error) {
	if err := providers.ValidateRequest(req); err != nil {
		return providers.SearchResult{}, err
	}

	count := req.Count
	if count <= 0 {
		count = defaultSearchCount
	}
	country := req.Country
	if country == "" {
		country = c.country
	}
	params := map[string]any{
		"teamName":               req.TeamName,
		"country":                country,
		"recommendedFor":         recommendedForAddingGames,
		"ignoreUserCreatedTeams": true,
		"count":                  count,
	}
	if req.City != "" {
		params["city"] = req.City
	}
	if req.State != "" {
		params["state"] = req.State
	}
	if req.OrgID != 0 {
		params["organizationIds"] = []int{req.OrgID}
	}

	var res teamsSearchResult
	if err := c.call(ctx, methodTeamsSearch, params, &res); err != nil {
		return providers.SearchResult{}, err
	}
	return mapSearch(res), nil
}

// AddGame runs games.add. The duplicate flag comes from the response.
func (c *Client) AddGame(ctx context.Context, req providers.AddGameRequest) (providers.AddGameResult, error) {
	if err := providers.ValidateRequest(req); err != nil {
		return providers.AddGameResult{}, err
	}
	window := req.DuplicateCheckWindow
	if window == "" {
		window = providers.DuplicateCheckLarge
	}
	params := map[string]any{
		"homeTeamId":           req.HomeTeamID,
		"awayTeamId":           req.AwayTeamID,
		"homeSquadId":          req.HomeSquadID,
		"awaySquadId":          req.AwaySquadID,
		"sportName":            req.SportName,
		"gameSegmentType":      req.GameSegmentType,
		"duplicateCheckWindow": window,
	}
	if req.LocalStartDateTime != "" {
		params["localStartDateTime"] = req.LocalStartDateTime
	}
	if req.LocalGameTimezone != "" {
		params["localGameTimezone"] = req.LocalGameTimezone
	}

	var res gamesAddResult
	if err := c.call(ctx, methodGamesAdd, params, &res); err != nil {
		return providers.AddGameResult{}, err
	}
	if res.GameID == 0 {
		return providers.AddGameResult{}, fmt.Errorf("scorestream: %s returned no game id", methodGamesAdd)
	}
	return mapAddGame(res), nil
}

// FetchSegments runs games.get for one game and returns its scoring segments.
func (c *Client) FetchSegments(ctx context.Context, gameID int) ([]games.Segment, error) {
	if gameID <= 0 {
		return nil, fmt.Errorf("%w: game id must be positive", providers.ErrInvalidRequest)
	}
	var res gamesGetResult
	if err := c.call(ctx, methodGamesGet, map[string]any{"gameIds": []int{gameID}}, &res); err != nil {
		return nil, err
	}
	return mapSegments(res, gameID), nil
}

// AddScore runs games.scores.add.
func (c *Client) AddScore(ctx context.Context, req providers.AddScoreRequest) error {
	if err := providers.ValidateRequest(req); err != nil {
		return err
	}
	params := map[string]any{
		"gameId":        req.GameID,
		"homeTeamScore": req.HomeTeamScore,
		"awayTeamScore": req.AwayTeamScore,
		"gameSegmentId": req.GameSegmentID,
	}
	return c.call(ctx, methodScoresAdd, params, nil)
}

// call posts one JSON-RPC request and decodes its result into out when out is non-nil.
func (c *Client) call(ctx context.Context, method string, params map[string]any, out any) error {
	params["apiKey"] = c.apiKey
	if c.accessToken != "" {
		params["accessToken"] = c.accessToken
	}
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	})
	if err != nil {
		return fmt.Errorf("scorestream: encode %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("scorestream: %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		rl := &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    strings.TrimSpace(string(snippet)),
		}
		logging.Warn(logging.FromContext(ctx, c.logger), "scorestream rate limited",
			logging.FieldProvider, providerName,
			logging.FieldOperation, method,
			"retry_after", rl.RetryAfter,
		)
		return rl
	}
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("scorestream: %s unexpected status %d: %s", method, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var payload rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("scorestream: decode %s: %w", method, err)
	}
	if payload.Error != nil {
		return &providers.RPCError{Method: method, Code: payload.Error.Code, Message: payload.Error.Message}
	}
	if out == nil || len(payload.Result) == 0 || string(payload.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload.Result, out); err != nil {
		return fmt.Errorf("scorestream: decode %s result: %w", method, err)
	}
	return nil
}
