// Package pdfextract forwards schedule PDFs to the extraction service.
package pdfextract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/preston-bernstein/schedule-import-service/internal/logging"
)

const (
	defaultBaseURL  = "http://localhost:8001"
	defaultTimeout  = 60 * time.Second
	maxPDFBytes     = 10 << 20
	maxErrorBody    = 1024
	extractPath     = "/extract"
	fileFieldName   = "file"
	pdfContentType  = "application/pdf"
	schoolQueryName = "school"
)

var (
	// ErrNotPDF is returned for files without a .pdf extension.
	ErrNotPDF = errors.New("file must be a PDF")
	// ErrTooLarge is returned for files over 10MB.
	ErrTooLarge = errors.New("file too large, maximum size is 10MB")
)

// UpstreamError is a non-200 reply from the extraction service.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("pdf service: status %d: %s", e.StatusCode, e.Detail)
}

// Game is one extracted game. Missing fields are empty or nil.
type Game struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	HomeTeam    string `json:"homeTeam"`
	AwayTeam    string `json:"awayTeam"`
	HomeCity    string `json:"homeCity"`
	HomeState   string `json:"homeState"`
	AwayCity    string `json:"awayCity"`
	AwayState   string `json:"awayState"`
	HomeScore   *int   `json:"homeScore"`
	AwayScore   *int   `json:"awayScore"`
	IsCompleted bool   `json:"isCompleted"`
}

// Result is the extraction outcome. When MultipleSchools is set the caller must pick one
// of Schools and extract again with it.
type Result struct {
	Success         bool     `json:"success"`
	MainTeam        string   `json:"mainTeam"`
	MainCity        string   `json:"mainCity"`
	MainState       string   `json:"mainState"`
	Format          string   `json:"format,omitempty"`
	Games           []Game   `json:"games"`
	MultipleSchools bool     `json:"multipleSchools,omitempty"`
	Schools         []string `json:"schools,omitempty"`
}

// CompletedCount returns how many games already carry a result.
func (r Result) CompletedCount() int {
	n := 0
	for _, g := range r.Games {
		if g.IsCompleted {
			n++
		}
	}
	return n
}

// Config controls how the client reaches the extraction service.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client calls the extraction service.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: base, timeout: timeout, httpClient: httpClient, logger: cfg.Logger}
}

// Extract uploads a PDF and returns the games found in it. school narrows a multi-school
// document to one school and may be empty.
func (c *Client) Extract(ctx context.Context, filename string, r io.Reader, school string) (Result, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return Result{}, ErrNotPDF
	}
	content, err := io.ReadAll(io.LimitReader(r, maxPDFBytes+1))
	if err != nil {
		return Result{}, fmt.Errorf("pdf service: read upload: %w", err)
	}
	if len(content) > maxPDFBytes {
		return Result{}, ErrTooLarge
	}

	body, contentType, err := encodeUpload(filename, content)
	if err != nil {
		return Result{}, err
	}

	endpoint := c.baseURL + extractPath
	if school = strings.TrimSpace(school); school != "" {
		endpoint += "?" + url.Values{schoolQueryName: {school}}.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", contentType)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("pdf service unavailable (%s): %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Result{}, &UpstreamError{StatusCode: resp.StatusCode, Detail: detail(raw)}
	}

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("pdf service: decode response: %w", err)
	}
	out.Games = keepNamed(out.Games)

	logging.Info(logging.FromContext(ctx, c.logger), "pdf extracted",
		"file", filename,
		logging.FieldCount, len(out.Games),
		"completed", out.CompletedCount(),
		"multiple_schools", out.MultipleSchools,
		logging.FieldDurationMS, time.Since(started).Milliseconds(),
	)
	return out, nil
}

func encodeUpload(filename string, content []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(fileFieldName, filepath.Base(filename))
	if err != nil {
		return nil, "", fmt.Errorf("pdf service: build upload: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", fmt.Errorf("pdf service: build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("pdf service: build upload: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

// detail pulls the "detail" message out of an error body, falling back to the raw text.
func detail(raw []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(raw))
}

// keepNamed drops games missing either team name.
func keepNamed(list []Game) []Game {
	out := make([]Game, 0, len(list))
	for _, g := range list {
		if strings.TrimSpace(g.HomeTeam) == "" || strings.TrimSpace(g.AwayTeam) == "" {
			continue
		}
		out = append(out, g)
	}
	return out
}
