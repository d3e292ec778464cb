// Package backend talks to the external timetable generation service.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/study-planner/internal/model"
)

const generatePath = "/generate_timetable"

// ErrNoTimetable is returned when the service answered with valid JSON that
// has no "timetable" field.
var ErrNoTimetable = errors.New("no timetable generated")

// maxResponseBytes caps how much of the service's reply is read.
var maxResponseBytes int64 = 8 << 20

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the service rooted at baseURL. A nil
// httpClient falls back to http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Endpoint is the URL hit by FetchTimetable.
func (c *Client) Endpoint() string {
	return c.baseURL + generatePath
}

// FetchTimetable issues GET {base}/generate_timetable and decodes the reply.
// The body is decoded whatever the status code; an error body without a
// timetable yields ErrNoTimetable.
func (c *Client) FetchTimetable(ctx context.Context) (*model.Timetable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", c.Endpoint(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().
			Int("status", resp.StatusCode).
			Str("url", c.Endpoint()).
			Msg("timetable service returned non-200 status")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > maxResponseBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxResponseBytes)
	}

	return decodeTimetable(body)
}

// decodeTimetable accepts any valid JSON document. Anything that is not an
// object with a non-empty "timetable" value yields ErrNoTimetable.
func decodeTimetable(body []byte) (*model.Timetable, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("decode response: invalid JSON")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, ErrNoTimetable
	}
	raw, ok := fields["timetable"]
	if !ok || isFalsy(raw) {
		return nil, ErrNoTimetable
	}

	var tt model.Timetable
	if err := json.Unmarshal(raw, &tt); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &tt, nil
}

// isFalsy reports null, false, zero and the empty string.
func isFalsy(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	}
	return false
}
