// Package directory provides a client for the upstream HR employee directory.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mmeshcher/payroll-system/internal/model"
)

// Client wraps HTTP access to the employee directory.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a directory client for the given base address.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// FetchEmployees downloads the employee list. On 429 it returns the status code and
// the Retry-After delay without an error.
func (c *Client) FetchEmployees(ctx context.Context) ([]model.Employee, int, time.Duration, error) {
	if c == nil || c.baseURL == "" {
		return nil, 0, 0, fmt.Errorf("directory client not configured")
	}

	base := c.baseURL
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/get-employees", nil)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := time.Duration(0)
		if v := resp.Header.Get("Retry-After"); v != "" {
			if seconds, parseErr := strconv.Atoi(v); parseErr == nil {
				retryAfter = time.Duration(seconds) * time.Second
			}
		}
		return nil, resp.StatusCode, retryAfter, nil
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, resp.StatusCode, 0, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, 0, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, resp.StatusCode, 0, fmt.Errorf("decode response: %w", err)
	}

	employees, err := DecodeEmployees(raw)
	if err != nil {
		return nil, resp.StatusCode, 0, err
	}

	return employees, resp.StatusCode, 0, nil
}

// DecodeEmployees accepts either a bare array of employee records or an object
// wrapping it under "employees" or "data", and normalises every record.
func DecodeEmployees(raw []byte) ([]model.Employee, error) {
	raw = bytes.TrimSpace(raw)

	var records []map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("decode employees: %w", err)
		}
		inner, ok := wrapper["employees"]
		if !ok {
			inner, ok = wrapper["data"]
		}
		if !ok {
			return nil, fmt.Errorf("decode employees: no employee list in response")
		}
		raw = inner
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}

	res := make([]model.Employee, 0, len(records))
	for i, rec := range records {
		e, err := normalize(rec)
		if err != nil {
			return nil, fmt.Errorf("employee record %d: %w", i, err)
		}
		res = append(res, e)
	}

	return res, nil
}

// DecodeEmployee normalises a single employee record. A non-empty id replaces
// whatever identifier the record carries.
func DecodeEmployee(raw []byte, id string) (model.Employee, error) {
	var rec map[string]any

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&rec); err != nil {
		return model.Employee{}, fmt.Errorf("decode employee: %w", err)
	}
	if rec == nil {
		return model.Employee{}, fmt.Errorf("decode employee: empty record")
	}

	if id = strings.TrimSpace(id); id != "" {
		rec[idKeys[0]] = id
	}

	return normalize(rec)
}
