package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/getlistd/listd/pkg/cliconfig"
	"github.com/getlistd/listd/pkg/keeper"
	"github.com/getlistd/listd/pkg/portability"
)

// APIKeyHeader is the HTTP header for API key authentication.
const APIKeyHeader = "X-Listd-API-Key"

// Item is the generic wire form of a keeper item as the CLI sees it.
type Item map[string]interface{}

// ID returns the item's id, or 0 if the payload is malformed.
func (it Item) ID() int64 {
	if v, ok := it["id"].(float64); ok {
		return int64(v)
	}
	return 0
}

// ListPage is a query response page.
type ListPage struct {
	Items []Item          `json:"items"`
	Meta  keeper.PageMeta `json:"meta"`
}

// StatusResult is the daemon status payload.
type StatusResult struct {
	Name      string           `json:"name"`
	Version   string           `json:"version"`
	StartedAt time.Time        `json:"startedAt"`
	Uptime    string           `json:"uptime"`
	Lists     *keeper.Overview `json:"lists"`
}

// QueryParams are the list-query options forwarded to the daemon.
type QueryParams struct {
	Where  string
	Done   *bool
	Sort   string
	Order  string
	Limit  int
	Offset int
}

// ListClient provides methods for communicating with the listd daemon API.
type ListClient interface {
	// Health checks if the daemon is reachable.
	Health() error
	// Status returns daemon status and the list overview.
	Status() (*StatusResult, error)
	// Lists returns the list overview.
	Lists() (*keeper.Overview, error)
	// Query returns a filtered page of items from one list.
	Query(plural string, params QueryParams) (*ListPage, error)
	// Create adds an item to a list from its field map.
	Create(plural string, fields map[string]interface{}) (Item, error)
	// Get returns one item by id.
	Get(plural string, id int64) (Item, error)
	// Update replaces an item's fields.
	Update(plural string, id int64, fields map[string]interface{}) (Item, error)
	// Done marks an item done. An already-done item comes back as an
	// *APIError with code "already_done".
	Done(plural string, id int64) (Item, error)
	// Delete removes an item by id.
	Delete(plural string, id int64) (Item, error)
	// Reset restores one list to its seeds; ResetAll does every list.
	Reset(plural string) (int, error)
	ResetAll() (map[string]int, error)
	// Clear empties one list; ClearAll does every list.
	Clear(plural string) (int, error)
	ClearAll() (map[string]int, error)
	// Export downloads a full snapshot in the given format.
	Export(format string) ([]byte, error)
	// Import uploads a snapshot document.
	Import(data []byte, format string, replace bool) (*portability.ImportSummary, error)
}

// APIError represents an error response from the daemon API.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Hint       string
}

func (e *APIError) Error() string {
	return e.Message
}

// listClient implements ListClient using HTTP.
type listClient struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
}

// ClientOption configures a list client.
type ClientOption func(*listClient)

// WithTimeout sets the HTTP timeout for the client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *listClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithAPIKey sets the API key for authentication.
func WithAPIKey(key string) ClientOption {
	return func(c *listClient) {
		c.apiKey = key
	}
}

// NewClient creates a daemon API client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) ListClient {
	c := &listClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientWithAuth creates a client that picks up the API key from the
// environment. This is the way CLI commands build their client.
func NewClientWithAuth(baseURL string, opts ...ClientOption) ListClient {
	if key := cliconfig.GetAPIKey(); key != "" {
		opts = append([]ClientOption{WithAPIKey(key)}, opts...)
	}
	return NewClient(baseURL, opts...)
}

func (c *listClient) Health() error {
	resp, err := c.get("/health")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}
	return nil
}

func (c *listClient) Status() (*StatusResult, error) {
	var status StatusResult
	if err := c.getJSON("/api/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *listClient) Lists() (*keeper.Overview, error) {
	var ov keeper.Overview
	if err := c.getJSON("/api/lists", &ov); err != nil {
		return nil, err
	}
	return &ov, nil
}

func (c *listClient) Query(plural string, params QueryParams) (*ListPage, error) {
	q := url.Values{}
	if params.Where != "" {
		q.Set("where", params.Where)
	}
	if params.Done != nil {
		q.Set("done", strconv.FormatBool(*params.Done))
	}
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}
	if params.Order != "" {
		q.Set("order", params.Order)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	path := "/api/" + plural
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page ListPage
	if err := c.getJSON(path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *listClient) Create(plural string, fields map[string]interface{}) (Item, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode fields: %w", err)
	}

	resp, err := c.post("/api/"+plural, body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return nil, c.parseError(resp)
	}
	return decodeItem(resp)
}

func (c *listClient) Get(plural string, id int64) (Item, error) {
	resp, err := c.get(itemPath(plural, id))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}
	return decodeItem(resp)
}

func (c *listClient) Update(plural string, id int64, fields map[string]interface{}) (Item, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode fields: %w", err)
	}

	resp, err := c.put(itemPath(plural, id), body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}
	return decodeItem(resp)
}

func (c *listClient) Done(plural string, id int64) (Item, error) {
	resp, err := c.post(itemPath(plural, id)+"/done", nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}
	return decodeItem(resp)
}

func (c *listClient) Delete(plural string, id int64) (Item, error) {
	resp, err := c.delete(itemPath(plural, id))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}
	return decodeItem(resp)
}

func (c *listClient) Reset(plural string) (int, error) {
	resp, err := c.post("/api/"+plural+"/reset", nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, c.parseError(resp)
	}

	var result struct {
		Items int `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}
	return result.Items, nil
}

func (c *listClient) ResetAll() (map[string]int, error) {
	resp, err := c.post("/api/reset", nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var result struct {
		Reset map[string]int `json:"reset"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return result.Reset, nil
}

func (c *listClient) Clear(plural string) (int, error) {
	resp, err := c.post("/api/"+plural+"/clear", nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, c.parseError(resp)
	}

	var result struct {
		Removed int `json:"removed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}
	return result.Removed, nil
}

func (c *listClient) ClearAll() (map[string]int, error) {
	resp, err := c.post("/api/clear", nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var result struct {
		Cleared map[string]int `json:"cleared"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return result.Cleared, nil
}

func (c *listClient) Export(format string) ([]byte, error) {
	resp, err := c.get("/api/export?format=" + url.QueryEscape(format))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}
	return io.ReadAll(resp.Body)
}

func (c *listClient) Import(data []byte, format string, replace bool) (*portability.ImportSummary, error) {
	path := "/api/import"
	if replace {
		path += "?replace=true"
	}

	contentType := "application/json"
	if format == portability.FormatYAML {
		contentType = "application/yaml"
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.connectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var summary portability.ImportSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &summary, nil
}

func itemPath(plural string, id int64) string {
	return "/api/" + plural + "/" + strconv.FormatInt(id, 10)
}

func decodeItem(resp *http.Response) (Item, error) {
	var it Item
	if err := json.NewDecoder(resp.Body).Decode(&it); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return it, nil
}

// getJSON performs a GET and decodes a 200 response into v.
func (c *listClient) getJSON(path string, v interface{}) error {
	resp, err := c.get(path)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// get performs an HTTP GET request.
func (c *listClient) get(path string) (*http.Response, error) {
	return c.doRequest(http.MethodGet, path, nil)
}

// post performs an HTTP POST request.
func (c *listClient) post(path string, body []byte) (*http.Response, error) {
	return c.doRequest(http.MethodPost, path, body)
}

// put performs an HTTP PUT request.
func (c *listClient) put(path string, body []byte) (*http.Response, error) {
	return c.doRequest(http.MethodPut, path, body)
}

// delete performs an HTTP DELETE request.
func (c *listClient) delete(path string) (*http.Response, error) {
	return c.doRequest(http.MethodDelete, path, nil)
}

// doRequest performs an HTTP request.
func (c *listClient) doRequest(method, path string, body []byte) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.connectionError(err)
	}
	return resp, nil
}

func (c *listClient) connectionError(err error) error {
	return &APIError{
		StatusCode: 0,
		ErrorCode:  "connection_error",
		Message:    fmt.Sprintf("cannot connect to listd at %s: %v", c.baseURL, err),
	}
}

// parseError converts a non-2xx response into an APIError.
func (c *listClient) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp keeper.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		msg := errResp.Error
		if errResp.Detail != "" {
			msg = errResp.Error + ": " + errResp.Detail
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			ErrorCode:  errResp.Code,
			Message:    msg,
			Hint:       errResp.Hint,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		ErrorCode:  "unknown_error",
		Message:    fmt.Sprintf("server returned status %d: %s", resp.StatusCode, string(body)),
	}
}

// FormatConnectionError returns a user-friendly error message for
// connection failures.
func FormatConnectionError(err error) string {
	if apiErr, ok := err.(*APIError); ok && apiErr.ErrorCode == "connection_error" {
		return fmt.Sprintf(`Error: %s

Suggestions:
  • Start the daemon: listd serve
  • Check if the daemon is running on the expected port
  • Set the base URL with --server-url or %s`, apiErr.Message, cliconfig.EnvServerURL)
	}
	if apiErr, ok := err.(*APIError); ok && apiErr.Hint != "" {
		return fmt.Sprintf("Error: %s\nHint: %s", apiErr.Message, apiErr.Hint)
	}
	return "Error: " + err.Error()
}
