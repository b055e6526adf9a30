package doctrack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/emrgen/doctrack/internal/model"
	"github.com/emrgen/doctrack/internal/repository"
	"github.com/emrgen/doctrack/internal/server"
	"github.com/emrgen/doctrack/internal/stats"
	"github.com/go-resty/resty/v2"
)

// Client talks to a running doctrack server. Its methods mirror the
// repository operations.
type Client struct {
	rest *resty.Client
}

// NewClient creates a client for the server at baseURL, for example
// http://localhost:4001.
func NewClient(baseURL string) *Client {
	return &Client{
		rest: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30*time.Second).
			SetHeader("Content-Type", "application/json"),
	}
}

// APIError is a failed request.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("doctrack: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps the server error codes back onto the repository errors.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "MISSING_FIELD":
		return repository.ErrMissingField
	case "INVALID_STATUS":
		return repository.ErrInvalidStatus
	case "BACKEND":
		return repository.ErrBackend
	default:
		return nil
	}
}

func (c *Client) request(ctx context.Context, result any) *resty.Request {
	return c.rest.R().
		SetContext(ctx).
		SetResult(result).
		SetError(&server.ErrorResponse{})
}

// check turns a non 2xx response into an APIError.
func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsSuccess() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode(), Message: resp.String()}
	if e, ok := resp.Error().(*server.ErrorResponse); ok && e.Code != "" {
		apiErr.Code = e.Code
		apiErr.Message = e.Message
	}

	return apiErr
}

// found is check for calls addressing documents by id, where the server
// answers NOT_FOUND for unknown ids. Any other 404 stays an error.
func found(resp *resty.Response, err error) (bool, error) {
	err = check(resp, err)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Code == "NOT_FOUND" {
		return false, nil
	}

	return err == nil, err
}

func filterParams(filter repository.Filter) map[string]string {
	params := map[string]string{}
	if filter.Category != "" {
		params["category"] = filter.Category
	}
	if filter.Tag != "" {
		params["tag"] = filter.Tag
	}
	if filter.Status != "" {
		params["status"] = filter.Status
	}

	return params
}

// Query lists the documents matching filter.
func (c *Client) Query(ctx context.Context, filter repository.Filter) ([]*model.Document, error) {
	var out server.DocumentsResponse
	resp, err := c.request(ctx, &out).SetQueryParams(filterParams(filter)).Get("/v1/documents")
	if err = check(resp, err); err != nil {
		// a failed backend read still carries the last good collection
		if errors.Is(err, repository.ErrBackend) && json.Unmarshal(resp.Body(), &out) == nil {
			return out.Documents, err
		}
		return nil, err
	}

	return out.Documents, nil
}

// Add stores a new document and returns the updated collection.
func (c *Client) Add(ctx context.Context, req repository.AddRequest) ([]*model.Document, error) {
	var out server.DocumentsResponse
	if err := check(c.request(ctx, &out).SetBody(req).Post("/v1/documents")); err != nil {
		return nil, err
	}

	return out.Documents, nil
}

// Import stores a batch of documents and returns how many were stored.
func (c *Client) Import(ctx context.Context, reqs []repository.AddRequest) (int, error) {
	var out server.CountResponse
	if err := check(c.request(ctx, &out).SetBody(server.ImportRequest{Documents: reqs}).Post("/v1/documents/import")); err != nil {
		return 0, err
	}

	return out.Count, nil
}

// UpdateStatus sets the status of one document.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	var out server.CountResponse
	return found(c.request(ctx, &out).
		SetBody(server.StatusRequest{Status: status}).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Patch("/v1/documents/{id}/status"))
}

// Delete removes one document.
func (c *Client) Delete(ctx context.Context, id int64) (bool, error) {
	var out server.CountResponse
	return found(c.request(ctx, &out).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete("/v1/documents/{id}"))
}

// DeleteMany removes the documents with the given ids.
func (c *Client) DeleteMany(ctx context.Context, ids []int64) (bool, int, error) {
	if len(ids) == 0 {
		return false, 0, nil
	}

	var out server.CountResponse
	ok, err := found(c.request(ctx, &out).SetBody(server.IDsRequest{IDs: ids}).Post("/v1/documents/delete"))
	return ok, out.Count, err
}

// RegenerateTags replaces the tags of the given documents, or all of them.
func (c *Client) RegenerateTags(ctx context.Context, ids []int64) (int, error) {
	var out server.CountResponse
	if err := check(c.request(ctx, &out).SetBody(server.IDsRequest{IDs: ids}).Post("/v1/documents/retag")); err != nil {
		return 0, err
	}

	return out.Count, nil
}

// Summary returns every aggregation of the documents matching filter.
func (c *Client) Summary(ctx context.Context, filter repository.Filter, topTags int) (*stats.Summary, error) {
	params := filterParams(filter)
	if topTags > 0 {
		params["top"] = strconv.Itoa(topTags)
	}

	var out stats.Summary
	if err := check(c.request(ctx, &out).SetQueryParams(params).Get("/v1/stats/summary")); err != nil {
		return nil, err
	}

	return &out, nil
}
