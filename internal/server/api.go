package server

import (
	"github.com/emrgen/doctrack/internal/model"
	"github.com/emrgen/doctrack/internal/repository"
)

// DocumentsResponse lists documents. When the backend read fails the last
// good collection is sent with Code and Message set.
type DocumentsResponse struct {
	Documents []*model.Document `json:"documents"`
	Code      string            `json:"code,omitempty"`
	Message   string            `json:"message,omitempty"`
}

// ImportRequest is the body of POST /v1/documents/import.
type ImportRequest struct {
	Documents []repository.AddRequest `json:"documents"`
}

// StatusRequest is the body of PATCH /v1/documents/{id}/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// IDsRequest selects documents for a bulk delete or retag.
type IDsRequest struct {
	IDs []int64 `json:"ids"`
}

// CountResponse reports how many documents an operation touched.
type CountResponse struct {
	Count int `json:"count"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
