package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/emrgen/doctrack/internal/model"
	"github.com/emrgen/doctrack/internal/repository"
	"github.com/emrgen/doctrack/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// maximum accepted request body
const maxBodySize = 8 << 20

type documentHandler struct {
	repo *repository.Repository
}

// NewHandler returns the HTTP API over repo.
func NewHandler(repo *repository.Repository) http.Handler {
	h := &documentHandler{repo: repo}

	r := chi.NewRouter()
	r.Use(RequestTimeInterceptor())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(RefreshInterceptor(repo))

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", h.listDocuments)
			r.Post("/", h.createDocument)
			r.Post("/import", h.importDocuments)
			r.Post("/delete", h.deleteDocuments)
			r.Post("/retag", h.retagDocuments)
			r.Patch("/{id}/status", h.updateStatus)
			r.Delete("/{id}", h.deleteDocument)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/categories", h.categoryStats)
			r.Get("/statuses", h.statusStats)
			r.Get("/tags", h.tagStats)
			r.Get("/timeline", h.timelineStats)
			r.Get("/summary", h.summaryStats)
		})
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // All origins are allowed
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
	})

	return c.Handler(r)
}

func filterFrom(r *http.Request) repository.Filter {
	q := r.URL.Query()
	return repository.Filter{
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
		Status:   q.Get("status"),
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err)
		return false
	}

	return true
}

func documentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", fmt.Errorf("invalid document id %q", chi.URLParam(r, "id")))
		return 0, false
	}

	return id, true
}

func (h *documentHandler) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.repo.Query(r.Context(), filterFrom(r))
	if errors.Is(err, repository.ErrBackend) && docs != nil {
		writeJSON(w, http.StatusInternalServerError, DocumentsResponse{Documents: docs, Code: "BACKEND", Message: err.Error()})
		return
	}
	if err != nil {
		writeRepositoryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DocumentsResponse{Documents: docs})
}

func (h *documentHandler) createDocument(w http.ResponseWriter, r *http.Request) {
	var req repository.AddRequest
	if !decode(w, r, &req) {
		return
	}

	docs, err := h.repo.Add(r.Context(), req)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, DocumentsResponse{Documents: docs})
}

func (h *documentHandler) importDocuments(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if !decode(w, r, &req) {
		return
	}

	n, err := h.repo.Import(r.Context(), req.Documents)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CountResponse{Count: n})
}

func (h *documentHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := documentID(w, r)
	if !ok {
		return
	}

	var req StatusRequest
	if !decode(w, r, &req) {
		return
	}

	updated, err := h.repo.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	if !updated {
		writeRepositoryError(w, fmt.Errorf("%w: %d", errNotFound, id))
		return
	}

	writeJSON(w, http.StatusOK, CountResponse{Count: 1})
}

func (h *documentHandler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := documentID(w, r)
	if !ok {
		return
	}

	deleted, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	if !deleted {
		writeRepositoryError(w, fmt.Errorf("%w: %d", errNotFound, id))
		return
	}

	writeJSON(w, http.StatusOK, CountResponse{Count: 1})
}

func (h *documentHandler) deleteDocuments(w http.ResponseWriter, r *http.Request) {
	var req IDsRequest
	if !decode(w, r, &req) {
		return
	}

	deleted, n, err := h.repo.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}
	if !deleted {
		writeRepositoryError(w, fmt.Errorf("%w: %v", errNotFound, req.IDs))
		return
	}

	writeJSON(w, http.StatusOK, CountResponse{Count: n})
}

func (h *documentHandler) retagDocuments(w http.ResponseWriter, r *http.Request) {
	var req IDsRequest
	if !decode(w, r, &req) {
		return
	}

	n, err := h.repo.RegenerateTags(r.Context(), req.IDs)
	if err != nil {
		writeRepositoryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CountResponse{Count: n})
}

// stats handlers aggregate the filtered collection

func (h *documentHandler) categoryStats(w http.ResponseWriter, r *http.Request) {
	h.aggregate(w, r, func(a aggregation) any {
		return stats.CategoryDistribution(a.docs)
	})
}

func (h *documentHandler) statusStats(w http.ResponseWriter, r *http.Request) {
	h.aggregate(w, r, func(a aggregation) any {
		return stats.StatusDistribution(a.docs)
	})
}

func (h *documentHandler) tagStats(w http.ResponseWriter, r *http.Request) {
	h.aggregate(w, r, func(a aggregation) any {
		return stats.TagFrequency(a.docs, a.top)
	})
}

func (h *documentHandler) timelineStats(w http.ResponseWriter, r *http.Request) {
	h.aggregate(w, r, func(a aggregation) any {
		return stats.UploadTimeline(a.docs)
	})
}

func (h *documentHandler) summaryStats(w http.ResponseWriter, r *http.Request) {
	h.aggregate(w, r, func(a aggregation) any {
		return stats.Summarize(a.docs, a.top)
	})
}

type aggregation struct {
	docs []*model.Document
	top  int
}

func (h *documentHandler) aggregate(w http.ResponseWriter, r *http.Request, f func(aggregation) any) {
	top := 0
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_TOP", fmt.Errorf("invalid top %q", raw))
			return
		}
		top = n
	}

	docs, err := h.repo.Query(r.Context(), filterFrom(r))
	if err != nil {
		writeRepositoryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, f(aggregation{docs: docs, top: top}))
}
