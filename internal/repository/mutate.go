package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/doctrack/internal/model"
	"github.com/sirupsen/logrus"
)

// AddRequest describes a new document.
type AddRequest struct {
	Filename    string `json:"filename"`
	Filepath    string `json:"filepath"`
	Category    string `json:"category,omitempty"`
	Tags        string `json:"tags,omitempty"`
	Description string `json:"description,omitempty"`
	// UseCurrentTime stamps the document with the current time. UploadDate
	// is used otherwise, and the current time when UploadDate is zero.
	UseCurrentTime bool      `json:"use_current_time,omitempty"`
	UploadDate     time.Time `json:"upload_date,omitempty"`
}

func (req *AddRequest) validate() error {
	if strings.TrimSpace(req.Filename) == "" {
		return fmt.Errorf("%w: filename", ErrMissingField)
	}
	if strings.TrimSpace(req.Filepath) == "" {
		return fmt.Errorf("%w: filepath", ErrMissingField)
	}

	return nil
}

// classify builds the document for req, generating the tags when none are
// given and always computing the status.
func (r *Repository) classify(req *AddRequest) *model.Document {
	category := model.NormalizeCategory(req.Category)
	if category == "" {
		category = model.CategoryOther
	}

	tags := model.CleanTags(req.Tags)
	if tags == "" {
		tags = r.engine.GenerateTags(string(category), req.Description)
	}

	uploadDate := req.UploadDate.UTC()
	if req.UseCurrentTime || uploadDate.IsZero() {
		uploadDate = r.now()
	}

	return &model.Document{
		Filename:    req.Filename,
		Filepath:    req.Filepath,
		UploadDate:  uploadDate,
		Category:    category,
		Tags:        tags,
		Description: req.Description,
		Status:      r.engine.AssignStatus(string(category)),
	}
}

// Add classifies and stores a new document and returns the updated
// collection. Nothing is written when the filename or filepath is empty.
func (r *Repository) Add(ctx context.Context, req AddRequest) ([]*model.Document, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.current(ctx)
	if err != nil {
		return docs, err
	}

	doc := r.classify(&req)
	updated, err := r.ids.create(ctx, docs, []*model.Document{doc})
	if err != nil {
		logrus.Errorf("failed to add document %s: %v", req.Filename, err)
		return docs, backendError("add document", err)
	}

	r.commit(ctx, updated)
	logrus.Infof("document %s added with status %s", doc.Filename, doc.Status)

	return updated, nil
}

// Import classifies and stores a batch of documents with a single write.
// Requests missing a required field are skipped. It returns the number of
// documents stored.
func (r *Repository) Import(ctx context.Context, reqs []AddRequest) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.current(ctx)
	if err != nil {
		return 0, err
	}

	batch := make([]*model.Document, 0, len(reqs))
	for i := range reqs {
		if err := reqs[i].validate(); err != nil {
			logrus.Warnf("skipping record %d: %v", i, err)
			continue
		}
		batch = append(batch, r.classify(&reqs[i]))
	}

	if len(batch) == 0 {
		return 0, nil
	}

	updated, err := r.ids.create(ctx, docs, batch)
	if err != nil {
		logrus.Errorf("failed to import %d documents: %v", len(batch), err)
		return 0, backendError("import documents", err)
	}

	r.commit(ctx, updated)
	logrus.Infof("imported %d documents", len(batch))

	return len(batch), nil
}

// UpdateStatus sets the status of one document. It returns false when no
// document has the id.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	next, ok := model.ParseStatus(status)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.current(ctx)
	if err != nil {
		return false, err
	}

	if !contains(docs, id) {
		logrus.Warnf("document with id %d not found", id)
		return false, nil
	}

	updated, err := r.ids.updateStatus(ctx, docs, id, next)
	if err != nil {
		logrus.Errorf("failed to update status of document %d: %v", id, err)
		return false, backendError("update status", err)
	}

	r.commit(ctx, updated)
	logrus.Infof("document %d status set to %s", id, next)

	return true, nil
}

// Delete removes one document. It returns false when no document has the id.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.current(ctx)
	if err != nil {
		return false, err
	}

	if !contains(docs, id) {
		logrus.Warnf("document with id %d not found", id)
		return false, nil
	}

	_, err = r.remove(ctx, docs, mapset.NewSet(id))
	if err != nil {
		return false, err
	}

	return true, nil
}

// DeleteMany removes every document whose id is in ids. Unknown ids are
// ignored. It returns false when none of the ids exist, and the number of
// removed documents.
func (r *Repository) DeleteMany(ctx context.Context, ids []int64) (bool, int, error) {
	if len(ids) == 0 {
		return false, 0, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.current(ctx)
	if err != nil {
		return false, 0, err
	}

	valid := mapset.NewSet(ids...).Intersect(idSet(docs))
	if valid.Cardinality() == 0 {
		logrus.Warnf("no valid documents to delete")
		return false, 0, nil
	}

	n, err := r.remove(ctx, docs, valid)
	if err != nil {
		return false, 0, err
	}

	return true, n, nil
}

func (r *Repository) remove(ctx context.Context, docs []*model.Document, ids mapset.Set[int64]) (int, error) {
	updated, n, err := r.ids.remove(ctx, docs, ids)
	if err != nil {
		logrus.Errorf("failed to delete documents %v: %v", ids, err)
		return 0, backendError("delete documents", err)
	}

	r.commit(ctx, updated)
	logrus.Infof("%d documents deleted", n)

	return n, nil
}

// RegenerateTags replaces the tags of the given documents, or of every
// document when ids is empty, with freshly generated ones. It returns the
// number of retagged documents.
func (r *Repository) RegenerateTags(ctx context.Context, ids []int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.current(ctx)
	if err != nil {
		return 0, err
	}

	targets := mapset.NewSet(ids...)

	var changed []*model.Document
	for _, doc := range docs {
		if len(ids) > 0 && !targets.Contains(doc.ID) {
			continue
		}
		doc.Tags = r.engine.GenerateTags(string(doc.Category), doc.Description)
		changed = append(changed, doc)
	}

	if len(changed) == 0 {
		logrus.Warnf("no documents to retag")
		return 0, nil
	}

	if err := r.ids.saveBackfill(ctx, docs, changed); err != nil {
		logrus.Errorf("failed to save regenerated tags: %v", err)
		return 0, backendError("regenerate tags", err)
	}

	r.commit(ctx, docs)
	logrus.Infof("regenerated tags of %d documents", len(changed))

	return len(changed), nil
}

func contains(docs []*model.Document, id int64) bool {
	for _, doc := range docs {
		if doc.ID == id {
			return true
		}
	}

	return false
}

func idSet(docs []*model.Document) mapset.Set[int64] {
	ids := mapset.NewSetWithSize[int64](len(docs))
	for _, doc := range docs {
		ids.Add(doc.ID)
	}

	return ids
}
