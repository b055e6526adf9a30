package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/emrgen/doctrack/internal/compress"
	"github.com/emrgen/doctrack/internal/model"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Columns is the flat file header, in order.
var Columns = []string{"filename", "filepath", "upload_date", "category", "tags", "description", "status"}

var _ TableStore = (*CSVStore)(nil)

// CSVStore keeps documents in a delimited flat file with a header row. The
// whole file is rewritten on every mutation.
type CSVStore struct {
	path  string
	codec compress.Compress
}

// NewCSVStore creates a store over path. A nil codec stores plain text.
func NewCSVStore(path string, codec compress.Compress) *CSVStore {
	if codec == nil {
		codec = compress.NewNop()
	}

	return &CSVStore{
		path:  path,
		codec: codec,
	}
}

// Path returns the backing file.
func (c *CSVStore) Path() string {
	return c.path
}

// Migrate creates the file with only the header when it is missing or empty.
func (c *CSVStore) Migrate(ctx context.Context) error {
	info, err := os.Stat(c.path)
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return c.ReplaceDocuments(ctx, nil)
}

func (c *CSVStore) ListDocuments(ctx context.Context) ([]*model.Document, error) {
	raw, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(raw) == 0) {
		logrus.Infof("document file %s missing or empty, creating it", c.path)
		return []*model.Document{}, c.ReplaceDocuments(ctx, nil)
	}
	if err != nil {
		return nil, err
	}

	data, err := c.codec.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []*model.Document{}, c.ReplaceDocuments(ctx, nil)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", c.path, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}

	var missing []string
	for _, column := range Columns {
		if _, ok := index[column]; !ok {
			missing = append(missing, column)
		}
	}

	docs := make([]*model.Document, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", c.path, err)
		}

		field := func(column string) string {
			i, ok := index[column]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		uploaded, _ := model.ParseTimestamp(field("upload_date"))
		docs = append(docs, &model.Document{
			ID:          int64(len(docs)),
			Filename:    field("filename"),
			Filepath:    field("filepath"),
			UploadDate:  uploaded,
			Category:    model.Category(field("category")),
			Tags:        field("tags"),
			Description: field("description"),
			Status:      model.Status(field("status")),
		})
	}

	if len(missing) > 0 {
		logrus.Warnf("columns missing in %s: %s", c.path, strings.Join(missing, ", "))
		if err := c.ReplaceDocuments(ctx, docs); err != nil {
			return nil, err
		}
	}

	return docs, nil
}

// ReplaceDocuments writes docs to a temporary file and renames it over the
// target, so readers never see a half written file.
func (c *CSVStore) ReplaceDocuments(ctx context.Context, docs []*model.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Columns); err != nil {
		return err
	}
	for _, doc := range docs {
		err := w.Write([]string{
			doc.Filename,
			doc.Filepath,
			model.FormatTimestamp(doc.UploadDate),
			string(doc.Category),
			doc.Tags,
			doc.Description,
			string(doc.Status),
		})
		if err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	data, err := c.codec.Encode(buf.Bytes())
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(c.path), uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	if err := os.Rename(tmp, c.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return nil
}
