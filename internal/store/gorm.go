package store

import (
	"context"

	"github.com/emrgen/doctrack/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ KeyedStore = (*GormStore)(nil)

// GormStore keeps documents in the relational documents table.
type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) Migrate(ctx context.Context) error {
	return model.Migrate(g.db.WithContext(ctx))
}

func (g *GormStore) ListDocuments(ctx context.Context) ([]*model.Document, error) {
	if !g.db.Migrator().HasTable(&model.DocumentRow{}) {
		logrus.Infof("documents table missing, creating it")
		if err := g.Migrate(ctx); err != nil {
			return nil, err
		}
		return []*model.Document{}, nil
	}

	var rows []*model.DocumentRow
	err := g.db.WithContext(ctx).Order("id asc").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	docs := make([]*model.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, row.Document())
	}

	return docs, nil
}

func (g *GormStore) CreateDocument(ctx context.Context, doc *model.Document) error {
	row := model.NewDocumentRow(doc)
	row.ID = 0
	if err := g.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}

	doc.ID = row.ID
	return nil
}

func (g *GormStore) CreateDocuments(ctx context.Context, docs []*model.Document) error {
	if len(docs) == 0 {
		return nil
	}

	rows := make([]*model.DocumentRow, 0, len(docs))
	for _, doc := range docs {
		row := model.NewDocumentRow(doc)
		row.ID = 0
		rows = append(rows, row)
	}

	if err := g.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}

	for i, row := range rows {
		docs[i].ID = row.ID
	}

	return nil
}

// SaveDocuments writes back the classification columns of docs. Other
// columns are left as stored.
func (g *GormStore) SaveDocuments(ctx context.Context, docs []*model.Document) error {
	return g.Transaction(ctx, func(tx *GormStore) error {
		for _, doc := range docs {
			err := tx.db.Model(&model.DocumentRow{}).
				Where("id = ?", doc.ID).
				Updates(map[string]interface{}{
					"category": string(doc.Category),
					"tags":     doc.Tags,
					"status":   string(doc.Status),
				}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (g *GormStore) UpdateDocumentStatus(ctx context.Context, id int64, status model.Status) error {
	return g.db.WithContext(ctx).Model(&model.DocumentRow{}).Where("id = ?", id).Update("status", string(status)).Error
}

func (g *GormStore) DeleteDocuments(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	res := g.db.WithContext(ctx).Where("id in (?)", ids).Delete(&model.DocumentRow{})
	return res.RowsAffected, res.Error
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx *GormStore) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
