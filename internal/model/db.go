package model

import "gorm.io/gorm"

// DocumentRow is the relational form of a Document. Upload dates are kept
// as RFC 3339 text so every driver stores the same value.
type DocumentRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Filename    string `gorm:"not null"`
	Filepath    string `gorm:"not null"`
	UploadDate  string `gorm:"not null"`
	Category    string
	Tags        string
	Description string
	Status      string `gorm:"default:Active"`
}

func (DocumentRow) TableName() string {
	return "documents"
}

// NewDocumentRow converts a document into its row form.
func NewDocumentRow(doc *Document) *DocumentRow {
	return &DocumentRow{
		ID:          doc.ID,
		Filename:    doc.Filename,
		Filepath:    doc.Filepath,
		UploadDate:  FormatTimestamp(doc.UploadDate),
		Category:    string(doc.Category),
		Tags:        doc.Tags,
		Description: doc.Description,
		Status:      string(doc.Status),
	}
}

// Document converts the row back, leaving unparsable dates zero.
func (r *DocumentRow) Document() *Document {
	uploaded, _ := ParseTimestamp(r.UploadDate)
	return &Document{
		ID:          r.ID,
		Filename:    r.Filename,
		Filepath:    r.Filepath,
		UploadDate:  uploaded,
		Category:    Category(r.Category),
		Tags:        r.Tags,
		Description: r.Description,
		Status:      Status(r.Status),
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&DocumentRow{}); err != nil {
		return err
	}

	return nil
}
