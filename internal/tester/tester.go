package tester

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/emrgen/doctrack/internal/model"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB opens a migrated sqlite database in a temporary directory that is
// removed when the test ends.
func TestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "db")
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		t.Fatal(err)
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "document.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := model.Migrate(db); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// EmptyDB opens a sqlite database without the documents table.
func EmptyDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "empty.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// Redis starts an in-process redis server and returns a client connected to it.
func Redis(t testing.TB) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr:     server.Addr(),
		Password: "", // No password set
		DB:       0,  // Use default DB
		Protocol: 2,  // Connection protocol
	})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return client, server
}

// SampleDocuments returns a mixed, fully classified collection of ten records.
func SampleDocuments() []*model.Document {
	day := func(d int) time.Time {
		return time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC).AddDate(0, 0, d)
	}

	return []*model.Document{
		{Filename: "budget.xlsx", Filepath: "/admin/budget.xlsx", UploadDate: day(0), Category: model.CategoryAdministrative, Tags: "budget,report,finances", Description: "financial budget 2024", Status: model.StatusActive},
		{Filename: "policy.pdf", Filepath: "/admin/policy.pdf", UploadDate: day(3), Category: model.CategoryAdministrative, Tags: "policy,compliance", Description: "security policy", Status: model.StatusArchived},
		{Filename: "roadmap.md", Filepath: "/project/roadmap.md", UploadDate: day(10), Category: model.CategoryProject, Tags: "planning,strategy,objectives", Description: "product roadmap", Status: model.StatusActive},
		{Filename: "proto.zip", Filepath: "/project/proto.zip", UploadDate: day(35), Category: model.CategoryProject, Tags: "prototype,R&D", Description: "innovation prototype", Status: model.StatusActive},
		{Filename: "client.docx", Filepath: "/project/client.docx", UploadDate: day(40), Category: model.CategoryProject, Tags: "client,proposal", Description: "client proposal", Status: model.StatusDeleted},
		{Filename: "hiring.pdf", Filepath: "/hr/hiring.pdf", UploadDate: day(41), Category: model.CategoryPersonnel, Tags: "recruitment,CV,skills", Description: "recruitment plan", Status: model.StatusActive},
		{Filename: "review.pdf", Filepath: "/hr/review.pdf", UploadDate: day(62), Category: model.CategoryPersonnel, Tags: "evaluation,performance", Description: "annual evaluation", Status: model.StatusArchived},
		{Filename: "personnel-list.csv", Filepath: "/hr/personnel-list.csv", UploadDate: day(70), Category: model.CategoryPersonnel, Tags: "HR,human_resources", Description: "staff list", Status: model.StatusActive},
		{Filename: "notes.txt", Filepath: "/misc/notes.txt", UploadDate: day(90), Category: model.CategoryOther, Tags: "miscellaneous,document", Description: "meeting notes", Status: model.StatusActive},
		{Filename: "manual.pdf", Filepath: "/misc/manual.pdf", UploadDate: day(95), Category: model.CategoryOther, Tags: "documentation,reference,Personnel", Description: "user manual", Status: model.StatusDeleted},
	}
}

// Setup quiets the logger for a test binary. DOCTRACK_TEST_LOG overrides
// the level, e.g. DOCTRACK_TEST_LOG=debug.
func Setup() {
	level, err := logrus.ParseLevel(os.Getenv("DOCTRACK_TEST_LOG"))
	if err != nil {
		level = logrus.WarnLevel
	}
	logrus.SetLevel(level)
}
