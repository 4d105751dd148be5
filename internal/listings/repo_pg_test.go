package listings

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	run := Run{
		ID:        "run-1",
		UserID:    "user-1",
		Status:    StatusProcessing,
		RawText:   "Title: ring",
		Options:   Options{PersonaLevel: 3},
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO listing_runs").
		WithArgs(
			run.ID,
			run.UserID,
			run.Status,
			run.RawText,
			sqlmock.AnyArg(), // options
			nil,              // classifier
			nil,              // fields
			nil,              // validation
			run.QualityScore,
			nil, // summary
			nil, // error_code
			nil, // error_message
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), run); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	cols := []string{
		"id", "user_id", "status", "raw_text", "options", "classifier", "fields",
		"validation", "quality_score", "summary", "error_code", "error_message",
		"created_at", "updated_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM listing_runs").
		WithArgs("run-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"run-1", "user-1", StatusCompleted, "Title: ring",
			`{"personaLevel":3}`,
			`{"gift_mode":true,"audience":["women"],"fallback_profile":"general","allow_handmade":false}`,
			`{"title":"Artisan Silver Ring","tags":["ring"],"description":"::: Overview :::"}`,
			nil, 95, `{"stages":[],"tokensIn":400,"tokensOut":200,"costUsd":0.006,"durationMs":1200}`,
			nil, nil, now, now,
		))

	run, err := repo.GetByID(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if run.Status != StatusCompleted {
		t.Fatalf("status = %q", run.Status)
	}
	if run.Classifier == nil || !run.Classifier.GiftMode {
		t.Fatalf("classifier = %+v", run.Classifier)
	}
	if run.Fields == nil || run.Fields.Title != "Artisan Silver Ring" {
		t.Fatalf("fields = %+v", run.Fields)
	}
	if run.Summary == nil || run.Summary.TokensIn != 400 {
		t.Fatalf("summary = %+v", run.Summary)
	}
	if run.QualityScore != 95 {
		t.Fatalf("quality = %d", run.QualityScore)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM listing_runs").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoUpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE listing_runs").
		WillReturnResult(sqlmock.NewResult(0, 0))

	run := Run{ID: "missing", Status: StatusFailed}
	if err := repo.Update(context.Background(), run); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	cols := []string{
		"id", "user_id", "status", "raw_text", "options", "classifier", "fields",
		"validation", "quality_score", "summary", "error_code", "error_message",
		"created_at", "updated_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM listing_runs").
		WithArgs("user-1", 20, 0).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("run-2", "user-1", StatusCompleted, "x", "{}", nil, nil, nil, 100, nil, nil, nil, now, now).
			AddRow("run-1", "user-1", StatusFailed, "x", "{}", nil, nil, nil, 0, nil, "generation_failed", "Title generation failed", now.Add(-time.Hour), now))

	runs, err := repo.ListByUser(context.Background(), "user-1", 0, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len = %d", len(runs))
	}
	if runs[1].ErrorCode != "generation_failed" {
		t.Fatalf("error code = %q", runs[1].ErrorCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
