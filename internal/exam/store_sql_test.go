package exam

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/MahmoudMoheyEldeen/examsApi/internal/db"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "exams.db")
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	return NewSQLStore(dbh, "sqlite")
}

func TestSQLStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	created, err := s.CreateExam(ctx, validExam())
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}

	got, err := s.GetExam(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetExam: %v", err)
	}
	if got.Division != "A" || got.Year != "2024" || len(got.Questions) != 1 {
		t.Errorf("GetExam = %+v", got)
	}
	if got.Questions[0].Text != "2+2?" || got.Questions[0].Choices[1] != "4" {
		t.Errorf("questions survived badly: %+v", got.Questions)
	}

	got.Questions[0].Choices = []string{"5", "6"}
	updated, err := s.ReplaceExam(ctx, created.ID, got)
	if err != nil {
		t.Fatalf("ReplaceExam: %v", err)
	}
	if updated.Questions[0].Choices[0] != "5" {
		t.Errorf("ReplaceExam = %+v", updated.Questions)
	}

	all, err := s.ListExams(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("ListExams = %v, %v", all, err)
	}

	if err := s.DeleteExam(ctx, created.ID); err != nil {
		t.Fatalf("DeleteExam: %v", err)
	}
	if err := s.DeleteExam(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestSQLStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	if _, err := s.GetExam(ctx, "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetExam err = %v, want ErrNotFound", err)
	}
	if _, err := s.ReplaceExam(ctx, "no-such-id", validExam()); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReplaceExam err = %v, want ErrNotFound", err)
	}
}

func TestSQLStoreUniqueMetadata(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	if _, err := s.CreateExam(ctx, validExam()); err != nil {
		t.Fatal(err)
	}
	_, err := s.CreateExam(ctx, validExam())
	if err == nil || !IsValidation(err) {
		t.Fatalf("duplicate create err = %v, want validation error", err)
	}
}

func TestSQLStoreQuestions(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	if _, err := s.CreateExam(ctx, validExam()); err != nil {
		t.Fatal(err)
	}
	f := Filter{Division: "A", Level: "1", Term: "T1", Subject: "Math", Year: "2024"}

	updated, err := s.AppendQuestion(ctx, f, Question{Text: "3+3?", Choices: []string{"5", "6"}})
	if err != nil {
		t.Fatalf("AppendQuestion: %v", err)
	}
	if len(updated.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(updated.Questions))
	}

	updated, err = s.RemoveQuestion(ctx, f, 0)
	if err != nil {
		t.Fatalf("RemoveQuestion: %v", err)
	}
	if len(updated.Questions) != 1 || updated.Questions[0].Text != "3+3?" {
		t.Errorf("after remove(0): %+v", updated.Questions)
	}

	if _, err := s.RemoveQuestion(ctx, f, 5); err == nil || !IsValidation(err) {
		t.Errorf("out-of-range remove err = %v, want validation error", err)
	}

	missing := Filter{Division: "Z", Level: "9", Term: "T9", Subject: "None", Year: "1900"}
	if _, err := s.AppendQuestion(ctx, missing, Question{Text: "x", Choices: []string{"a", "b"}}); !errors.Is(err, ErrNotFound) {
		t.Errorf("append to missing exam err = %v, want ErrNotFound", err)
	}
	if _, err := s.RemoveQuestion(ctx, missing, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("remove from missing exam err = %v, want ErrNotFound", err)
	}
}
