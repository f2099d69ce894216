package exam

import (
	"context"
	"errors"
	"testing"
)

func seed(t *testing.T, s Store) Exam {
	t.Helper()
	e, err := s.CreateExam(context.Background(), validExam())
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	if e.ID == "" {
		t.Fatal("CreateExam returned empty id")
	}
	return e
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	created := seed(t, s)

	got, err := s.GetExam(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetExam: %v", err)
	}
	if got.Subject != "Math" || len(got.Questions) != 1 {
		t.Errorf("GetExam = %+v", got)
	}

	all, err := s.ListExams(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("ListExams = %v, %v", all, err)
	}

	got.Questions[0].Choices = []string{"4", "5"}
	updated, err := s.ReplaceExam(ctx, created.ID, got)
	if err != nil {
		t.Fatalf("ReplaceExam: %v", err)
	}
	if updated.Questions[0].Choices[1] != "5" {
		t.Errorf("ReplaceExam = %+v", updated)
	}

	if err := s.DeleteExam(ctx, created.ID); err != nil {
		t.Fatalf("DeleteExam: %v", err)
	}
	if err := s.DeleteExam(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetExam(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetExam after delete err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreUniqueMetadata(t *testing.T) {
	s := NewInMemoryStore()
	seed(t, s)
	_, err := s.CreateExam(context.Background(), validExam())
	if err == nil || !IsValidation(err) {
		t.Fatalf("duplicate create err = %v, want validation error", err)
	}
}

func TestMemoryStoreAppendQuestion(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	created := seed(t, s)
	f := Filter{Division: "A", Level: "1", Term: "T1", Subject: "Math", Year: "2024"}

	updated, err := s.AppendQuestion(ctx, f, Question{Text: "3+3?", Choices: []string{"5", "6"}})
	if err != nil {
		t.Fatalf("AppendQuestion: %v", err)
	}
	if len(updated.Questions) != 2 || updated.Questions[1].Text != "3+3?" {
		t.Errorf("AppendQuestion = %+v", updated.Questions)
	}

	// append is persisted, not just echoed
	got, _ := s.GetExam(ctx, created.ID)
	if len(got.Questions) != 2 {
		t.Errorf("persisted questions = %d, want 2", len(got.Questions))
	}

	f.Year = "1999"
	if _, err := s.AppendQuestion(ctx, f, Question{Text: "x", Choices: []string{"a", "b"}}); !errors.Is(err, ErrNotFound) {
		t.Errorf("append to missing exam err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreRemoveQuestion(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	e := validExam()
	e.Questions = []Question{
		{Text: "q0", Choices: []string{"a", "b"}},
		{Text: "q1", Choices: []string{"a", "b"}},
		{Text: "q2", Choices: []string{"a", "b"}},
	}
	if _, err := s.CreateExam(ctx, e); err != nil {
		t.Fatal(err)
	}
	f := Filter{Division: "A", Level: "1", Term: "T1", Subject: "Math", Year: "2024"}

	updated, err := s.RemoveQuestion(ctx, f, 0)
	if err != nil {
		t.Fatalf("RemoveQuestion: %v", err)
	}
	if len(updated.Questions) != 2 || updated.Questions[0].Text != "q1" || updated.Questions[1].Text != "q2" {
		t.Errorf("after remove(0): %+v", updated.Questions)
	}

	if _, err := s.RemoveQuestion(ctx, f, 2); err == nil || !IsValidation(err) {
		t.Errorf("out-of-range remove err = %v, want validation error", err)
	}
	// document unchanged after the failed remove
	if cur, _ := s.RemoveQuestion(ctx, f, 0); len(cur.Questions) != 1 {
		t.Errorf("questions after failed remove then remove(0) = %d, want 1", len(cur.Questions))
	}
}
