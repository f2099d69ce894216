package exam

import (
	"errors"
	"fmt"
	"strings"
)

// MinChoices is the smallest allowed choices list for a question.
const MinChoices = 2

var ErrNotFound = errors.New("exam not found")

// ValidationError marks client-input failures so handlers can map them to
// 400 instead of 500.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalidf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validate checks the exam shape before it reaches a store: all five
// metadata fields present, at least one question, every question valid.
func (e Exam) Validate() error {
	f := Filter{Division: e.Division, Level: e.Level, Term: e.Term, Subject: e.Subject, Year: e.Year}
	if !f.Complete() || len(e.Questions) == 0 {
		return invalidf("All fields are required")
	}
	for i, q := range e.Questions {
		if err := q.Validate(); err != nil {
			return invalidf("question %d: %v", i, err)
		}
	}
	return nil
}

// Validate checks a single question: non-empty text and at least MinChoices
// choices, none of them blank.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return errors.New("question text is required")
	}
	if len(q.Choices) < MinChoices {
		return fmt.Errorf("at least %d choices are required", MinChoices)
	}
	for _, c := range q.Choices {
		if strings.TrimSpace(c) == "" {
			return errors.New("choices must not be empty")
		}
	}
	return nil
}
