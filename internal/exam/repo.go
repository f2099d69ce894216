package exam

import "context"

// Store is the document-store boundary. Every call is a single attempt; no
// retries. Not-found conditions surface as ErrNotFound, index-range and
// shape problems as *ValidationError, anything else is a store failure.
type Store interface {
	ListExams(ctx context.Context) ([]Exam, error)
	GetExam(ctx context.Context, id string) (Exam, error)

	// CreateExam persists e with a store-generated id and returns the
	// stored document.
	CreateExam(ctx context.Context, e Exam) (Exam, error)

	// ReplaceExam overwrites the document with the given id wholesale.
	ReplaceExam(ctx context.Context, id string, e Exam) (Exam, error)

	DeleteExam(ctx context.Context, id string) error

	// AppendQuestion pushes q onto the question list of the exam matching f
	// as one atomic store update and returns the updated document.
	AppendQuestion(ctx context.Context, f Filter, q Question) (Exam, error)

	// RemoveQuestion drops the question at index from the exam matching f.
	// Read-modify-write: two store calls, so concurrent removals against
	// the same exam can lose updates.
	RemoveQuestion(ctx context.Context, f Filter, index int) (Exam, error)

	Close(ctx context.Context) error
}
