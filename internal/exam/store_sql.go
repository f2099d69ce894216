package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLStore is the relational fallback for deployments without a document
// database. Questions are serialized into a questions_json column; the
// metadata tuple carries a UNIQUE constraint, mirroring the Mongo index.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) ListExams(ctx context.Context) ([]Exam, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,division,level,term,subject,year,questions_json,created_at FROM exams ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exams := []Exam{}
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

func (s *SQLStore) GetExam(ctx context.Context, id string) (Exam, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,division,level,term,subject,year,questions_json,created_at FROM exams WHERE id=$1`, id)
	e, err := scanExam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Exam{}, ErrNotFound
	}
	return e, err
}

func (s *SQLStore) CreateExam(ctx context.Context, e Exam) (Exam, error) {
	qj, err := json.Marshal(e.Questions)
	if err != nil {
		return Exam{}, err
	}
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().Unix()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO exams (id,division,level,term,subject,year,questions_json,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		e.ID, e.Division, e.Level, e.Term, e.Subject, e.Year, string(qj), e.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Exam{}, invalidf("exam already exists for this division/level/term/subject/year")
		}
		return Exam{}, err
	}
	return e, nil
}

func (s *SQLStore) ReplaceExam(ctx context.Context, id string, e Exam) (Exam, error) {
	qj, err := json.Marshal(e.Questions)
	if err != nil {
		return Exam{}, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE exams SET division=$1,level=$2,term=$3,subject=$4,year=$5,questions_json=$6 WHERE id=$7`,
		e.Division, e.Level, e.Term, e.Subject, e.Year, string(qj), id)
	if err != nil {
		if isUniqueViolation(err) {
			return Exam{}, invalidf("exam already exists for this division/level/term/subject/year")
		}
		return Exam{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Exam{}, ErrNotFound
	}
	return s.GetExam(ctx, id)
}

func (s *SQLStore) DeleteExam(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM exams WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) AppendQuestion(ctx context.Context, f Filter, q Question) (Exam, error) {
	e, err := s.getByFilter(ctx, f)
	if err != nil {
		return Exam{}, err
	}
	e.Questions = append(e.Questions, q)
	return s.writeQuestions(ctx, e)
}

func (s *SQLStore) RemoveQuestion(ctx context.Context, f Filter, index int) (Exam, error) {
	e, err := s.getByFilter(ctx, f)
	if err != nil {
		return Exam{}, err
	}
	qs, err := removeQuestionAt(e.Questions, index)
	if err != nil {
		return Exam{}, err
	}
	e.Questions = qs
	return s.writeQuestions(ctx, e)
}

func (s *SQLStore) Close(ctx context.Context) error { return s.db.Close() }

func (s *SQLStore) getByFilter(ctx context.Context, f Filter) (Exam, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,division,level,term,subject,year,questions_json,created_at FROM exams
		 WHERE division=$1 AND level=$2 AND term=$3 AND subject=$4 AND year=$5`,
		f.Division, f.Level, f.Term, f.Subject, f.Year)
	e, err := scanExam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Exam{}, ErrNotFound
	}
	return e, err
}

func (s *SQLStore) writeQuestions(ctx context.Context, e Exam) (Exam, error) {
	qj, err := json.Marshal(e.Questions)
	if err != nil {
		return Exam{}, err
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE exams SET questions_json=$1 WHERE id=$2`, string(qj), e.ID); err != nil {
		return Exam{}, err
	}
	return e, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExam(r rowScanner) (Exam, error) {
	var e Exam
	var qjson string
	if err := r.Scan(&e.ID, &e.Division, &e.Level, &e.Term, &e.Subject, &e.Year, &qjson, &e.CreatedAt); err != nil {
		return Exam{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &e.Questions); err != nil {
		return Exam{}, err
	}
	return e, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// modernc.org/sqlite reports constraint failures by message only
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
