package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vetqa/backend/internal/domain/attempt"
	"github.com/vetqa/backend/internal/domain/question"
)

// SQLStore persists the four collections in SQLite or Postgres.
// Questions are stored as JSON documents keyed by id.
type SQLStore struct {
	db     *sql.DB
	driver Driver
}

// Compile-time check: *SQLStore satisfies the Store interface.
var _ Store = (*SQLStore)(nil)

func newSQLStore(db *sql.DB, driver Driver) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) q(query string) string {
	return rebind(s.driver, query)
}

// setTables maps collections to table names; never interpolate anything else.
var setTables = map[Collection]string{
	Favorites: "favorites",
	ToReview:  "to_review",
}

// ============================================================================
// Questions
// ============================================================================

func (s *SQLStore) UpsertMany(ctx context.Context, raws []any, chunkSize int) (UpsertResult, error) {
	if err := s.db.PingContext(ctx); err != nil {
		if ctx.Err() != nil {
			return UpsertResult{Errors: []RecordError{}}, ctx.Err()
		}
		return UpsertResult{Errors: []RecordError{}}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return upsertMany(ctx, raws, chunkSize, s.upsertOne)
}

// upsertOne reads, merges and writes one question inside its own transaction.
func (s *SQLStore) upsertOne(ctx context.Context, q question.Question) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	existing, err := s.getQuestion(ctx, tx, q.ID)
	existed := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return false, err
	}
	if existed {
		q = question.Merge(existing, q)
	}

	if err := s.putQuestion(ctx, tx, q); err != nil {
		return false, err
	}
	return existed, tx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *SQLStore) putQuestion(ctx context.Context, db execer, q question.Question) error {
	doc, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode question %s: %w", q.ID, err)
	}
	_, err = db.ExecContext(ctx, s.q(`
		INSERT INTO questions (id, version, status, doc, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
		    version = excluded.version,
		    status = excluded.status,
		    doc = excluded.doc,
		    updated_at = excluded.updated_at`),
		q.ID, q.Version, string(q.Status), string(doc), time.Now().UnixMilli(),
	)
	return err
}

func (s *SQLStore) getQuestion(ctx context.Context, db querier, id string) (question.Question, error) {
	var doc string
	err := db.QueryRowContext(ctx, s.q("SELECT doc FROM questions WHERE id = ?"), id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return question.Question{}, ErrNotFound
	}
	if err != nil {
		return question.Question{}, err
	}

	var q question.Question
	if err := json.Unmarshal([]byte(doc), &q); err != nil {
		return question.Question{}, fmt.Errorf("decode question %s: %w", id, err)
	}
	return q, nil
}

func (s *SQLStore) GetQuestion(ctx context.Context, id string) (question.Question, error) {
	return s.getQuestion(ctx, s.db, id)
}

func (s *SQLStore) GetAllQuestions(ctx context.Context) ([]question.Question, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT doc FROM questions ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []question.Question{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var q question.Question
		if err := json.Unmarshal([]byte(doc), &q); err != nil {
			return nil, fmt.Errorf("decode question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *SQLStore) ClearQuestions(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM questions")
	return err
}

// ============================================================================
// Sets
// ============================================================================

func (s *SQLStore) GetSet(ctx context.Context, c Collection) (map[string]bool, error) {
	table, ok := setTables[c]
	if !ok {
		return nil, ErrUnknownCollection
	}
	return s.readSet(ctx, s.db, table)
}

func (s *SQLStore) readSet(ctx context.Context, db querier, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT id FROM "+table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		set[id] = true
	}
	return set, rows.Err()
}

// maxToggleAttempts bounds retries of a toggle that lost a serialization race.
const maxToggleAttempts = 10

// Toggle flips membership in a single transaction and returns the set as seen
// by that transaction. On postgres the transaction is SERIALIZABLE, so two
// concurrent toggles of the same id cannot both observe the old membership;
// the loser is retried.
func (s *SQLStore) Toggle(ctx context.Context, c Collection, id string) (map[string]bool, error) {
	table, ok := setTables[c]
	if !ok {
		return nil, ErrUnknownCollection
	}

	for try := 1; ; try++ {
		set, err := s.toggleOnce(ctx, table, id)
		if err == nil || try == maxToggleAttempts || !isSerializationFailure(err) {
			return set, err
		}
	}
}

func (s *SQLStore) toggleOnce(ctx context.Context, table, id string) (map[string]bool, error) {
	var opts *sql.TxOptions
	if s.driver == DriverPostgres {
		opts = &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, s.q("DELETE FROM "+table+" WHERE id = ?"), id)
	if err != nil {
		return nil, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if removed == 0 {
		if _, err := tx.ExecContext(ctx, s.q("INSERT INTO "+table+" (id) VALUES (?)"), id); err != nil {
			return nil, err
		}
	}

	set, err := s.readSet(ctx, tx, table)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return set, nil
}

// isSerializationFailure reports whether err is a postgres conflict that a
// retried transaction can resolve.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", // serialization_failure
		"40P01", // deadlock_detected
		"23505": // unique_violation from a concurrent insert of the same id
		return true
	}
	return false
}

// ============================================================================
// Attempts
// ============================================================================

func (s *SQLStore) AddAttempt(ctx context.Context, a attempt.Attempt) error {
	areas, err := json.Marshal(a.Areas)
	if err != nil {
		return err
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, s.q(
		"INSERT INTO attempts (question_id, correct, areas, topic, created_at) VALUES (?, ?, ?, ?, ?)"),
		a.QuestionID, a.Correct, string(areas), a.Topic, a.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("%w: add attempt: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *SQLStore) GetAllAttempts(ctx context.Context) ([]attempt.Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT seq, question_id, correct, areas, topic, created_at FROM attempts ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := []attempt.Attempt{}
	for rows.Next() {
		var a attempt.Attempt
		var areasJSON string
		var createdAt int64
		if err := rows.Scan(&a.Seq, &a.QuestionID, &a.Correct, &areasJSON, &a.Topic, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(areasJSON), &a.Areas); err != nil {
			return nil, fmt.Errorf("decode attempt %d areas: %w", a.Seq, err)
		}
		a.CreatedAt = time.UnixMilli(createdAt).UTC()
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
