package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsSerializationFailure(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{&pgconn.PgError{Code: "40001"}, true},
		{fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"}), true},
		{&pgconn.PgError{Code: "40P01"}, true},
		{&pgconn.PgError{Code: "23505"}, true},
		{&pgconn.PgError{Code: "42P01"}, false},
		{errors.New("sql: database is closed"), false},
		{nil, false},
	}
	for _, c := range cases {
		if got := isSerializationFailure(c.err); got != c.want {
			t.Errorf("isSerializationFailure(%v): expected %v, got %v", c.err, c.want, got)
		}
	}
}

func TestToggle_FlipsByDeleteThenInsert(t *testing.T) {
	s, err := Open(t.Context(), DriverSQLite, "file::memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer s.Close()
	sqlStore := s.(*SQLStore)

	for i, want := range []bool{true, false, true} {
		set, err := sqlStore.toggleOnce(t.Context(), "favorites", "q1")
		if err != nil {
			t.Fatalf("toggle %d: unexpected error: %v", i, err)
		}
		if set["q1"] != want {
			t.Errorf("toggle %d: expected membership %v, got %v", i, want, set["q1"])
		}
	}
}
