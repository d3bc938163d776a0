package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := fmt.Errorf("insert user: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected false for foreign key violation")
		}
		if isUniqueViolation(fakeErr("pq: relation users does not exist")) {
			t.Fatalf("expected false for plain error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get user: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to match")
	}
}

func TestNullStringRoundTrip(t *testing.T) {
	if got := stringToNullString(""); got.Valid {
		t.Fatalf("expected empty string to be NULL")
	}
	if got := nullStringToString(stringToNullString("Cue Club")); got != "Cue Club" {
		t.Fatalf("unexpected value: %s", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
