package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"

	apperrors "github.com/kbukum/sqlstream/errors"
	"github.com/kbukum/sqlstream/logger"
	"github.com/kbukum/sqlstream/stream"
)

// newTestDB opens an isolated in-memory database seeded with a small people
// table. The shared-cache DSN keeps the schema visible to the dedicated
// connection WithStream acquires.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	cfg := Config{
		Name:         "test",
		DSN:          dsn,
		MaxOpenConns: 2,
		MaxIdleConns: 1,
		MaxRetries:   1,
		LogLevel:     "silent",
	}

	db, err := New(cfg, logger.Nop(), sqlite.Open(dsn))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.GormDB.Exec(
		`CREATE TABLE people (id INTEGER PRIMARY KEY, name TEXT NOT NULL, age INTEGER NOT NULL)`,
	).Error; err != nil {
		t.Fatal(err)
	}
	seed := []struct {
		name string
		age  int
	}{
		{"alice", 30}, {"bob", 25}, {"carol", 35}, {"dave", 25}, {"erin", 40},
	}
	for _, p := range seed {
		if err := db.GormDB.Exec(
			`INSERT INTO people (name, age) VALUES (?, ?)`, p.name, p.age,
		).Error; err != nil {
			t.Fatal(err)
		}
	}
	return db
}

// asString tolerates drivers that scan TEXT as []byte.
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(s)
	}
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func nameOf(v any) (any, error) {
	name, ok := v.(*Row).Named("name")
	if !ok {
		return nil, errors.New("no name column")
	}
	return asString(name), nil
}

func ageOf(v any) int64 {
	age, _ := v.(*Row).Named("age")
	return asInt(age)
}

func TestWithStreamMapsRows(t *testing.T) {
	db := newTestDB(t)

	names, err := WithStream(context.Background(), db,
		`SELECT name, age FROM people ORDER BY id`,
		func(s *stream.Stream) ([]any, error) {
			return s.Map(nameOf).ToList()
		})
	if err != nil {
		t.Fatal(err)
	}

	want := []any{"alice", "bob", "carol", "dave", "erin"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %v, want %v", i, names[i], want[i])
		}
	}
}

func TestWithStreamFilterTake(t *testing.T) {
	db := newTestDB(t)

	names, err := WithStream(context.Background(), db,
		`SELECT name, age FROM people ORDER BY id`,
		func(s *stream.Stream) ([]any, error) {
			return s.
				Filter(func(v any) bool { return ageOf(v) >= 30 }).
				Map(nameOf).
				Take(2).
				ToList()
		})
	if err != nil {
		t.Fatal(err)
	}

	if len(names) != 2 || names[0] != "alice" || names[1] != "carol" {
		t.Errorf("names = %v, want [alice carol]", names)
	}
}

func TestWithStreamPositionalArgs(t *testing.T) {
	db := newTestDB(t)

	names, err := WithStream(context.Background(), db,
		`SELECT name FROM people WHERE age > ? ORDER BY id`,
		func(s *stream.Stream) ([]any, error) {
			return s.Map(nameOf).ToList()
		},
		WithArgs(28))
	if err != nil {
		t.Fatal(err)
	}

	want := []any{"alice", "carol", "erin"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %v, want %v", i, names[i], want[i])
		}
	}
}

func TestWithStreamNamedArgs(t *testing.T) {
	db := newTestDB(t)

	names, err := WithStream(context.Background(), db,
		`SELECT name FROM people WHERE age = @age ORDER BY id`,
		func(s *stream.Stream) ([]any, error) {
			return s.Map(nameOf).ToList()
		},
		WithNamedArgs(map[string]any{"age": 25}))
	if err != nil {
		t.Fatal(err)
	}

	if len(names) != 2 || names[0] != "bob" || names[1] != "dave" {
		t.Errorf("names = %v, want [bob dave]", names)
	}
}

func TestWithStreamMetadata(t *testing.T) {
	db := newTestDB(t)

	calls := 0
	var columns []string
	_, err := WithStream(context.Background(), db,
		`SELECT id, name, age FROM people`,
		func(s *stream.Stream) (int, error) {
			rows, err := s.ToList()
			return len(rows), err
		},
		WithMetadata(func(cols []*sql.ColumnType) {
			calls++
			for _, c := range cols {
				columns = append(columns, c.Name())
			}
		}))
	if err != nil {
		t.Fatal(err)
	}

	if calls != 1 {
		t.Fatalf("metadata callback invoked %d times, want 1", calls)
	}
	want := []string{"id", "name", "age"}
	if len(columns) != len(want) {
		t.Fatalf("columns = %v, want %v", columns, want)
	}
	for i := range want {
		if columns[i] != want[i] {
			t.Errorf("columns[%d] = %q, want %q", i, columns[i], want[i])
		}
	}
}

func TestWithStreamQueryFailed(t *testing.T) {
	db := newTestDB(t)

	_, err := WithStream(context.Background(), db,
		`SELECT nope FROM nowhere`,
		func(s *stream.Stream) (int, error) {
			return 0, nil
		})
	if err == nil {
		t.Fatal("expected error for invalid query")
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeQueryFailed) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeQueryFailed)
	}
}

func TestWithStreamBodyErrorPropagates(t *testing.T) {
	db := newTestDB(t)
	sentinel := errors.New("business rule violated")

	_, err := WithStream(context.Background(), db,
		`SELECT name FROM people`,
		func(s *stream.Stream) (int, error) {
			return 0, sentinel
		})
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want sentinel", err)
	}
}

func TestWithStreamLeakedStreamFailsClosed(t *testing.T) {
	db := newTestDB(t)

	leaked, err := WithStream(context.Background(), db,
		`SELECT name FROM people`,
		func(s *stream.Stream) (*stream.Stream, error) {
			return s, nil
		})
	if err != nil {
		t.Fatal(err)
	}

	_, err = leaked.ToList()
	if !apperrors.IsCode(err, apperrors.ErrCodeCursorClosed) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeCursorClosed)
	}
}

func TestWithStreamSecondRealizationUnsupported(t *testing.T) {
	db := newTestDB(t)

	_, err := WithStream(context.Background(), db,
		`SELECT name FROM people ORDER BY id`,
		func(s *stream.Stream) (int, error) {
			first, err := s.ToList()
			if err != nil {
				return 0, err
			}
			if len(first) != 5 {
				return 0, fmt.Errorf("first realization read %d rows", len(first))
			}

			// Result-set cursors are forward-only, so a sibling branch
			// cannot replay the rows.
			_, err = s.Map(nameOf).ToList()
			return 0, err
		})
	if !apperrors.IsCode(err, apperrors.ErrCodeRewindUnsupported) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeRewindUnsupported)
	}
}

func TestWithStreamTerminalHead(t *testing.T) {
	db := newTestDB(t)

	name, err := WithStream(context.Background(), db,
		`SELECT name FROM people ORDER BY id`,
		func(s *stream.Stream) (string, error) {
			v, ok, err := s.Map(nameOf).Head()
			if err != nil {
				return "", err
			}
			if !ok {
				return "", errors.New("empty result")
			}
			return v.(string), nil
		})
	if err != nil {
		t.Fatal(err)
	}
	if name != "alice" {
		t.Errorf("head = %q, want alice", name)
	}
}

func TestWithStreamTerminalAny(t *testing.T) {
	db := newTestDB(t)

	found, err := WithStream(context.Background(), db,
		`SELECT name, age FROM people ORDER BY id`,
		func(s *stream.Stream) (bool, error) {
			return s.Any(func(v any) bool { return ageOf(v) > 38 })
		})
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Error("Any = false, want true")
	}
}

func TestWithStreamEmptyResult(t *testing.T) {
	db := newTestDB(t)

	vals, err := WithStream(context.Background(), db,
		`SELECT name FROM people WHERE age > 100`,
		func(s *stream.Stream) ([]any, error) {
			return s.ToList()
		})
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 0 {
		t.Errorf("got %d values, want 0", len(vals))
	}
}

func TestWithStreamSnapshotRows(t *testing.T) {
	db := newTestDB(t)

	rows, err := WithStream(context.Background(), db,
		`SELECT name, age FROM people ORDER BY id`,
		func(s *stream.Stream) ([]any, error) {
			return s.Map(func(v any) (any, error) {
				return v.(*Row).Snapshot(), nil
			}).Take(2).ToList()
		})
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	first := rows[0].(map[string]any)
	second := rows[1].(map[string]any)
	if asString(first["name"]) != "alice" || asString(second["name"]) != "bob" {
		t.Errorf("snapshots = %v, %v", first, second)
	}
}

func TestWithStreamReleasesConnection(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 3; i++ {
		_, err := WithStream(context.Background(), db,
			`SELECT name FROM people`,
			func(s *stream.Stream) ([]any, error) {
				return s.ToList()
			})
		if err != nil {
			t.Fatal(err)
		}
	}

	stats, err := db.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.InUse != 0 {
		t.Errorf("connections still in use after scopes ended: %d", stats.InUse)
	}
}
