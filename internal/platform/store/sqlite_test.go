package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	perr "textpolish/internal/platform/errors"
)

type note struct {
	ID   int64
	Body string
}

func scanNote(r Row) (note, error) {
	var n note
	err := r.Scan(&n.ID, &n.Body)
	return n, err
}

func openMem(t *testing.T, tracer QueryTracer) TxRunner {
	t.Helper()
	ctx := context.Background()
	db, err := OpenSQLite(ctx, ":memory:", tracer)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.(interface{ Close() error }).Close() })
	if _, err := db.Exec(ctx, `CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	return db
}

func TestSQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openMem(t, nil)

	if err := ExecOne(ctx, db, `INSERT INTO notes (body) VALUES (?)`, "first"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := ExecOne(ctx, db, `INSERT INTO notes (body) VALUES (?)`, "second"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	n, err := Scalar[int64](ctx, db, `SELECT COUNT(*) FROM notes`)
	if err != nil || n != 2 {
		t.Fatalf("count = %d, %v", n, err)
	}

	got, err := One(ctx, db, scanNote, `SELECT id, body FROM notes WHERE body = ?`, "second")
	if err != nil || got.Body != "second" || got.ID != 2 {
		t.Fatalf("one = %+v, %v", got, err)
	}

	all, err := Many(ctx, db, scanNote, `SELECT id, body FROM notes ORDER BY id`)
	if err != nil || len(all) != 2 || all[0].Body != "first" {
		t.Fatalf("many = %+v, %v", all, err)
	}

	if _, err := One(ctx, db, scanNote, `SELECT id, body FROM notes WHERE id = ?`, 99); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("missing row err = %v", err)
	}
	if _, err := One(ctx, db, scanNote, `SELECT id, body FROM notes`); err == nil {
		t.Fatalf("expected error for more than one row")
	}
	if _, err := Scalar[string](ctx, db, `SELECT body FROM notes WHERE id = ?`, 99); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("scalar missing err = %v", err)
	}
}

func TestSQLite_ExecOneCountsRows(t *testing.T) {
	ctx := context.Background()
	db := openMem(t, nil)

	err := ExecOne(ctx, db, `DELETE FROM notes WHERE id = ?`, 1)
	if !errors.Is(err, ErrNotOne) {
		t.Fatalf("err = %v, want ErrNotOne", err)
	}
	tag, err := db.Exec(ctx, `INSERT INTO notes (body) VALUES ('a'), ('b')`)
	if err != nil {
		t.Fatal(err)
	}
	if tag.RowsAffected() != 2 || tag.String() != "INSERT 2" {
		t.Fatalf("tag = %q / %d", tag.String(), tag.RowsAffected())
	}
}

func TestSQLite_TxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := openMem(t, nil)
	boom := errors.New("boom")

	err := db.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, `INSERT INTO notes (body) VALUES ('lost')`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("tx err = %v", err)
	}
	n, _ := Scalar[int64](ctx, db, `SELECT COUNT(*) FROM notes`)
	if n != 0 {
		t.Fatalf("rolled back tx left %d rows", n)
	}

	err = db.Tx(ctx, func(q RowQuerier) error {
		_, err := q.Exec(ctx, `INSERT INTO notes (body) VALUES ('kept')`)
		return err
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	n, _ = Scalar[int64](ctx, db, `SELECT COUNT(*) FROM notes`)
	if n != 1 {
		t.Fatalf("count after commit = %d", n)
	}
}

func TestSQLite_FileAndTracer(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "x.db")
	rec := &recTracer{}

	db, err := OpenSQLite(ctx, path, rec)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.(interface{ Close() error }).Close() }()

	if _, err := db.Exec(ctx, "CREATE TABLE t (x INTEGER)"); err != nil {
		t.Fatal(err)
	}
	var missing int
	_ = db.QueryRow(ctx, "SELECT x FROM t").Scan(&missing)
	_, _ = db.Exec(ctx, "SELECT * FROM nope")

	if len(rec.events) != 3 {
		t.Fatalf("events = %d, want 3", len(rec.events))
	}
	if rec.events[1].Err != nil {
		t.Fatalf("no-rows scan should not be traced as an error: %v", rec.events[1].Err)
	}
	if rec.events[2].Err == nil || rec.events[2].Backend != "sqlite" {
		t.Fatalf("failed query event = %+v", rec.events[2])
	}
	if !IsNoRows(db.QueryRow(ctx, "SELECT x FROM t").Scan(&missing)) {
		t.Fatalf("expected IsNoRows")
	}
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	if _, err := OpenSQLite(context.Background(), "", nil); err == nil {
		t.Fatal("expected error")
	}
}

type recTracer struct{ events []QueryEvent }

func (r *recTracer) OnQuery(_ context.Context, ev QueryEvent) { r.events = append(r.events, ev) }
