package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeUpstream, http.StatusBadGateway},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorBasics(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render = %q", nilErr.Error())
	}

	cause := stderrs.New("root")
	e := Wrapf(cause, ErrorCodeUpstream, "provider %s", "openai")
	if e.Error() != "provider openai: root" {
		t.Fatalf("Error() = %q", e.Error())
	}
	if stderrs.Unwrap(e) != cause {
		t.Fatalf("Unwrap lost cause")
	}
	if !IsCode(e, ErrorCodeUpstream) || IsCode(nil, ErrorCodeUnknown) {
		t.Fatalf("IsCode mismatch")
	}
	if w := WireFrom(e); w.Message != "provider openai" || w.Code != ErrorCodeUpstream {
		t.Fatalf("WireFrom = %+v", w)
	}
	if w := WireFrom(cause); w.Code != ErrorCodeUnknown || w.Message != "root" {
		t.Fatalf("WireFrom foreign = %+v", w)
	}
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("WireFrom(nil) = %+v", w)
	}
	if st, _ := HTTP(nil); st != http.StatusOK {
		t.Fatalf("HTTP(nil) = %d", st)
	}
	if WrapIf(nil, ErrorCodeDB, "x") != nil || WrapIf(cause, ErrorCodeDB, "x") == nil {
		t.Fatalf("WrapIf mismatch")
	}

	deep := fmt.Errorf("l2: %w", fmt.Errorf("l1: %w", cause))
	if Root(deep) != cause {
		t.Fatalf("Root = %v", Root(deep))
	}
}

func TestWithFieldCopyOnWrite(t *testing.T) {
	base := Validationf("content is required")
	tagged := WithOp(WithField(base, "content"), "polish.process")

	te, _ := As(tagged)
	if te.Field() != "content" || te.Op() != "polish.process" {
		t.Fatalf("tagged = %+v", te)
	}
	be, _ := As(base)
	if be.Field() != "" || be.Op() != "" {
		t.Fatalf("base mutated")
	}
	foreign := stderrs.New("x")
	if WithField(foreign, "f") != foreign {
		t.Fatalf("foreign error should pass through")
	}
}

func TestSugarCodes(t *testing.T) {
	cases := map[ErrorCode]error{
		ErrorCodeNotFound:        NotFoundf("x"),
		ErrorCodeInvalidArgument: InvalidArgf("x"),
		ErrorCodeValidation:      Validationf("x"),
		ErrorCodeJSON:            JSONErrf("x"),
		ErrorCodePanic:           PanicErrf("x"),
		ErrorCodeConflict:        Conflictf("x"),
		ErrorCodeUnavailable:     Unavailablef("x"),
		ErrorCodeUpstream:        Upstreamf("x"),
		ErrorCodeUnknown:         Internalf("x"),
	}
	for want, err := range cases {
		if got := CodeOf(err); got != want {
			t.Fatalf("CodeOf = %v, want %v", got, want)
		}
	}
}

func TestDBErrorCodePostgres(t *testing.T) {
	cases := []struct {
		sqlstate string
		want     ErrorCode
	}{
		{pgUniqueViolation, ErrorCodeDuplicateKey},
		{pgForeignKeyViolation, ErrorCodeInvalidArgument},
		{pgNotNullViolation, ErrorCodeValidation},
		{pgCannotConnectNow, ErrorCodeUnavailable},
		{pgDeadlock, ErrorCodeDB},
	}
	for _, c := range cases {
		err := fmt.Errorf("exec: %w", &pgconn.PgError{Code: c.sqlstate})
		got, ok := DBErrorCode(err)
		if !ok || got != c.want {
			t.Fatalf("DBErrorCode(%s) = %v,%v want %v", c.sqlstate, got, ok, c.want)
		}
	}
	if _, ok := DBErrorCode(stderrs.New("plain")); ok {
		t.Fatalf("plain error classified as db")
	}
	if !IsDuplicateKey(&pgconn.PgError{Code: pgUniqueViolation}) {
		t.Fatalf("IsDuplicateKey false")
	}
}

func TestFromDB(t *testing.T) {
	if FromDB(nil, "x") != nil {
		t.Fatalf("FromDB(nil) != nil")
	}
	if got := CodeOf(FromDB(context.DeadlineExceeded, "slow")); got != ErrorCodeTimeout {
		t.Fatalf("deadline code = %v", got)
	}
	if got := CodeOf(FromDB(&pgconn.PgError{Code: pgUniqueViolation}, "dup")); got != ErrorCodeDuplicateKey {
		t.Fatalf("dup code = %v", got)
	}
	if got := CodeOf(FromDB(stderrs.New("boom"), "x")); got != ErrorCodeDB {
		t.Fatalf("generic code = %v", got)
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{&pgconn.PgError{Code: pgSerialization}, true},
		{&pgconn.PgError{Code: pgUniqueViolation}, false},
		{stderrs.New("database is locked"), true},
		{stderrs.New("commit unexpectedly resulted in rollback"), true},
		{stderrs.New("nope"), false},
	}
	for _, c := range cases {
		if got := IsRetryable(c.err); got != c.want {
			t.Fatalf("IsRetryable(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}
