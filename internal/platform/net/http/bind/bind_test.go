package bind

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "textpolish/internal/platform/errors"
	kit "textpolish/internal/platform/testkit"
)

type textIn struct {
	Content string `json:"content" validate:"required,max=10"`
	Style   string `json:"style" validate:"omitempty,oneof=academic formal"`
	Note    string `json:"-" validate:"max=2"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		opts  []JSONOptions
		code  perr.ErrorCode
		field string
		msg   string
	}{
		{name: "ok", body: `{"content":"你好","style":"formal"}`},
		{name: "empty", body: "", code: perr.ErrorCodeJSON, msg: "request body is empty"},
		{name: "empty allowed", body: "", opts: []JSONOptions{{AllowEmptyBody: true}}},
		{name: "malformed", body: `{"content":`, code: perr.ErrorCodeJSON},
		{name: "unknown field", body: `{"content":"a","x":1}`, code: perr.ErrorCodeJSON},
		{name: "unknown allowed", body: `{"content":"a","x":1}`, opts: []JSONOptions{{}}},
		{name: "trailing", body: `{"content":"a"} {"content":"b"}`, code: perr.ErrorCodeJSON, msg: "unexpected data after JSON body"},
		{name: "required", body: `{"content":""}`, code: perr.ErrorCodeValidation, field: "content", msg: "content is a required field"},
		{name: "rune length", body: `{"content":"一二三四五六七八九十"}`},
		{name: "too long", body: `{"content":"一二三四五六七八九十一"}`, code: perr.ErrorCodeValidation, msg: "content must be at most 10"},
		{name: "oneof", body: `{"content":"a","style":"pirate"}`, code: perr.ErrorCodeValidation, field: "style", msg: "style must be one of: academic, formal"},
		{name: "too big", body: `{"content":"abcdefgh"}`, opts: []JSONOptions{{MaxBytes: 8}}, code: perr.ErrorCodeJSON, msg: "request body exceeds 8 bytes"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseJSON[textIn](post(c.body), c.opts...)
			if c.code == 0 && c.msg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			e, ok := perr.As(err)
			if !ok || e.Code() != c.code {
				t.Fatalf("err = %v, want code %v", err, c.code)
			}
			if c.field != "" && e.Field() != c.field {
				t.Fatalf("field = %q, want %q", e.Field(), c.field)
			}
			if c.msg != "" && e.ToWire().Message != c.msg {
				t.Fatalf("message = %q, want %q", e.ToWire().Message, c.msg)
			}
		})
	}
}

func TestParseJSONTrailingSeam(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &moreData, func(*json.Decoder) bool { return true })
	if _, err := ParseJSON[textIn](post(`{"content":"a"}`)); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("expected JSON error, got %v", err)
	}
}

func TestParseJSONSlice(t *testing.T) {
	got, err := ParseJSON[[]textIn](post(`[{"content":"a"},{"content":"b","style":"academic"}]`))
	if err != nil || len(got) != 2 {
		t.Fatalf("got %v, %v", got, err)
	}
	_, err = ParseJSON[[]textIn](post(`[{"content":"a"},{"content":""}]`))
	e, ok := perr.As(err)
	if !ok || e.Field() != "[1].content" {
		t.Fatalf("slice field = %v", err)
	}
}

func TestStructInvalidTarget(t *testing.T) {
	if err := Struct(42); !perr.IsCode(err, perr.ErrorCodeUnknown) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestTagNames(t *testing.T) {
	err := Get().Validator.Struct(textIn{Content: "ok", Note: "long"})
	field, msg := FieldAndMessage(err)
	if field != "Note" || msg != "Note must be at most 2" {
		t.Fatalf("dash tag -> %q %q", field, msg)
	}
	if f, m := FieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil -> %q %q", f, m)
	}
}

func TestRegisterValidation(t *testing.T) {
	if err := RegisterValidation("never", func(FieldLevel) bool { return false }); err != nil {
		t.Fatal(err)
	}
	type s struct {
		V string `json:"v" validate:"never"`
	}
	if err := Struct(s{}); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("custom rule not applied: %v", err)
	}
}
