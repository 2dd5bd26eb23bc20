package textclean

import "testing"

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "人工智能技术在学术写作中的应用越来越广泛。", "人工智能技术在学术写作中的应用越来越广泛。"},
		{"invalid utf8", "ab\xffc", "abc"},
		{"controls", "a\x00b\x07c\x7fd", "abcd"},
		{"keeps tab", "a\tb", "a\tb"},
		{"crlf", "line1\r\nline2\rline3", "line1\nline2\nline3"},
		{"zero width and bom", "\ufeffze\u200bro\u200dwidth", "zerowidth"},
		{"nfc", "e\u0301", "\u00e9"},
		{"keeps fullwidth", "ＡＢＣ１２３", "ＡＢＣ１２３"},
		{"blank runs", "p1\n\n\n\np2", "p1\n\np2"},
		{"trailing spaces", "p1   \n  p2  ", "p1\n  p2"},
		{"only whitespace", " \n\t \u200b ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in); got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	in := "\ufeff  首先，\r\n\r\n\r\n其次e\u0301  \x00"
	once := Clean(in)
	if twice := Clean(once); twice != once {
		t.Fatalf("not idempotent: %q vs %q", once, twice)
	}
}
