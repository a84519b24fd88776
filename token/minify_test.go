package token

import (
	"bytes"
	"testing"
)

func TestMinify(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"", ""},
		{" { \"a\" : [ 1 , 2 ] }\n", `{"a":[1,2]}`},
		{"\"a b\" \t\"c\\\" d\"", `"a b""c\" d"`},
		{"[1, // one\n 2]", `[1,2]`},
		{"[1, /* one, two */ 2]", `[1,2]`},
		{`"http://x/*y*/"`, `"http://x/*y*/"`},
		{"[1] // trailing", `[1]`},
		{"[1] /* open", `[1]`},
		{"1 / 2", `1/2`},
		{`"\\" x`, `"\\"x`},
		{`"unterminated \" x`, `"unterminated \" x`},
		{"\"\xff \" \xfe", "\"\xff \"\xfe"},
	} {
		b := []byte(tc.in)
		got := Minify(b)
		if string(got) != tc.want {
			t.Errorf("Minify(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if len(got) > 0 && &got[0] != &b[0] {
			t.Errorf("Minify(%q) did not work in place", tc.in)
		}
	}
}

func FuzzMinify(f *testing.F) {
	for _, s := range []string{
		`{"a": [1, 2, {"b": null}]}`,
		"[\"x\\\"y\", // c\n true]",
		"/* c */ 1",
		`"é"`,
	} {
		f.Add([]byte(s))
	}
	f.Fuzz(func(t *testing.T, d []byte) {
		orig := bytes.Clone(d)
		got := Minify(d)
		if len(got) > len(orig) {
			t.Fatalf("Minify grew %q to %q", orig, got)
		}
		again := Minify(bytes.Clone(got))
		if !bytes.Equal(again, got) && !bytes.Contains(orig, []byte("/")) && !bytes.Contains(orig, []byte(`"`)) {
			t.Fatalf("Minify not idempotent: %q then %q", got, again)
		}
		// string literals survive untouched
		if s, n, err := ScanString(orig); err == nil {
			if !bytes.HasPrefix(got, orig[:n]) {
				t.Fatalf("Minify(%q) = %q changed the leading string %q", orig, got, s)
			}
		}
	})
}
