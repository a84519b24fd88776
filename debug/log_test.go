package debug

import (
	"bytes"
	"testing"

	"github.com/signadot/jtree/ir"
)

func TestLogf(t *testing.T) {
	var buf bytes.Buffer
	old := out
	out = &buf
	defer func() { out = old }()

	n := ir.NewIntArray([]int{1, 2})
	defer ir.Delete(n)
	Logf("node %v map %v stats %v bad %v\n",
		n,
		map[string]any{"k": []any{true}},
		ir.TrackerStats{LiveNodes: 1},
		&ir.Node{})
	want := `node [1,2] map {"k":[true]} stats {"LiveNodes":1,"LiveTexts":0,"LiveBytes":0,"Allocs":0,"Frees":0,"Failed":0} bad [Invalid node: encoding error: invalid node at $]` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestBoolEnv(t *testing.T) {
	for _, tc := range []struct {
		v    string
		want bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"no", false},
		{"0", false},
	} {
		t.Setenv("JT_DEBUG_TEST", tc.v)
		if got := boolEnv("JT_DEBUG_TEST"); got != tc.want {
			t.Errorf("boolEnv(%q) = %t", tc.v, got)
		}
	}
}
