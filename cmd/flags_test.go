package cmd

import "testing"

func TestNormalizeArgsRewritesTolerantSpellings(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"-f", "--file"},
		{"--f", "--file"},
		{"-file", "--file"},
		{"--file", "--file"},
		{"-w", "--width"},
		{"-width=800", "--width=800"},
		{"-h", "--height"},
		{"--fast", "--fast"},   // not a file/width/height alias, left alone
		{"--workers", "--workers"},
		{"frame.txt", "frame.txt"}, // no leading dash, not touched
	}
	for _, c := range cases {
		got := normalizeArg(c.in)
		if got != c.want {
			t.Errorf("normalizeArg(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeArgsPreservesOrderAndLength(t *testing.T) {
	in := []string{"pathtrace", "render", "frame", "-f", "scene.txt", "--width=64"}
	out := NormalizeArgs(in)
	if len(out) != len(in) {
		t.Fatalf("len(out) = %d; want %d", len(out), len(in))
	}
	want := []string{"pathtrace", "render", "frame", "--file", "scene.txt", "--width=64"}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %q; want %q", i, out[i], want[i])
		}
	}
}
