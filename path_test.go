package untar

import "testing"

func TestJoinPath(t *testing.T) {
	for _, tc := range []struct {
		dir, name, want string
	}{
		{"/data", "a.bin", "/data/a.bin"},
		{"/data/", "a.bin", "/data/a.bin"},
		{"/", "a.bin", "/a.bin"},
		{"/www", "d/x", "/www/d/x"},
	} {
		if got := joinPath(tc.dir, tc.name); got != tc.want {
			t.Errorf("joinPath(%q, %q) = %q, want %q", tc.dir, tc.name, got, tc.want)
		}
	}
}
