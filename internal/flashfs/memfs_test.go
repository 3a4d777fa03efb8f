package flashfs

import (
	"io"
	"testing"
)

func TestMemMkdirSingleLevel(t *testing.T) {
	m := NewMem()
	if err := m.Mkdir("/d"); err != nil {
		t.Fatal(err)
	}
	if !m.Exists("/d") || !m.Exists("/d/") {
		t.Fatal("directory not visible under either spelling")
	}
	if err := m.Mkdir("/d"); err != nil {
		t.Fatalf("re-mkdir of existing dir: %v", err)
	}
	if err := m.Mkdir("/a/b"); err != ErrNoParent {
		t.Fatalf("mkdir without parent: %v", err)
	}
}

func TestMemCreateReadBack(t *testing.T) {
	m := NewMem()
	f, err := m.Create("/x")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("hel")); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("lo")); err != nil {
		t.Fatal(err)
	}
	f.Close()

	r, err := m.Open("/x")
	if err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(r)
	if err != nil || string(got) != "hello" {
		t.Fatalf("read back %q, %v", got, err)
	}
	r.Close()

	// Create truncates
	f, _ = m.Create("/x")
	f.Close()
	if data, _ := m.ReadFile("/x"); len(data) != 0 {
		t.Fatalf("truncate left %q", data)
	}
}

func TestMemCreateNeedsParent(t *testing.T) {
	m := NewMem()
	if _, err := m.Create("/missing/x"); err != ErrNoParent {
		t.Fatalf("got %v", err)
	}
}

func TestMemOpenMissing(t *testing.T) {
	m := NewMem()
	if _, err := m.Open("/nope"); err != ErrNotExist {
		t.Fatalf("got %v", err)
	}
}

func TestMemCapacityShortWrite(t *testing.T) {
	m := NewMem()
	m.Capacity = 4
	f, err := m.Create("/x")
	if err != nil {
		t.Fatal(err)
	}
	n, err := f.Write([]byte("toolong"))
	if n != 4 || err == nil {
		t.Fatalf("wrote %d, err %v", n, err)
	}
}
