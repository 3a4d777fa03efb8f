package flashfs

import (
	"errors"
	"io"
	"strings"
	"sync"
)

var (
	ErrNotExist   = errors.New("flashfs: no such file or directory")
	ErrIsDir      = errors.New("flashfs: is a directory")
	ErrNoParent   = errors.New("flashfs: parent directory does not exist")
	errMediumFull = errors.New("flashfs: medium full")
	errBadHandle  = errors.New("flashfs: handle not open for that direction")
)

// Mem is an in-memory FS with the semantics of a small flash
// filesystem: paths are absolute, mkdir creates exactly one level and
// wants its parent present, writes are append-only through an open
// handle. The zero Capacity means unlimited; otherwise writes past the
// budget come up short, the way a full flash partition fails.
type Mem struct {
	// Capacity limits the total bytes writable across all files.
	Capacity int64

	mu      sync.Mutex
	dirs    map[string]bool
	files   map[string][]byte
	written int64
}

func NewMem() *Mem {
	return &Mem{
		dirs:  map[string]bool{"/": true},
		files: map[string][]byte{},
	}
}

// canon strips the trailing slash so "/d/" and "/d" name one directory.
func canon(path string) string {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		path = "/"
	}
	return path
}

func parent(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i <= 0 {
		return "/"
	}
	return path[:i]
}

func (m *Mem) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = canon(path)
	if m.dirs[path] {
		return true
	}
	_, ok := m.files[path]
	return ok
}

func (m *Mem) Mkdir(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = canon(path)
	if m.dirs[path] {
		return nil
	}
	if !m.dirs[parent(path)] {
		return ErrNoParent
	}
	m.dirs[path] = true
	return nil
}

func (m *Mem) Open(path string) (File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = canon(path)
	if m.dirs[path] {
		return nil, ErrIsDir
	}
	data, ok := m.files[path]
	if !ok {
		return nil, ErrNotExist
	}
	return &memReader{data: data}, nil
}

func (m *Mem) Create(path string) (File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = canon(path)
	if m.dirs[path] {
		return nil, ErrIsDir
	}
	if !m.dirs[parent(path)] {
		return nil, ErrNoParent
	}
	m.files[path] = nil
	return &memWriter{fs: m, path: path}, nil
}

// ReadFile returns a copy of a file's contents, for tests.
func (m *Mem) ReadFile(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[canon(path)]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// Paths returns every file path currently stored, for tests.
func (m *Mem) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for p := range m.files {
		out = append(out, p)
	}
	return out
}

type memReader struct {
	data []byte
	off  int
}

func (r *memReader) Read(p []byte) (int, error) {
	if r.off >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.off:])
	r.off += n
	return n, nil
}

func (r *memReader) Write([]byte) (int, error) { return 0, errBadHandle }
func (r *memReader) Close() error              { return nil }

type memWriter struct {
	fs   *Mem
	path string
}

func (w *memWriter) Write(p []byte) (int, error) {
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()
	n := len(p)
	if w.fs.Capacity > 0 {
		if room := w.fs.Capacity - w.fs.written; int64(n) > room {
			n = int(max(room, 0))
		}
	}
	w.fs.files[w.path] = append(w.fs.files[w.path], p[:n]...)
	w.fs.written += int64(n)
	if n < len(p) {
		return n, errMediumFull
	}
	return n, nil
}

func (w *memWriter) Read([]byte) (int, error) { return 0, errBadHandle }
func (w *memWriter) Close() error             { return nil }
