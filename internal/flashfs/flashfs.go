// Package flashfs is the narrow filesystem capability set the extractor
// runs against: existence check, single-level mkdir, open for read,
// open for write, bounded read/write, close. It is shaped after the
// little embedded filesystems (LittleFS and friends) that bundled-asset
// archives get unpacked onto, so the extractor ports to them without
// touching the core.
package flashfs

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

type FS interface {
	Exists(path string) bool

	// Mkdir creates a single directory level. Creating a directory
	// that already exists is not an error.
	Mkdir(path string) error

	// Open opens an existing file for reading.
	Open(path string) (File, error)

	// Create opens a file for writing, truncating anything there.
	Create(path string) (File, error)
}

// File reads or writes one open file. Reads may be short at end of
// stream; a short write means the medium rejected the rest.
type File interface {
	io.Reader
	io.Writer
	io.Closer
}

// OS returns the adapter backed by the host filesystem.
func OS() FS { return osFS{} }

type osFS struct{}

func (osFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFS) Mkdir(path string) error {
	err := os.Mkdir(path, 0o777)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	return err
}

func (osFS) Open(path string) (File, error) {
	return os.Open(path)
}

func (osFS) Create(path string) (File, error) {
	return os.Create(path)
}
