// Package untar unpacks a USTAR archive into a directory, the way
// bundled firmware assets get provisioned onto a small flash
// filesystem. It streams the archive forward in 512-byte blocks with
// fixed working memory, understands the GNU long-name extension, and
// skips every entry kind it does not create (links, specials, PAX
// records).
//
//	x := untar.New()
//	if err := x.Extract("/assets.tar", "/www"); err != nil {
//		log.Fatal(x.ErrorMessage())
//	}
//	log.Printf("unpacked %d files", x.FileCount())
package untar

import (
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"

	"github.com/trumpton/untar/internal/flashfs"
	"github.com/trumpton/untar/internal/ustar"
)

// Extractor runs extractions and keeps the observable state of the
// last run. One extraction at a time per Extractor; separate
// Extractors are independent.
type Extractor struct {
	// FS is the backing filesystem. Defaults to the host OS.
	FS flashfs.FS

	// Match restricts extraction to entries whose archive path
	// matches at least one doublestar pattern. Empty means everything.
	// Skipped entries still have their payloads consumed, so the
	// stream stays block-aligned.
	Match []string

	// VerifyChecksums rejects headers whose chksum field does not
	// match the block. Off by default, like the source format's usual
	// readers on this class of device.
	VerifyChecksums bool

	code  Code
	files []FileRecord
}

func New() *Extractor {
	return &Extractor{FS: flashfs.OS()}
}

// Extract unpacks tarfile into destination. The destination directory
// is created if a single mkdir can bring it into being; its parents
// are not. Directory entries must precede the files under them, as
// archive creators normally arrange.
//
// On success Extract returns nil and FileCount/Files describe what was
// written. On failure it returns the terminal Code, the count is
// zeroed, and whatever was already written stays on disk.
func (x *Extractor) Extract(tarfile, destination string) error {
	x.code = Ok
	x.files = nil

	fsys := x.fsys()
	if !fsys.Exists(tarfile) {
		return x.fail(InputFileNotPresent)
	}
	fsys.Mkdir(destination)
	if !fsys.Exists(destination) {
		return x.fail(OutputFolderCreation)
	}

	in, err := fsys.Open(tarfile)
	if err != nil {
		return x.fail(InputFileNotPresent)
	}
	defer in.Close()

	tr := ustar.NewReader(in)
	tr.Strict = x.VerifyChecksums

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return x.fail(codeFor(err))
		}

		if !x.match(hdr.Name) {
			if err := tr.Discard(); err != nil {
				return x.fail(UnexpectedEndOfFile)
			}
			continue
		}

		switch hdr.Typeflag {
		case ustar.TypeDir:
			// Failure shows up when a child entry cannot be created.
			fsys.Mkdir(joinPath(destination, hdr.Name))

		case ustar.TypeReg, ustar.TypeRegA:
			if err := x.writeFile(fsys, tr, hdr, destination); err != nil {
				return err
			}

		default:
			// Links, specials, PAX records: consume, create nothing.
			if err := tr.Discard(); err != nil {
				return x.fail(UnexpectedEndOfFile)
			}
		}
	}
}

// writeFile copies one regular-file payload to the destination,
// hashing as it goes. The output handle never outlives the entry.
func (x *Extractor) writeFile(fsys flashfs.FS, tr *ustar.Reader, hdr *ustar.Header, destination string) error {
	path := joinPath(destination, hdr.Name)
	out, err := fsys.Create(path)
	if err != nil {
		return x.fail(WritingToDisk)
	}

	var sum xxhash.Digest
	sum.Reset()
	for {
		b, err := tr.ReadBlock()
		if err == io.EOF {
			break
		}
		if err != nil {
			out.Close()
			return x.fail(UnexpectedEndOfFile)
		}
		if n, err := out.Write(b); err != nil || n < len(b) {
			out.Close()
			return x.fail(WritingToDisk)
		}
		sum.Write(b)
	}
	if err := out.Close(); err != nil {
		return x.fail(WritingToDisk)
	}

	x.files = append(x.files, FileRecord{
		Name:  hdr.Name,
		Path:  path,
		Size:  hdr.Size,
		Sum64: sum.Sum64(),
	})
	return nil
}

// ErrorCode returns the terminal code of the last run.
func (x *Extractor) ErrorCode() Code {
	return x.code
}

// ErrorMessage returns the display phrase for the last run's code.
func (x *Extractor) ErrorMessage() string {
	return x.code.Error()
}

func (x *Extractor) fsys() flashfs.FS {
	if x.FS != nil {
		return x.FS
	}
	return flashfs.OS()
}

func (x *Extractor) fail(c Code) error {
	x.code = c
	x.files = nil
	return c
}

func (x *Extractor) match(name string) bool {
	if len(x.Match) == 0 {
		return true
	}
	name = strings.TrimSuffix(name, "/") // directory entries end in one
	for _, pattern := range x.Match {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

func codeFor(err error) Code {
	switch err {
	case ustar.ErrFormat, ustar.ErrChecksum:
		return UnexpectedRecordInFile
	default:
		return UnexpectedEndOfFile
	}
}
