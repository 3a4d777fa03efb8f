package untar

import (
	"io"

	"github.com/trumpton/untar/internal/ustar"
)

// Entry is one archive record as List reports it. Long-name records
// are folded into the entry they name and never appear themselves.
type Entry struct {
	Name     string
	Size     int64
	Typeflag byte // '0' or NUL file, '5' directory, anything else skipped-on-extract
}

// List walks the archive without touching the destination filesystem,
// honoring Match the same way Extract does. It reads the same dialect:
// a first record without ustar magic is UnexpectedRecordInFile, any
// later one ends the listing. The last run's Extract state is left
// alone.
func (x *Extractor) List(tarfile string) ([]Entry, error) {
	fsys := x.fsys()
	if !fsys.Exists(tarfile) {
		return nil, InputFileNotPresent
	}
	in, err := fsys.Open(tarfile)
	if err != nil {
		return nil, InputFileNotPresent
	}
	defer in.Close()

	tr := ustar.NewReader(in)
	tr.Strict = x.VerifyChecksums

	var entries []Entry
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, codeFor(err)
		}
		if x.match(hdr.Name) {
			entries = append(entries, Entry{
				Name:     hdr.Name,
				Size:     hdr.Size,
				Typeflag: hdr.Typeflag,
			})
		}
		if err := tr.Discard(); err != nil {
			return nil, UnexpectedEndOfFile
		}
	}
}
