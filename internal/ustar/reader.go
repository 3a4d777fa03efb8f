package ustar

import (
	"io"
)

// Reader streams headers and payloads out of an archive. The source is
// only ever read forward, one 512-byte block at a time, so the stream
// position stays block-aligned between headers regardless of entry
// sizes. Working memory is the two block buffers plus whatever long
// name the archive itself declares.
type Reader struct {
	// Strict additionally verifies each header's checksum field.
	Strict bool

	src       io.Reader
	hdr       block
	buf       block
	remaining int64  // payload bytes not yet surfaced by ReadBlock
	longName  string // pending 'L' name for the next header
	started   bool
}

func NewReader(r io.Reader) *Reader {
	return &Reader{src: r}
}

// Next returns the next entry header, with any pending GNU long name
// already substituted for the name field. 'L' records are consumed
// internally; a second consecutive 'L' overwrites the first.
//
// io.EOF means the archive ended cleanly: either the source is
// exhausted on a block boundary or a record without ustar magic was
// reached (which is how the canonical zero-block trailer presents).
// A first record without the magic is ErrFormat instead. Truncation
// anywhere is io.ErrUnexpectedEOF.
func (tr *Reader) Next() (*Header, error) {
	// Unconsumed payload from the previous entry would misalign the
	// stream, so the caller must drain it first.
	if err := tr.Discard(); err != nil {
		return nil, err
	}

	for {
		// EOF exactly on a block boundary is a clean end, even for a
		// zero-byte archive. A partial header is truncation.
		if err := tr.readBlock(&tr.hdr); err != nil {
			return nil, err
		}

		if !tr.hdr.isUSTAR() {
			if !tr.started {
				return nil, ErrFormat
			}
			return nil, io.EOF
		}
		tr.started = true

		if tr.Strict && !tr.hdr.verifyChecksum() {
			return nil, ErrChecksum
		}

		size := parseOctal(tr.hdr.size())

		if tr.hdr.typeflag() == typeGNULongName {
			name, err := tr.readLongName(size)
			if err != nil {
				return nil, err
			}
			tr.longName = name
			continue
		}

		hdr := &Header{
			Name:     parseString(tr.hdr.name()),
			Size:     size,
			Typeflag: tr.hdr.typeflag(),
		}
		if tr.longName != "" {
			hdr.Name = tr.longName
			tr.longName = ""
		}

		// Directories carry no payload in this dialect; everything
		// else owns ceil(size/512) blocks that the caller must read
		// or discard.
		if hdr.Typeflag == TypeDir {
			tr.remaining = 0
		} else {
			tr.remaining = size
		}
		return hdr, nil
	}
}

// ReadBlock consumes one full 512-byte payload block and returns the
// min(512, remaining) bytes of it that belong to the entry; the
// remainder is padding. io.EOF after the payload is exhausted. The
// returned slice is only valid until the next call on the Reader.
func (tr *Reader) ReadBlock() ([]byte, error) {
	if tr.remaining <= 0 {
		return nil, io.EOF
	}
	if err := tr.readBlock(&tr.buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	n := tr.remaining
	if n > BlockSize {
		n = BlockSize
	}
	tr.remaining -= BlockSize
	return tr.buf[:n], nil
}

// Discard drains the current entry's remaining payload blocks.
func (tr *Reader) Discard() error {
	for {
		_, err := tr.ReadBlock()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// readLongName collects the NUL-terminated payload of an 'L' record.
// This is the one allocation whose size the archive controls.
func (tr *Reader) readLongName(size int64) (string, error) {
	name := make([]byte, 0, size)
	for remaining := size; remaining > 0; remaining -= BlockSize {
		if err := tr.readBlock(&tr.buf); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return "", err
		}
		n := remaining
		if n > BlockSize {
			n = BlockSize
		}
		name = append(name, tr.buf[:n]...)
	}
	return parseString(name), nil
}

// readBlock fills b from the source. io.EOF only when no bytes were
// read; a partial block is io.ErrUnexpectedEOF.
func (tr *Reader) readBlock(b *block) error {
	_, err := io.ReadFull(tr.src, b[:])
	return err
}
