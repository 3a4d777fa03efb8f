// Package tartest assembles raw USTAR archives block by block, so
// tests can produce the malformed, truncated, and extension-bearing
// streams that no well-behaved writer will emit.
package tartest

import (
	"bytes"
	"fmt"
)

const blockSize = 512

// Archive accumulates 512-byte records.
type Archive struct {
	buf bytes.Buffer
}

func New() *Archive {
	return &Archive{}
}

// Header appends one header record with a correct checksum.
func (a *Archive) Header(name string, size int64, typeflag byte) *Archive {
	var b [blockSize]byte
	copy(b[0:100], name)
	copy(b[100:108], "0000644\x00")
	copy(b[124:136], fmt.Sprintf("%011o\x00", size))
	b[156] = typeflag
	copy(b[257:265], "ustar\x0000")

	var sum int64
	copy(b[148:156], "        ")
	for _, c := range b {
		sum += int64(c)
	}
	copy(b[148:156], fmt.Sprintf("%06o\x00 ", sum))

	a.buf.Write(b[:])
	return a
}

// Payload appends data padded with NULs to a block boundary.
func (a *Archive) Payload(data string) *Archive {
	a.buf.WriteString(data)
	if n := len(data) % blockSize; n != 0 {
		a.buf.Write(make([]byte, blockSize-n))
	}
	return a
}

// File appends a regular-file entry with its contents.
func (a *Archive) File(name, contents string) *Archive {
	return a.Header(name, int64(len(contents)), '0').Payload(contents)
}

// Dir appends a directory entry.
func (a *Archive) Dir(name string) *Archive {
	return a.Header(name, 0, '5')
}

// LongName appends a GNU 'L' record carrying name for the next entry.
func (a *Archive) LongName(name string) *Archive {
	payload := name + "\x00"
	return a.Header("././@LongLink", int64(len(payload)), 'L').Payload(payload)
}

// Trailer appends the canonical two zero blocks.
func (a *Archive) Trailer() *Archive {
	a.buf.Write(make([]byte, 2*blockSize))
	return a
}

// Raw appends bytes untouched, for deliberately broken streams.
func (a *Archive) Raw(b []byte) *Archive {
	a.buf.Write(b)
	return a
}

func (a *Archive) Bytes() []byte {
	return a.buf.Bytes()
}
