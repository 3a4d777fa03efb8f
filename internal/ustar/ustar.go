// Package ustar reads the dialect of USTAR understood by this module:
// 512-byte records, typeflags '0'/NUL/'5'/'L', ASCII octal sizes.
// Everything else in a well-formed archive is tolerated and skipped.
package ustar

import (
	"bytes"
	"errors"
)

const BlockSize = 512

// Type flags interpreted by the reader. Any other value is surfaced to
// the caller as an entry whose payload should be discarded.
const (
	TypeReg         = '0'
	TypeRegA        = '\x00' // pre-POSIX regular file
	TypeDir         = '5'
	typeGNULongName = 'L' // consumed internally, never surfaced
)

var (
	ErrFormat   = errors.New("ustar: record without ustar magic")
	ErrChecksum = errors.New("ustar: header checksum mismatch")
)

var magic = []byte("ustar")

// Header is the part of a record the extractor acts on. Name already has
// any pending GNU long name applied.
type Header struct {
	Name     string
	Size     int64
	Typeflag byte
}

type block [BlockSize]byte

// Field accessors into the fixed USTAR layout. Offsets per the format:
// name[100] mode[8] uid[8] gid[8] size[12] mtime[12] chksum[8]
// typeflag[1] linkname[100] magic[6] version[2] uname[32] gname[32]
// devmajor[8] devminor[8] prefix[155].
func (b *block) name() []byte   { return b[0:100] }
func (b *block) size() []byte   { return b[124:136] }
func (b *block) chksum() []byte { return b[148:156] }
func (b *block) typeflag() byte { return b[156] }
func (b *block) magic() []byte  { return b[257:263] }
func (b *block) prefix() []byte { return b[345:500] }

// isUSTAR reports whether the magic field starts with "ustar". The
// trailing byte (NUL for POSIX, space for old GNU) is not inspected.
func (b *block) isUSTAR() bool {
	return bytes.HasPrefix(b.magic(), magic)
}

// checksum computes the header checksum both ways it appears in the
// wild: a sum of unsigned bytes and a sum of signed bytes, with the
// chksum field itself counted as eight spaces.
func (b *block) checksum() (unsigned, signed int64) {
	for i, c := range b {
		if 148 <= i && i < 156 {
			c = ' '
		}
		unsigned += int64(c)
		signed += int64(int8(c))
	}
	return unsigned, signed
}

func (b *block) verifyChecksum() bool {
	want := parseOctal(b.chksum())
	unsigned, signed := b.checksum()
	return want == unsigned || want == signed
}

// parseString returns the bytes up to the first NUL as a string.
func parseString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// parseOctal follows strtol(s, NULL, 8): skip leading blanks, consume
// octal digits, stop at the first other byte. A field with no leading
// digits parses as zero rather than an error.
func parseOctal(b []byte) int64 {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == '\t') {
		i++
	}
	var n int64
	for ; i < len(b); i++ {
		c := b[i]
		if c < '0' || c > '7' {
			break
		}
		n = n<<3 | int64(c-'0')
	}
	return n
}
