package untar

// FileRecord describes one regular file written to completion.
type FileRecord struct {
	Name  string // path as it appeared in the archive
	Path  string // joined destination path actually written
	Size  int64  // bytes written, the entry's declared size
	Sum64 uint64 // xxhash of the written bytes
}

// Files returns the records of the last run, in archive order. Empty
// after any run that did not end Ok.
func (x *Extractor) Files() []FileRecord {
	return x.files
}

// FileCount returns the number of regular files written to completion
// in the last run, zero after any terminal error.
func (x *Extractor) FileCount() int {
	return len(x.files)
}
