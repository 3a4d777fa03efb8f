package untar

// Code is the terminal result of an extraction. Every run ends in
// exactly one of these; anything other than Ok also zeroes the file
// count so a failed run cannot pass for a partial success.
type Code int

const (
	Ok Code = iota

	// InputFileNotPresent: the archive path did not resolve to an
	// existing file.
	InputFileNotPresent

	// OutputFolderCreation: the destination directory could not be
	// created and did not already exist.
	OutputFolderCreation

	// UnexpectedEndOfFile: a header, long-name payload, or file
	// payload could not be fully read.
	UnexpectedEndOfFile

	// UnexpectedRecordInFile: the first record lacked the ustar magic
	// (or, under VerifyChecksums, a header failed its checksum).
	UnexpectedRecordInFile

	// WritingToDisk: an output write came up short.
	WritingToDisk
)

// Error makes a Code usable as the error returned by Extract. The
// phrases are fixed display strings.
func (c Code) Error() string {
	switch c {
	case Ok:
		return "OK"
	case InputFileNotPresent:
		return "Unable to access input tarfile"
	case OutputFolderCreation:
		return "Unable to create output destination folder"
	case UnexpectedEndOfFile:
		return "Unexpected End of File"
	case UnexpectedRecordInFile:
		return "Unexpected record in file - is this a tar file?"
	case WritingToDisk:
		return "Error saving to disk"
	}
	return "Unknown error"
}
