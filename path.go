package untar

import "strings"

// joinPath glues an archive-relative entry name onto the destination
// directory. It is textual on purpose: no normalization, no ".."
// defense, no rejection of absolute names. Callers extracting archives
// they did not author should screen entry names themselves.
func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}
