package secrets

import "strings"

// Separator terminates directory paths.
const Separator = "/"

// Path is a slash-separated location in the secret tree. A trailing
// separator marks a directory; anything else is a leaf.
type Path string

// IsDir reports whether p names a directory.
func (p Path) IsDir() bool {
	return strings.HasSuffix(string(p), Separator)
}

// Child joins a name returned by a listing of p. p must be a directory.
func (p Path) Child(name string) Path {
	return p + Path(name)
}

func (p Path) String() string {
	return string(p)
}
