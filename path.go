package goenum

import "strings"

// RootPath is how Path renders the top level.
const RootPath = "(root)"

// Path is the chain of keys leading from the root to an entry.
type Path []string

// Child returns a new Path extended by key. The receiver is never modified,
// so sibling paths never share a backing array.
func (p Path) Child(key string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, key)
}

// String renders the dotted form (API.V1.USERS), or RootPath when empty.
func (p Path) String() string {
	if len(p) == 0 {
		return RootPath
	}
	return strings.Join(p, ".")
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders the path as an RFC 6901 JSON Pointer ("/" for the root).
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, part := range p {
		b.WriteByte('/')
		b.WriteString(jsonPointerEscaper.Replace(part))
	}
	return b.String()
}

// ParsePath splits a dotted path. Keys that themselves contain dots must be
// addressed with Node.Walk/Lookup instead.
func ParsePath(s string) Path {
	if s == "" || s == RootPath {
		return nil
	}
	return Path(strings.Split(s, "."))
}
