package cache

// KeyPolicy selects which arguments form a memoization key.
type KeyPolicy int

const (
	// KeyPositional keys on positional arguments only. Calls that differ
	// only in keyword arguments share a cache entry.
	KeyPositional KeyPolicy = iota

	// KeyFullSignature keys on positional and keyword arguments.
	KeyFullSignature
)

func (p KeyPolicy) String() string {
	switch p {
	case KeyFullSignature:
		return "full_signature"
	default:
		return "positional"
	}
}

// IncludesKeywords reports whether keyword arguments contribute to the key.
func (p KeyPolicy) IncludesKeywords() bool {
	return p == KeyFullSignature
}
