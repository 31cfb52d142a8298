package cache

// Interner is the part of StringTable a tokenizer needs. It lets lexers be
// written against an interface and tested with a stub.
type Interner interface {
	// Intern returns a string equal to b, reusing a cached one if possible.
	Intern(b []byte) string

	// InternString returns a string equal to s, reusing a cached one if possible.
	InternString(s string) string

	// InternRune returns the one-character string for r.
	InternRune(r rune) string
}
