package ir

// text is the payload of string and raw nodes and of object keys. It is
// either owned, in which case the buffer came from an Allocator and goes back
// to it on delete, or borrowed from the caller and never freed.
type text interface {
	String() string
	Len() int
	Borrowed() bool
	free(a Allocator)
}

type ownedText []byte

func (t ownedText) String() string   { return string(t) }
func (t ownedText) Len() int         { return len(t) }
func (t ownedText) Borrowed() bool   { return false }
func (t ownedText) free(a Allocator) { a.FreeText(t) }

type borrowedText string

func (t borrowedText) String() string { return string(t) }
func (t borrowedText) Len() int       { return len(t) }
func (t borrowedText) Borrowed() bool { return true }
func (borrowedText) free(Allocator)   {}

func ownText(a Allocator, s string) (ownedText, error) {
	b, err := a.AllocText(len(s))
	if err != nil {
		return nil, err
	}
	copy(b, s)
	return ownedText(b), nil
}

func textString(t text) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func freeText(t text, a Allocator) {
	if t != nil {
		t.free(a)
	}
}
