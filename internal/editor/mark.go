package editor

// Mark is an attribute-bearing annotation attached to a span of inline
// text, rendered as a styled inline element.
type Mark struct {
	Type  string
	Attrs map[string]string
}

// NewMark creates a mark with a copy of the given attributes.
func NewMark(markType string, attrs map[string]string) Mark {
	copied := make(map[string]string, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	return Mark{Type: markType, Attrs: copied}
}

// Attr returns the named attribute or the empty string.
func (m Mark) Attr(name string) string {
	return m.Attrs[name]
}

// Equal reports whether two marks have the same type and attributes.
func (m Mark) Equal(other Mark) bool {
	if m.Type != other.Type || len(m.Attrs) != len(other.Attrs) {
		return false
	}
	for k, v := range m.Attrs {
		if other.Attrs[k] != v {
			return false
		}
	}
	return true
}

// marksEqual reports whether two mark sets are identical in order and value.
func marksEqual(a, b []Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
