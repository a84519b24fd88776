package encode

type EncodeOption func(*EncState)

// Formatted selects the indented layout.
func Formatted(v bool) EncodeOption {
	return func(es *EncState) { es.formatted = v }
}

// Indent sets the per level indentation of the formatted layout, a tab by
// default.
func Indent(s string) EncodeOption {
	return func(es *EncState) { es.indent = s }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
