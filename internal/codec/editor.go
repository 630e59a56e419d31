package codec

// Editor names the input widget a parameter is edited with.
type Editor string

const (
	EditorBool     Editor = "bool"
	EditorEnum     Editor = "enum"
	EditorAddress  Editor = "address"
	EditorDateTime Editor = "datetime"
	EditorNumber   Editor = "number"
	EditorString   Editor = "string"
	EditorBytes    Editor = "bytes"
	EditorArray    Editor = "array"
	EditorTuple    Editor = "tuple"
	EditorDefault  Editor = "default"
)

// EditorFor picks the default editor for p. Integers whose name looks like
// a timestamp open in the date/time editor; the user may switch back.
func EditorFor(p Param) Editor {
	t := TypeOf(p.Type)
	switch {
	case t.Kind == KindBool:
		return EditorBool
	case IsEnumParam(p):
		return EditorEnum
	case t.Kind == KindAddress:
		return EditorAddress
	case t.IsInteger() && IsLikelyTimestamp(p.Type, p.DisplayName("input")):
		return EditorDateTime
	case t.IsInteger():
		return EditorNumber
	case t.Kind == KindString:
		return EditorString
	case t.Kind == KindBytes || t.Kind == KindFixedBytes:
		return EditorBytes
	case t.IsArray():
		return EditorArray
	case t.Kind == KindTuple:
		return EditorTuple
	}
	return EditorDefault
}

// CanBeDateTime reports whether p may be switched to the date/time editor.
func CanBeDateTime(p Param) bool {
	return TypeOf(p.Type).IsInteger()
}

// Placeholder returns the hint text shown in an empty editor.
func Placeholder(p Param) string {
	switch EditorFor(p) {
	case EditorNumber:
		return "0"
	case EditorAddress, EditorBytes:
		return "0x..."
	case EditorArray:
		return `["value1", "value2"]`
	case EditorTuple:
		return `{"field1": "value1", ...}`
	case EditorDateTime:
		return "YYYY-MM-DD HH:MM"
	case EditorBool:
		return "true | false"
	}
	return ""
}
