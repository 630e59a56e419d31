package codec

import "strings"

// IsLikelyTimestamp reports whether a parameter should open in the date/time
// editor: a uint256 whose name ends in time, timestamp or date. It only
// picks an editor and never changes how values parse.
func IsLikelyTimestamp(tag, name string) bool {
	if tag != "uint256" {
		return false
	}
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, "time") ||
		strings.HasSuffix(lower, "timestamp") ||
		strings.HasSuffix(lower, "date")
}

// IsEnumParam reports whether p is a uint8 carrying an enum internal type.
func IsEnumParam(p Param) bool {
	return p.Type == "uint8" && strings.Contains(p.InternalType, "enum")
}

// EnumName returns the qualified enum name ("Foo.Status") and its short
// name ("Status"). ok is false when p is not an enum parameter.
func EnumName(p Param) (full, short string, ok bool) {
	if !IsEnumParam(p) {
		return "", "", false
	}
	full = strings.Replace(p.InternalType, "enum ", "", 1)
	return full, lastSegment(full), true
}

// IsStructParam reports whether p is a tuple (or tuple array) carrying a
// struct internal type.
func IsStructParam(p Param) bool {
	return (p.Type == "tuple" || p.Type == "tuple[]") &&
		strings.HasPrefix(p.InternalType, "struct ")
}

// StructName returns the short struct name for a struct parameter.
func StructName(p Param) (string, bool) {
	if !IsStructParam(p) {
		return "", false
	}
	name := strings.TrimPrefix(p.InternalType, "struct ")
	name = stripArraySuffix(name)
	return lastSegment(name), true
}

// FixedBytesSize returns N for a bytesN tag.
func FixedBytesSize(tag string) (int, bool) {
	if !strings.HasPrefix(tag, "bytes") {
		return 0, false
	}
	return positive(tag[len("bytes"):])
}

// Options returns the labels for an enum parameter, looked up by qualified
// name first and short name second.
func (m EnumMapping) Options(p Param) []string {
	full, short, ok := EnumName(p)
	if !ok || m == nil {
		return nil
	}
	if opts, ok := m[full]; ok {
		return opts
	}
	return m[short]
}

// Label returns the option label for an enum value, or "" when unknown.
func (m EnumMapping) Label(p Param, value int) string {
	opts := m.Options(p)
	if value < 0 || value >= len(opts) {
		return ""
	}
	return opts[value]
}

func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
