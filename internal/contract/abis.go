package contract

import (
	"sort"
	"strings"
)

// BuiltinPrefix marks a config ABI reference to a built-in, e.g. "builtin:erc20".
const BuiltinPrefix = "builtin:"

// BuiltinKind describes a standard interface whose ABI is embedded in the
// binary. New built-ins register themselves via init() in their own file.
type BuiltinKind struct {
	ID          string // machine key, e.g. "erc20"
	Name        string // human label, e.g. "ERC-20 Standard Token"
	Description string
	ABI         ABI
}

var builtinRegistry = map[string]BuiltinKind{}

// RegisterBuiltin adds a built-in ABI to the global registry.
// Call this from init() in the file that defines the ABI.
func RegisterBuiltin(b BuiltinKind) {
	builtinRegistry[b.ID] = b
}

// GetBuiltin returns a built-in by ID. ok is false if not found.
func GetBuiltin(id string) (BuiltinKind, bool) {
	b, ok := builtinRegistry[id]
	return b, ok
}

// BuiltinRef returns the built-in ID named by a "builtin:<id>" reference.
func BuiltinRef(ref string) (string, bool) {
	id, ok := strings.CutPrefix(ref, BuiltinPrefix)
	return id, ok && id != ""
}

// AllBuiltins returns all registered built-ins sorted by ID.
func AllBuiltins() []BuiltinKind {
	out := make([]BuiltinKind, 0, len(builtinRegistry))
	for _, b := range builtinRegistry {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
