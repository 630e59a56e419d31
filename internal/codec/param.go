// Package codec converts between user-editable text and the typed values a
// contract call needs, driven entirely by ABI parameter descriptors.
//
// Parsing is total: every keystroke-level input yields a usable value and
// malformed text degrades to the type's default. Validation is a separate,
// explicit step (see Validate) that editors poll independently.
package codec

import (
	"strconv"
	"strings"
)

// Param is one ABI parameter: the shape of an input or output.
type Param struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	InternalType string  `json:"internalType,omitempty"`
	Components   []Param `json:"components,omitempty"`
	Indexed      bool    `json:"indexed,omitempty"`
}

// EnumMapping maps an enum name to its option labels, indexed by value.
type EnumMapping map[string][]string

// Elem returns the element descriptor of an array parameter: the same
// parameter with one trailing array suffix removed from both tags.
// Non-array parameters are returned unchanged.
func (p Param) Elem() Param {
	elem := p
	elem.Type = stripArraySuffix(p.Type)
	elem.InternalType = stripArraySuffix(p.InternalType)
	return elem
}

// DisplayName returns the parameter name, or fallback when it is unnamed.
func (p Param) DisplayName(fallback string) string {
	if p.Name != "" {
		return p.Name
	}
	return fallback
}

// Key returns the name an input is stored under: its name, or argN.
func (p Param) Key(idx int) string {
	if p.Name != "" {
		return p.Name
	}
	return "arg" + strconv.Itoa(idx)
}

func stripArraySuffix(tag string) string {
	if !strings.HasSuffix(tag, "]") {
		return tag
	}
	open := strings.LastIndexByte(tag, '[')
	if open < 0 {
		return tag
	}
	return tag[:open]
}
