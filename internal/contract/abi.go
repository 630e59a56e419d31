package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Mohsinsiddi/abi-test/internal/codec"
)

var (
	// ErrFunctionNotFound is returned when an ABI has no function by a name.
	ErrFunctionNotFound = errors.New("function not found in ABI")
	// ErrNotReadFunction is returned when a read call targets a state-changing function.
	ErrNotReadFunction = errors.New("not a read function")
)

// ABIEntry is one ABI entry (function, event, constructor, error, ...).
type ABIEntry struct {
	Name            string        `json:"name,omitempty"`
	Type            string        `json:"type"`
	Inputs          []codec.Param `json:"inputs"`
	Outputs         []codec.Param `json:"outputs,omitempty"`
	StateMutability string        `json:"stateMutability,omitempty"`
	Anonymous       bool          `json:"anonymous,omitempty"`
}

// UnmarshalJSON accepts pre-0.5 ABIs, which carry constant/payable flags
// instead of stateMutability, and entries without a type (functions).
func (e *ABIEntry) UnmarshalJSON(data []byte) error {
	type plain ABIEntry
	var raw struct {
		plain
		Constant *bool `json:"constant"`
		Payable  *bool `json:"payable"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = ABIEntry(raw.plain)
	if e.Type == "" {
		e.Type = "function"
	}
	if e.StateMutability == "" && (e.Type == "function" || e.Type == "constructor" || e.Type == "fallback") {
		switch {
		case raw.Constant != nil && *raw.Constant:
			e.StateMutability = "view"
		case raw.Payable != nil && *raw.Payable:
			e.StateMutability = "payable"
		default:
			e.StateMutability = "nonpayable"
		}
	}
	return nil
}

// IsFunction reports whether the entry is a callable function.
func (e ABIEntry) IsFunction() bool { return e.Type == "function" }

// IsEvent reports whether the entry is an event.
func (e ABIEntry) IsEvent() bool { return e.Type == "event" }

// IsReadFunction returns true if the function is read-only (view/pure).
func (e ABIEntry) IsReadFunction() bool {
	return e.Type == "function" &&
		(e.StateMutability == "view" || e.StateMutability == "pure")
}

// IsWriteFunction returns true if the function modifies state.
func (e ABIEntry) IsWriteFunction() bool {
	return e.Type == "function" &&
		(e.StateMutability == "nonpayable" || e.StateMutability == "payable")
}

// IsPayable reports whether the function accepts value.
func (e ABIEntry) IsPayable() bool { return e.StateMutability == "payable" }

// ABI is a parsed contract ABI.
type ABI []ABIEntry

// Functions returns all function entries in declaration order.
func (a ABI) Functions() []ABIEntry { return a.filter(ABIEntry.IsFunction) }

// ReadFunctions returns the view and pure functions.
func (a ABI) ReadFunctions() []ABIEntry { return a.filter(ABIEntry.IsReadFunction) }

// WriteFunctions returns the state-changing functions.
func (a ABI) WriteFunctions() []ABIEntry { return a.filter(ABIEntry.IsWriteFunction) }

// Events returns the event entries.
func (a ABI) Events() []ABIEntry { return a.filter(ABIEntry.IsEvent) }

func (a ABI) filter(keep func(ABIEntry) bool) []ABIEntry {
	var out []ABIEntry
	for _, e := range a {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Function finds a function by name, by canonical signature such as
// "transfer(address,uint256)", or by 0x selector. A bare name matching
// several overloads resolves to the first one declared.
func (a ABI) Function(key string) (ABIEntry, error) {
	key = strings.TrimSpace(key)
	for _, e := range a.Functions() {
		switch {
		case strings.Contains(key, "("):
			if Signature(e) == strings.ReplaceAll(key, " ", "") {
				return e, nil
			}
		case strings.HasPrefix(key, "0x"):
			if strings.EqualFold(SelectorHex(e), key) {
				return e, nil
			}
		case e.Name == key:
			return e, nil
		}
	}
	return ABIEntry{}, fmt.Errorf("%w: %q", ErrFunctionNotFound, key)
}

// Matches reports whether query occurs in e's name, signature, display
// signature or selector, ignoring case. An empty query matches everything.
func (e ABIEntry) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, s := range []string{e.Name, Signature(e), DisplaySignature(e), SelectorHex(e)} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// Search returns the functions matching query in declaration order.
func (a ABI) Search(query string) []ABIEntry {
	return a.filter(func(e ABIEntry) bool { return e.IsFunction() && e.Matches(query) })
}

// Overloaded reports whether more than one function is called name.
func (a ABI) Overloaded(name string) bool {
	n := 0
	for _, e := range a.Functions() {
		if e.Name == name {
			n++
		}
	}
	return n > 1
}
