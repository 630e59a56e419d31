package codec

import "regexp"

var addressPattern = regexp.MustCompile(`0x[a-fA-F0-9]{40}`)

// Segment is a run of formatted text, flagged when it is an address.
type Segment struct {
	Text    string
	Address bool
}

// SplitAddresses cuts formatted text into plain runs and address runs.
// Joining the segment texts reproduces s exactly.
func SplitAddresses(s string) []Segment {
	var out []Segment
	last := 0
	for _, loc := range addressPattern.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			out = append(out, Segment{Text: s[last:loc[0]]})
		}
		out = append(out, Segment{Text: s[loc[0]:loc[1]], Address: true})
		last = loc[1]
	}
	if last < len(s) {
		out = append(out, Segment{Text: s[last:]})
	}
	return out
}

// WrapAddresses returns s with every address replaced by wrap(address).
func WrapAddresses(s string, wrap func(string) string) string {
	return addressPattern.ReplaceAllStringFunc(s, wrap)
}
