package cmd

import (
	"fmt"
	"strings"

	"github.com/Mohsinsiddi/abi-test/internal/contract"
)

// parseInputs maps command-line arguments to fn's input keys. An argument
// "key=value" whose key names an input sets that input; any other argument
// fills the next input not yet set, in declaration order. Inputs left unset
// are empty, which parses to the type's default.
func parseInputs(fn contract.ABIEntry, args []string) (map[string]string, error) {
	keys := make([]string, len(fn.Inputs))
	known := make(map[string]bool, len(fn.Inputs))
	for i, p := range fn.Inputs {
		keys[i] = p.Key(i)
		known[keys[i]] = true
	}

	out := make(map[string]string, len(keys))
	var positional []string
	for _, arg := range args {
		if key, value, ok := strings.Cut(arg, "="); ok && known[key] {
			if _, dup := out[key]; dup {
				return nil, fmt.Errorf("input %s given twice", key)
			}
			out[key] = value
			continue
		}
		positional = append(positional, arg)
	}

	next := 0
	for _, value := range positional {
		for next < len(keys) {
			if _, set := out[keys[next]]; !set {
				break
			}
			next++
		}
		if next == len(keys) {
			return nil, fmt.Errorf("%s takes %d input(s), got extra argument %q", fn.Name, len(keys), value)
		}
		out[keys[next]] = value
		next++
	}
	return out, nil
}
