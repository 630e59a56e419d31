package ui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Mohsinsiddi/abi-test/internal/contract"
)

// RenderResults renders decoded call results in a bordered block. Unnamed
// outputs are labelled by position; addresses are highlighted.
func RenderResults(title string, results []contract.Result) string {
	if len(results) == 0 {
		return KeyValueBlock(title, [][2]string{{"result", Meta("(no outputs)")}})
	}
	pairs := make([][2]string, len(results))
	for i, r := range results {
		label := r.Name
		if label == "" {
			label = "[" + strconv.Itoa(i) + "]"
		}
		pairs[i] = [2]string{label + " " + r.Type, indentContinuation(HighlightAddresses(r.Text))}
	}
	return KeyValueBlock(title, pairs)
}

// RenderError renders a call error. Reverts show the decoded reason and the
// raw revert data on separate lines.
func RenderError(err error) string {
	var revert *contract.RevertError
	if !errors.As(err, &revert) {
		return Err(err.Error())
	}
	var sb strings.Builder
	sb.WriteString(Err("execution reverted"))
	if revert.Reason != "" {
		sb.WriteString("\n  " + Meta("reason:") + " " + StyleWarning.Render(HighlightAddresses(revert.Reason)))
	}
	if revert.Data != "" && revert.Data != "0x" {
		sb.WriteString("\n  " + Meta("data:  ") + " " + Meta(revert.Data))
	}
	return sb.String()
}

// indentContinuation keeps multi-line values (records, arrays) aligned
// under the first line inside a KeyValueBlock.
func indentContinuation(s string) string {
	return strings.ReplaceAll(s, "\n", "\n    ")
}
