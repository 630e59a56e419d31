package server

import (
	"encoding/json"
	"strings"

	"github.com/Mohsinsiddi/abi-test/internal/codec"
	"github.com/Mohsinsiddi/abi-test/internal/config"
	"github.com/Mohsinsiddi/abi-test/internal/contract"
)

// paramView is the editor metadata for one parameter.
type paramView struct {
	Key           string       `json:"key"`
	Name          string       `json:"name"`
	Type          string       `json:"type"`
	DisplayType   string       `json:"displayType"`
	Editor        codec.Editor `json:"editor"`
	Placeholder   string       `json:"placeholder,omitempty"`
	Default       string       `json:"default"`
	CanBeDateTime bool         `json:"canBeDateTime"`
	Options       []string     `json:"options,omitempty"`
	Indexed       bool         `json:"indexed,omitempty"`
	Components    []paramView  `json:"components,omitempty"`
}

type functionView struct {
	Name             string      `json:"name"`
	Signature        string      `json:"signature"`
	DisplaySignature string      `json:"displaySignature"`
	Selector         string      `json:"selector"`
	StateMutability  string      `json:"stateMutability,omitempty"`
	Read             bool        `json:"read"`
	Payable          bool        `json:"payable,omitempty"`
	Overloaded       bool        `json:"overloaded,omitempty"`
	Inputs           []paramView `json:"inputs"`
	Outputs          []paramView `json:"outputs"`
}

type eventView struct {
	Name             string      `json:"name"`
	Signature        string      `json:"signature"`
	DisplaySignature string      `json:"displaySignature"`
	Topic            string      `json:"topic"`
	Inputs           []paramView `json:"inputs"`
}

type functionsResponse struct {
	Contract   string         `json:"contract"`
	Address    string         `json:"address,omitempty"`
	AddressURL string         `json:"addressUrl,omitempty"`
	Read       []functionView `json:"read"`
	Write      []functionView `json:"write"`
	Events     []eventView    `json:"events"`
}

// maxSearchMatches caps a search response.
const maxSearchMatches = 50

type searchMatch struct {
	Contract         string `json:"contract"`
	Kind             string `json:"kind"` // contract, read or write
	Signature        string `json:"signature,omitempty"`
	DisplaySignature string `json:"displaySignature,omitempty"`
	Selector         string `json:"selector,omitempty"`
}

// searchContracts matches query against contract names and the functions of
// every contract, in config order.
func searchContracts(contracts []config.ResolvedContract, query string) []searchMatch {
	out := []searchMatch{}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return out
	}
	for _, c := range contracts {
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, searchMatch{Contract: c.Name, Kind: "contract"})
		}
		for _, fn := range c.ABI.Search(q) {
			kind := "write"
			if fn.IsReadFunction() {
				kind = "read"
			}
			out = append(out, searchMatch{
				Contract:         c.Name,
				Kind:             kind,
				Signature:        contract.Signature(fn),
				DisplaySignature: contract.DisplaySignature(fn),
				Selector:         contract.SelectorHex(fn),
			})
		}
		if len(out) >= maxSearchMatches {
			return out[:maxSearchMatches]
		}
	}
	return out
}

type segmentView struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

type resultView struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Value    json.RawMessage `json:"value"`
	Text     string          `json:"text"`
	Segments []segmentView   `json:"segments"`
}

func paramViews(params []codec.Param, enums codec.EnumMapping) []paramView {
	out := make([]paramView, len(params))
	for i, p := range params {
		out[i] = paramView{
			Key:           p.Key(i),
			Name:          p.DisplayName(p.Key(i)),
			Type:          p.Type,
			DisplayType:   contract.DisplayType(p),
			Editor:        codec.EditorFor(p),
			Placeholder:   codec.Placeholder(p),
			Default:       codec.Format(codec.DefaultFor(p.Type)),
			CanBeDateTime: codec.CanBeDateTime(p),
			Options:       enums.Options(p),
			Indexed:       p.Indexed,
			Components:    componentViews(p, enums),
		}
	}
	return out
}

func componentViews(p codec.Param, enums codec.EnumMapping) []paramView {
	if len(p.Components) == 0 {
		return nil
	}
	return paramViews(p.Components, enums)
}

func newFunctionView(abi contract.ABI, fn contract.ABIEntry, enums codec.EnumMapping) functionView {
	return functionView{
		Name:             fn.Name,
		Signature:        contract.Signature(fn),
		DisplaySignature: contract.DisplaySignature(fn),
		Selector:         contract.SelectorHex(fn),
		StateMutability:  fn.StateMutability,
		Read:             fn.IsReadFunction(),
		Payable:          fn.IsPayable(),
		Overloaded:       abi.Overloaded(fn.Name),
		Inputs:           paramViews(fn.Inputs, enums),
		Outputs:          paramViews(fn.Outputs, enums),
	}
}

func newFunctionsResponse(c config.ResolvedContract, chainID int64, explorer string) functionsResponse {
	resp := functionsResponse{
		Contract: c.Name,
		Read:     []functionView{},
		Write:    []functionView{},
		Events:   []eventView{},
	}
	if addr, ok := contract.ResolveAddress(c.Address, chainID); ok {
		resp.Address = addr
		resp.AddressURL = addressURL(explorer, addr)
	}
	for _, fn := range c.ABI.ReadFunctions() {
		resp.Read = append(resp.Read, newFunctionView(c.ABI, fn, c.Enums))
	}
	for _, fn := range c.ABI.WriteFunctions() {
		resp.Write = append(resp.Write, newFunctionView(c.ABI, fn, c.Enums))
	}
	for _, ev := range c.ABI.Events() {
		resp.Events = append(resp.Events, eventView{
			Name:             ev.Name,
			Signature:        contract.Signature(ev),
			DisplaySignature: contract.DisplaySignature(ev),
			Topic:            contract.EventTopic(ev),
			Inputs:           paramViews(ev.Inputs, c.Enums),
		})
	}
	return resp
}

func newResultViews(results []contract.Result, explorer string) ([]resultView, error) {
	out := make([]resultView, len(results))
	for i, r := range results {
		value, err := codec.EncodeJSON(r.Value)
		if err != nil {
			return nil, err
		}
		segs := codec.SplitAddresses(r.Text)
		views := make([]segmentView, len(segs))
		for j, s := range segs {
			views[j] = segmentView{Text: s.Text}
			if s.Address {
				views[j].URL = addressURL(explorer, s.Text)
			}
		}
		out[i] = resultView{
			Name:     r.Name,
			Type:     r.Type,
			Value:    json.RawMessage(value),
			Text:     r.Text,
			Segments: views,
		}
	}
	return out, nil
}

func addressURL(explorer, addr string) string {
	if explorer == "" {
		return ""
	}
	return strings.TrimRight(explorer, "/") + "/address/" + addr
}
