package contract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Address is a contract address as written in config: either one address
// for every chain, or a map from chain id to address.
type Address struct {
	Single  string
	ByChain map[int64]string
}

// SingleAddress returns an Address valid on every chain.
func SingleAddress(addr string) Address { return Address{Single: addr} }

// IsZero reports whether no address is set.
func (a Address) IsZero() bool { return a.Single == "" && len(a.ByChain) == 0 }

// ResolveAddress returns the address of a on chainID. A single address
// resolves on every chain.
func ResolveAddress(a Address, chainID int64) (string, bool) {
	if a.Single != "" {
		return a.Single, true
	}
	addr, ok := a.ByChain[chainID]
	return addr, ok && addr != ""
}

// Any returns the address for chainID when there is one, otherwise the
// address of the lowest chain id. Used where any deployment will do, such
// as fetching a verified ABI.
func (a Address) Any(chainID int64) string {
	if addr, ok := ResolveAddress(a, chainID); ok {
		return addr
	}
	ids := a.chainIDs()
	if len(ids) == 0 {
		return ""
	}
	return a.ByChain[ids[0]]
}

func (a Address) chainIDs() []int64 {
	ids := make([]int64, 0, len(a.ByChain))
	for id := range a.ByChain {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// MarshalJSON writes a string or an object keyed by chain id.
func (a Address) MarshalJSON() ([]byte, error) {
	if a.Single != "" || a.ByChain == nil {
		return json.Marshal(a.Single)
	}
	m := make(map[string]string, len(a.ByChain))
	for id, addr := range a.ByChain {
		m[strconv.FormatInt(id, 10)] = addr
	}
	return json.Marshal(m)
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Address{Single: s}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("address must be a string or a map of chain id to address")
	}
	return a.fromMap(m)
}

func (a *Address) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*a = Address{Single: node.Value}
		return nil
	}
	var m map[string]string
	if err := node.Decode(&m); err != nil {
		return fmt.Errorf("line %d: address must be a string or a map of chain id to address", node.Line)
	}
	return a.fromMap(m)
}

func (a *Address) fromMap(m map[string]string) error {
	out := Address{ByChain: make(map[int64]string, len(m))}
	for k, v := range m {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return fmt.Errorf("address map key %q is not a chain id", k)
		}
		out.ByChain[id] = v
	}
	*a = out
	return nil
}
