package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Mohsinsiddi/abi-test/internal/codec"
	"github.com/Mohsinsiddi/abi-test/internal/contract"
)

// Config is the abi-test config file.
type Config struct {
	Contracts        []ContractConfig `json:"contracts"                  yaml:"contracts"        validate:"required,min=1,unique=Name,dive"`
	BlockExplorerURL string           `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl" validate:"omitempty,url"`
	RPCURL           string           `json:"rpcUrl,omitempty"           yaml:"rpcUrl"           validate:"omitempty,url"`
	ChainID          int64            `json:"chainId,omitempty"          yaml:"chainId"          validate:"required,gt=0"`
	APIURL           string           `json:"apiUrl,omitempty"           yaml:"apiUrl"           validate:"omitempty,url"`
	APIKey           string           `json:"apiKey,omitempty"           yaml:"apiKey"`
	Port             int              `json:"port,omitempty"             yaml:"port"             validate:"omitempty,min=1,max=65535"`
	RPCAlgorithm     string           `json:"rpcAlgorithm,omitempty"     yaml:"rpcAlgorithm"     validate:"omitempty,oneof=fastest round-robin failover"`

	// internal: directory relative ABI paths resolve against
	dir string
}

// Dir returns the directory the config was loaded from.
func (c *Config) Dir() string { return c.dir }

// ContractConfig is one contract entry.
type ContractConfig struct {
	Name    string            `json:"name"            yaml:"name"    validate:"required"`
	ABI     ABISource         `json:"abi,omitempty"   yaml:"abi"`
	Address contract.Address  `json:"address"         yaml:"address"`
	Enums   codec.EnumMapping `json:"enums,omitempty" yaml:"enums"`
}

// ABISource is where a contract's ABI comes from: an inline array, a path
// relative to the config file, a "builtin:<id>" reference, or nothing, in
// which case it is fetched from the block explorer.
type ABISource struct {
	Inline contract.ABI
	Path   string
}

// IsZero reports whether no ABI was given.
func (s ABISource) IsZero() bool { return s.Inline == nil && s.Path == "" }

func (s ABISource) MarshalJSON() ([]byte, error) {
	if s.Inline != nil {
		return json.Marshal(s.Inline)
	}
	return json.Marshal(s.Path)
}

func (s *ABISource) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err == nil {
		*s = ABISource{Path: path}
		return nil
	}
	abi, err := contract.ParseABI(data)
	if err != nil {
		return fmt.Errorf("abi must be an array or a file path: %w", err)
	}
	*s = ABISource{Inline: abi}
	return nil
}

func (s *ABISource) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = ABISource{Path: node.Value}
		return nil
	}
	// ABI entries only carry JSON tags, so go through JSON.
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	abi, err := contract.ParseABI(data)
	if err != nil {
		return fmt.Errorf("line %d: abi must be a list or a file path: %w", node.Line, err)
	}
	*s = ABISource{Inline: abi}
	return nil
}

// Resolved is the runtime config: every ABI loaded. Its JSON form is what
// the dashboard page receives.
type Resolved struct {
	Contracts        []ResolvedContract `json:"contracts"`
	BlockExplorerURL string             `json:"blockExplorerUrl,omitempty"`
	RPCURL           string             `json:"rpcUrl"`
	ChainID          int64              `json:"chainId"`
}

// ResolvedContract is a contract with its ABI loaded.
type ResolvedContract struct {
	Name    string            `json:"name"`
	ABI     contract.ABI      `json:"abi"`
	Address contract.Address  `json:"address"`
	Enums   codec.EnumMapping `json:"enums,omitempty"`
}

// Contract returns the resolved contract called name.
func (r *Resolved) Contract(name string) (ResolvedContract, bool) {
	for _, c := range r.Contracts {
		if c.Name == name {
			return c, true
		}
	}
	return ResolvedContract{}, false
}
