// Package config discovers, loads, merges and validates the abi-test config
// and resolves every contract's ABI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Mohsinsiddi/abi-test/internal/chain"
	"github.com/Mohsinsiddi/abi-test/internal/codec"
	"github.com/Mohsinsiddi/abi-test/internal/contract"
)

var (
	// ErrNoConfig is returned when no config file is found.
	ErrNoConfig = errors.New("no config file found")
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid config")
)

// FileNames are the config files Discover looks for, in order.
var FileNames = []string{
	"abi-test.config.json",
	"abi-test.config.yaml",
	"abi-test.config.yml",
	"abi-test.json",
	"abi-test.yaml",
	"abi-test.yml",
}

// Discover returns the path of the first config file found in dir.
func Discover(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s)", ErrNoConfig, dir, strings.Join(FileNames, ", "))
}

// Load reads a JSON or YAML config file. Relative ABI paths in it resolve
// against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	cfg.dir = filepath.Dir(abs)
	return cfg, nil
}

// LoadEnv loads .env from dir into the process environment. Variables that
// are already set win, and a missing file is not an error.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv fills the API key and RPC URL from the environment when the
// config leaves them empty.
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		c.APIKey = firstEnv(EnvAPIKey, EnvEtherscanKey)
	}
	if c.RPCURL == "" {
		c.RPCURL = os.Getenv(EnvRPCURL)
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Overrides are values given on the command line. Zero values leave the
// config untouched; contracts are appended after the file's.
type Overrides struct {
	Contracts        []ContractConfig
	BlockExplorerURL string
	ChainID          int64
	Port             int
	APIURL           string
	APIKey           string
	RPCURL           string
	RPCAlgorithm     string
}

// Merge applies o on top of c. c may be nil when there is no config file.
func Merge(c *Config, o Overrides) *Config {
	out := &Config{}
	if c != nil {
		*out = *c
		out.Contracts = append([]ContractConfig(nil), c.Contracts...)
	}
	if out.dir == "" {
		out.dir, _ = os.Getwd()
	}

	out.Contracts = append(out.Contracts, o.Contracts...)
	setString(&out.BlockExplorerURL, o.BlockExplorerURL)
	setString(&out.APIURL, o.APIURL)
	setString(&out.APIKey, o.APIKey)
	setString(&out.RPCURL, o.RPCURL)
	setString(&out.RPCAlgorithm, o.RPCAlgorithm)
	if o.ChainID != 0 {
		out.ChainID = o.ChainID
	}
	if o.Port != 0 {
		out.Port = o.Port
	}
	return out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// ParseContractFlag parses a "0xaddr:Name" command-line contract.
func ParseContractFlag(s string) (ContractConfig, error) {
	addr, name, ok := strings.Cut(s, ":")
	addr, name = strings.TrimSpace(addr), strings.TrimSpace(name)
	if !ok || addr == "" || name == "" {
		return ContractConfig{}, fmt.Errorf("invalid contract %q: expected 0xaddr:Name", s)
	}
	return ContractConfig{Name: name, Address: contract.SingleAddress(addr)}, nil
}

// ApplyDefaults fills unset values. The explorer defaults to the chain's
// explorer in reg, then to Etherscan.
func (c *Config) ApplyDefaults(reg *chain.Registry) {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.RPCAlgorithm == "" {
		c.RPCAlgorithm = "fastest"
	}
	if c.BlockExplorerURL == "" {
		c.BlockExplorerURL = DefaultExplorer
		if reg != nil {
			if n, err := reg.Network(c.ChainID); err == nil && n.Explorer != "" {
				c.BlockExplorerURL = n.Explorer
			}
		}
	}
}

var validate = validator.New()

// Validate checks the config. Every error wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fieldMessage(fe)
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	for _, cc := range c.Contracts {
		if err := cc.validate(c.ChainID); err != nil {
			return fmt.Errorf("%w: contract %q: %v", ErrInvalidConfig, cc.Name, err)
		}
	}
	return nil
}

func (cc ContractConfig) validate(chainID int64) error {
	if cc.Address.IsZero() {
		return errors.New("address is required")
	}
	if cc.Address.Single != "" && !codec.IsAddress(cc.Address.Single) {
		return fmt.Errorf("invalid address %q", cc.Address.Single)
	}
	for id, addr := range cc.Address.ByChain {
		if !codec.IsAddress(addr) {
			return fmt.Errorf("invalid address %q for chain %d", addr, id)
		}
	}
	if cc.ABI.IsZero() && cc.Address.Any(chainID) == "" {
		return errors.New("has no address and no ABI")
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		if fe.Field() == "Contracts" {
			return "at least one contract is required"
		}
		if fe.Field() == "ChainID" {
			return "chain id is required (set chainId or pass --chain-id)"
		}
		return field + " is required"
	case "min":
		if fe.Field() == "Contracts" {
			return "at least one contract is required"
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "unique":
		return "contract names must be unique"
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}
