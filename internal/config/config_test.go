package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/abi-test/internal/chain"
	"github.com/Mohsinsiddi/abi-test/internal/config"
	"github.com/Mohsinsiddi/abi-test/internal/contract"
)

const (
	usdc    = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	dead    = "0x000000000000000000000000000000000000dEaD"
	viewABI = `[{"name":"owner","type":"function","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"}]`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDiscoverOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "abi-test.yaml", "chainId: 1\n")
	writeFile(t, dir, "abi-test.config.yml", "chainId: 1\n")

	path, err := config.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "abi-test.config.yml"), path)

	writeFile(t, dir, "abi-test.config.json", "{}")
	path, err = config.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "abi-test.config.json"), path)
}

func TestDiscoverNone(t *testing.T) {
	_, err := config.Discover(t.TempDir())
	assert.ErrorIs(t, err, config.ErrNoConfig)
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "abi-test.config.json", `{
		"chainId": 8453,
		"rpcUrl": "https://mainnet.base.org",
		"port": 4000,
		"contracts": [
			{"name": "Vault", "abi": `+viewABI+`, "address": "`+usdc+`",
			 "enums": {"Vault.Status": ["Open", "Closed"]}},
			{"name": "Token", "abi": "./abis/Token.json", "address": {"8453": "`+dead+`", "1": "`+usdc+`"}},
			{"name": "Remote", "address": "`+dead+`"}
		]
	}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(8453), cfg.ChainID)
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, dir, cfg.Dir())
	require.Len(t, cfg.Contracts, 3)

	vault := cfg.Contracts[0]
	require.Len(t, vault.ABI.Inline, 1)
	assert.Equal(t, "owner", vault.ABI.Inline[0].Name)
	assert.Equal(t, usdc, vault.Address.Single)
	assert.Equal(t, []string{"Open", "Closed"}, vault.Enums["Vault.Status"])

	token := cfg.Contracts[1]
	assert.Equal(t, "./abis/Token.json", token.ABI.Path)
	assert.Equal(t, map[int64]string{8453: dead, 1: usdc}, token.Address.ByChain)

	assert.True(t, cfg.Contracts[2].ABI.IsZero())
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "abi-test.yaml", `
chainId: 1
apiKey: abc
contracts:
  - name: Token
    abi: builtin:erc20
    address: "`+usdc+`"
  - name: Vault
    address:
      1: "`+dead+`"
    abi:
      - name: paused
        type: function
        stateMutability: view
        inputs: []
        outputs:
          - name: ""
            type: bool
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cfg.ChainID)
	assert.Equal(t, "abc", cfg.APIKey)
	require.Len(t, cfg.Contracts, 2)

	assert.Equal(t, "builtin:erc20", cfg.Contracts[0].ABI.Path)

	vault := cfg.Contracts[1]
	assert.Equal(t, dead, vault.Address.ByChain[1])
	require.Len(t, vault.ABI.Inline, 1)
	assert.True(t, vault.ABI.Inline[0].IsReadFunction())
	assert.Equal(t, "bool", vault.ABI.Inline[0].Outputs[0].Type)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeFile(t, t.TempDir(), "abi-test.json", `{"contracts": [{"name": "X", "abi": 42}]}`)
	_, err = config.Load(path)
	assert.ErrorContains(t, err, "abi must be an array or a file path")
}

func TestLoadEnvAndApplyEnv(t *testing.T) {
	// Register restores, then clear so .env can set them.
	t.Setenv(config.EnvRPCURL, "")
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvEtherscanKey, "")
	require.NoError(t, os.Unsetenv(config.EnvRPCURL))
	require.NoError(t, os.Unsetenv(config.EnvAPIKey))
	require.NoError(t, os.Unsetenv(config.EnvEtherscanKey))

	dir := t.TempDir()
	writeFile(t, dir, ".env", config.EnvRPCURL+"=http://127.0.0.1:8545\n"+config.EnvEtherscanKey+"=from-dotenv\n")
	require.NoError(t, config.LoadEnv(dir))

	cfg := &config.Config{}
	cfg.ApplyEnv()
	assert.Equal(t, "http://127.0.0.1:8545", cfg.RPCURL)
	assert.Equal(t, "from-dotenv", cfg.APIKey)

	set := &config.Config{APIKey: "explicit", RPCURL: "https://rpc.example"}
	set.ApplyEnv()
	assert.Equal(t, "explicit", set.APIKey)
	assert.Equal(t, "https://rpc.example", set.RPCURL)
}

func TestLoadEnvMissingFile(t *testing.T) {
	assert.NoError(t, config.LoadEnv(t.TempDir()))
}

func TestMerge(t *testing.T) {
	file := &config.Config{
		ChainID:   1,
		Port:      4000,
		APIKey:    "file-key",
		Contracts: []config.ContractConfig{{Name: "Token", Address: contract.SingleAddress(usdc)}},
	}
	flag, err := config.ParseContractFlag(dead + ":Vault")
	require.NoError(t, err)

	merged := config.Merge(file, config.Overrides{
		ChainID:   8453,
		APIKey:    "flag-key",
		Contracts: []config.ContractConfig{flag},
	})

	assert.Equal(t, int64(8453), merged.ChainID)
	assert.Equal(t, 4000, merged.Port, "unset flags keep file values")
	assert.Equal(t, "flag-key", merged.APIKey)
	require.Len(t, merged.Contracts, 2)
	assert.Equal(t, "Token", merged.Contracts[0].Name)
	assert.Equal(t, "Vault", merged.Contracts[1].Name)
	assert.Len(t, file.Contracts, 1, "merge does not modify the file config")
}

func TestMergeWithoutFile(t *testing.T) {
	merged := config.Merge(nil, config.Overrides{ChainID: 1, Port: 8080})
	assert.Equal(t, int64(1), merged.ChainID)
	assert.Equal(t, 8080, merged.Port)
	assert.NotEmpty(t, merged.Dir())
}

func TestParseContractFlag(t *testing.T) {
	cc, err := config.ParseContractFlag(usdc + ":USDC")
	require.NoError(t, err)
	assert.Equal(t, "USDC", cc.Name)
	assert.Equal(t, usdc, cc.Address.Single)

	for _, bad := range []string{usdc, ":Name", usdc + ":", ""} {
		_, err := config.ParseContractFlag(bad)
		assert.ErrorContains(t, err, "expected 0xaddr:Name", bad)
	}
}

func TestApplyDefaults(t *testing.T) {
	reg := chain.NewRegistry()

	base := &config.Config{ChainID: 8453}
	base.ApplyDefaults(reg)
	assert.Equal(t, config.DefaultPort, base.Port)
	assert.Equal(t, config.DefaultAPIURL, base.APIURL)
	assert.Equal(t, "https://basescan.org", base.BlockExplorerURL)
	assert.Equal(t, "fastest", base.RPCAlgorithm)

	unknown := &config.Config{ChainID: 987654321}
	unknown.ApplyDefaults(reg)
	assert.Equal(t, config.DefaultExplorer, unknown.BlockExplorerURL)

	explicit := &config.Config{ChainID: 8453, BlockExplorerURL: "https://my.explorer", Port: 9000}
	explicit.ApplyDefaults(reg)
	assert.Equal(t, "https://my.explorer", explicit.BlockExplorerURL)
	assert.Equal(t, 9000, explicit.Port)
}

func TestValidate(t *testing.T) {
	token := config.ContractConfig{Name: "Token", Address: contract.SingleAddress(usdc)}

	tests := []struct {
		name string
		cfg  config.Config
		msg  string
	}{
		{"missing chain id", config.Config{Contracts: []config.ContractConfig{token}}, "chain id is required"},
		{"no contracts", config.Config{ChainID: 1}, "at least one contract is required"},
		{"empty contracts", config.Config{ChainID: 1, Contracts: []config.ContractConfig{}}, "at least one contract is required"},
		{"duplicate names", config.Config{ChainID: 1, Contracts: []config.ContractConfig{token, token}}, "contract names must be unique"},
		{"unnamed contract", config.Config{ChainID: 1, Contracts: []config.ContractConfig{{Address: contract.SingleAddress(usdc)}}}, "Name is required"},
		{"bad port", config.Config{ChainID: 1, Port: 70000, Contracts: []config.ContractConfig{token}}, "Port must be at most 65535"},
		{"bad url", config.Config{ChainID: 1, RPCURL: "not a url", Contracts: []config.ContractConfig{token}}, "RPCURL must be a URL"},
		{"bad algorithm", config.Config{ChainID: 1, RPCAlgorithm: "random", Contracts: []config.ContractConfig{token}}, "RPCAlgorithm must be one of"},
		{"missing address", config.Config{ChainID: 1, Contracts: []config.ContractConfig{{Name: "X"}}}, "address is required"},
		{"bad address", config.Config{ChainID: 1, Contracts: []config.ContractConfig{{Name: "X", Address: contract.SingleAddress("0x1234")}}}, `invalid address "0x1234"`},
		{"bad chain address", config.Config{ChainID: 1, Contracts: []config.ContractConfig{{Name: "X", Address: contract.Address{ByChain: map[int64]string{1: "nope"}}}}}, "for chain 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestValidateOK(t *testing.T) {
	cfg := config.Config{
		ChainID:      8453,
		RPCURL:       "https://mainnet.base.org",
		Port:         3000,
		RPCAlgorithm: "round-robin",
		Contracts: []config.ContractConfig{
			{Name: "Token", Address: contract.SingleAddress(usdc)},
			{Name: "Vault", Address: contract.Address{ByChain: map[int64]string{8453: dead}}},
		},
	}
	assert.NoError(t, cfg.Validate())
}
