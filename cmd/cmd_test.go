package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/abi-test/internal/chain"
	"github.com/Mohsinsiddi/abi-test/internal/codec"
	"github.com/Mohsinsiddi/abi-test/internal/config"
	"github.com/Mohsinsiddi/abi-test/internal/contract"
)

const (
	usdc = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	dead = "0x000000000000000000000000000000000000dEaD"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "abi-test.config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const tokenConfig = `chainId: 1
contracts:
  - name: Token
    abi: builtin:erc20
    address: ` + usdc + `
`

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	flags = globalFlags{}
	callAddress, callJSON, calldataRaw, abiJSON = "", false, false, false
	chainsProbe, chainsNoTUI = 0, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append(args, "--log-level", "disabled"))
	err := rootCmd.Execute()
	return out.String(), err
}

func rpcMock(t *testing.T, result string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID int `json:"id"`
		}
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": result}) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv
}

func erc20Function(t *testing.T, name string) contract.ABIEntry {
	t.Helper()
	b, ok := contract.GetBuiltin("erc20")
	require.True(t, ok)
	fn, err := b.ABI.Function(name)
	require.NoError(t, err)
	return fn
}

// ---------------------------------------------------------------------------
// parseInputs
// ---------------------------------------------------------------------------

func TestParseInputs_Positional(t *testing.T) {
	got, err := parseInputs(erc20Function(t, "transfer"), []string{dead, "1000"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"to": dead, "value": "1000"}, got)
}

func TestParseInputs_Named(t *testing.T) {
	got, err := parseInputs(erc20Function(t, "transfer"), []string{"value=5", "to=" + dead})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"to": dead, "value": "5"}, got)
}

func TestParseInputs_MixedSkipsNamed(t *testing.T) {
	got, err := parseInputs(erc20Function(t, "transfer"), []string{"to=" + dead, "7"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"to": dead, "value": "7"}, got)
}

func TestParseInputs_UnknownKeyIsPositional(t *testing.T) {
	got, err := parseInputs(erc20Function(t, "balanceOf"), []string{"a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"account": "a=b"}, got)
}

func TestParseInputs_MissingLeftUnset(t *testing.T) {
	got, err := parseInputs(erc20Function(t, "transfer"), []string{dead})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"to": dead}, got)
}

func TestParseInputs_TooMany(t *testing.T) {
	_, err := parseInputs(erc20Function(t, "decimals"), []string{"1"})
	assert.ErrorContains(t, err, `extra argument "1"`)
}

func TestParseInputs_Duplicate(t *testing.T) {
	_, err := parseInputs(erc20Function(t, "transfer"), []string{"to=" + dead, "to=" + usdc})
	assert.ErrorContains(t, err, "given twice")
}

func TestParseInputs_UnnamedInputs(t *testing.T) {
	inputs := append([]codec.Param(nil), erc20Function(t, "transfer").Inputs...)
	inputs[0].Name, inputs[1].Name = "", ""
	fn := contract.ABIEntry{Name: "f", Type: "function", Inputs: inputs}
	got, err := parseInputs(fn, []string{"arg1=9", dead})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"arg0": dead, "arg1": "9"}, got)
}

// ---------------------------------------------------------------------------
// flags → config
// ---------------------------------------------------------------------------

func TestOverrides(t *testing.T) {
	f := globalFlags{
		contracts: []string{usdc + ":USDC"},
		chainID:   8453,
		port:      4000,
		rpcURL:    "https://mainnet.base.org",
	}
	o, err := f.overrides()
	require.NoError(t, err)
	assert.Equal(t, int64(8453), o.ChainID)
	assert.Equal(t, 4000, o.Port)
	assert.Equal(t, "https://mainnet.base.org", o.RPCURL)
	require.Len(t, o.Contracts, 1)
	assert.Equal(t, "USDC", o.Contracts[0].Name)
	assert.Equal(t, usdc, o.Contracts[0].Address.Single)
}

func TestOverrides_BadContract(t *testing.T) {
	_, err := globalFlags{contracts: []string{"USDC"}}.overrides()
	assert.ErrorContains(t, err, "expected 0xaddr:Name")
}

func TestLoadConfig_FlagsWinOverFile(t *testing.T) {
	flags = globalFlags{configPath: writeConfig(t, tokenConfig), port: 4321}
	t.Cleanup(func() { flags = globalFlags{} })

	cfg, err := loadConfig(chain.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, 4321, cfg.Port)
	assert.Equal(t, int64(1), cfg.ChainID)
	assert.Equal(t, "https://etherscan.io", cfg.BlockExplorerURL)
	assert.Equal(t, "fastest", cfg.RPCAlgorithm)
}

func TestLoadConfig_ContractsFromFlagsOnly(t *testing.T) {
	t.Chdir(t.TempDir())
	flags = globalFlags{contracts: []string{usdc + ":USDC"}, chainID: 8453}
	t.Cleanup(func() { flags = globalFlags{} })

	cfg, err := loadConfig(chain.NewRegistry())
	require.NoError(t, err)
	require.Len(t, cfg.Contracts, 1)
	assert.Equal(t, "https://basescan.org", cfg.BlockExplorerURL)
}

func TestLoadConfig_NothingConfigured(t *testing.T) {
	t.Chdir(t.TempDir())
	flags = globalFlags{}
	_, err := loadConfig(chain.NewRegistry())
	assert.ErrorIs(t, err, config.ErrNoConfig)
}

func TestLoadConfig_Invalid(t *testing.T) {
	flags = globalFlags{configPath: writeConfig(t, "contracts: []\n")}
	t.Cleanup(func() { flags = globalFlags{} })
	_, err := loadConfig(chain.NewRegistry())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

// ---------------------------------------------------------------------------
// commands
// ---------------------------------------------------------------------------

func TestCalldataCommand_Raw(t *testing.T) {
	out, err := run(t, "calldata", "-f", writeConfig(t, tokenConfig), "--no-cache", "Token", "transfer", dead, "1000", "--raw")
	require.NoError(t, err)
	assert.Equal(t,
		"0xa9059cbb"+
			"000000000000000000000000000000000000000000000000000000000000dead"+
			"00000000000000000000000000000000000000000000000000000000000003e8\n",
		out)
}

func TestCalldataCommand_Block(t *testing.T) {
	out, err := run(t, "calldata", "-f", writeConfig(t, tokenConfig), "--no-cache", "token", "approve", dead, "0")
	require.NoError(t, err)
	assert.Contains(t, out, "approve(address,uint256)")
	assert.Contains(t, out, "0x095ea7b3")
	assert.Contains(t, out, usdc)
}

func TestCalldataCommand_BadInput(t *testing.T) {
	_, err := run(t, "calldata", "-f", writeConfig(t, tokenConfig), "--no-cache", "Token", "transfer", "0x1234", "1")
	var inputErr *contract.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestCalldataCommand_MistypedAmount(t *testing.T) {
	out, err := run(t, "calldata", "-f", writeConfig(t, tokenConfig), "--no-cache", "Token", "transfer", dead, "value=1O00", "--raw")
	var inputErr *contract.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "value", inputErr.Param)
	assert.ErrorIs(t, err, codec.ErrInvalidInteger)
	assert.Empty(t, out)
}

func TestCallCommand_MistypedInput(t *testing.T) {
	rpc := rpcMock(t, "0x0000000000000000000000000000000000000000000000000000000000000006")
	_, err := run(t, "call", "-f", writeConfig(t, tokenConfig), "--no-cache", "-r", rpc.URL, "Token", "balanceOf", "0xdeadbeef")
	var inputErr *contract.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.ErrorIs(t, err, codec.ErrInvalidAddress)
}

func TestCallCommand_JSON(t *testing.T) {
	rpc := rpcMock(t, "0x0000000000000000000000000000000000000000000000000000000000000006")
	out, err := run(t, "call", "-f", writeConfig(t, tokenConfig), "--no-cache", "-r", rpc.URL, "Token", "decimals", "--json")
	require.NoError(t, err)

	var results []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "uint8", results[0].Type)
	assert.Equal(t, "6", results[0].Text)
}

func TestCallCommand_WriteFunctionRejected(t *testing.T) {
	_, err := run(t, "call", "-f", writeConfig(t, tokenConfig), "--no-cache", "-r", "http://127.0.0.1:1", "Token", "transfer", dead, "1")
	assert.ErrorIs(t, err, contract.ErrNotReadFunction)
}

func TestCallCommand_UnknownContract(t *testing.T) {
	_, err := run(t, "call", "-f", writeConfig(t, tokenConfig), "--no-cache", "-r", "http://127.0.0.1:1", "Nope", "decimals")
	assert.ErrorContains(t, err, `unknown contract "Nope" (configured: Token)`)
}

func TestCallCommand_BadAddressOverride(t *testing.T) {
	_, err := run(t, "call", "-f", writeConfig(t, tokenConfig), "--no-cache", "-r", "http://127.0.0.1:1", "Token", "decimals", "--address", "0x12")
	assert.ErrorContains(t, err, "invalid address")
}

func TestABICommand(t *testing.T) {
	out, err := run(t, "abi", "-f", writeConfig(t, tokenConfig), "--no-cache", "Token")
	require.NoError(t, err)
	assert.Contains(t, out, "SELECTOR")
	assert.Contains(t, out, "0x70a08231")
	assert.Contains(t, out, "0xa9059cbb")
	assert.Contains(t, out, "0xddf2…b3ef")

	read := strings.Index(out, "0x70a08231")
	write := strings.Index(out, "0xa9059cbb")
	assert.Less(t, read, write, "read functions are listed first")
}

func TestABICommand_JSON(t *testing.T) {
	out, err := run(t, "abi", "-f", writeConfig(t, tokenConfig), "--no-cache", "Token", "--json")
	require.NoError(t, err)
	parsed, err := contract.ParseABI([]byte(out))
	require.NoError(t, err)
	b, _ := contract.GetBuiltin("erc20")
	assert.Len(t, parsed, len(b.ABI))
}

func TestChainsCommand(t *testing.T) {
	out, err := run(t, "chains")
	require.NoError(t, err)
	assert.Contains(t, out, "CHAIN ID")
	assert.Contains(t, out, "8453")
	assert.Contains(t, out, "https://etherscan.io")
}

func TestChainsCommand_UnknownProbe(t *testing.T) {
	_, err := run(t, "chains", "--probe", "999999999")
	assert.ErrorIs(t, err, chain.ErrChainNotFound)
}

func TestChainsCommand_BadAlgorithm(t *testing.T) {
	_, err := run(t, "chains", "--probe", "1", "--rpc-algorithm", "random")
	assert.ErrorContains(t, err, "unknown RPC algorithm")
}

func TestVersionFlag(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}
