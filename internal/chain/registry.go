package chain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrChainNotFound is returned when a chain is not in the registry.
var ErrChainNotFound = errors.New("chain not found")

// Chain holds the metadata for one EVM chain and its public testnet.
type Chain struct {
	Name            string   `json:"name"`
	DisplayName     string   `json:"display_name"`
	ChainID         int64    `json:"chain_id"`
	TestnetChainID  int64    `json:"testnet_chain_id,omitempty"`
	NativeCurrency  string   `json:"native_currency"`
	MainnetRPCs     []string `json:"mainnet_rpcs"`
	TestnetRPCs     []string `json:"testnet_rpcs,omitempty"`
	MainnetExplorer string   `json:"mainnet_explorer"`
	TestnetExplorer string   `json:"testnet_explorer,omitempty"`
	TestnetName     string   `json:"testnet_name,omitempty"`
}

// Network is a single chain ID: either the mainnet or the testnet side of
// a Chain.
type Network struct {
	ChainID        int64    `json:"chain_id"`
	Chain          string   `json:"chain"`
	DisplayName    string   `json:"display_name"`
	Testnet        bool     `json:"testnet"`
	NativeCurrency string   `json:"native_currency"`
	RPCs           []string `json:"rpcs"`
	Explorer       string   `json:"explorer"`
}

// Registry is the chain registry.
type Registry struct {
	chains []Chain
	byName map[string]*Chain
	byID   map[int64]Network
}

// NewRegistry creates and returns the registry of known EVM chains.
func NewRegistry() *Registry {
	chains := allChains()
	r := &Registry{
		chains: chains,
		byName: make(map[string]*Chain, len(chains)),
		byID:   make(map[int64]Network, 2*len(chains)),
	}
	for i := range r.chains {
		c := &r.chains[i]
		r.byName[c.Name] = c
		r.byID[c.ChainID] = c.network(false)
		if c.TestnetChainID != 0 {
			r.byID[c.TestnetChainID] = c.network(true)
		}
	}
	return r
}

func (c *Chain) network(testnet bool) Network {
	if testnet {
		return Network{
			ChainID:        c.TestnetChainID,
			Chain:          c.Name,
			DisplayName:    c.TestnetName,
			Testnet:        true,
			NativeCurrency: c.NativeCurrency,
			RPCs:           c.TestnetRPCs,
			Explorer:       c.TestnetExplorer,
		}
	}
	return Network{
		ChainID:        c.ChainID,
		Chain:          c.Name,
		DisplayName:    c.DisplayName,
		NativeCurrency: c.NativeCurrency,
		RPCs:           c.MainnetRPCs,
		Explorer:       c.MainnetExplorer,
	}
}

// All returns every chain in the registry.
func (r *Registry) All() []Chain {
	return r.chains
}

// Networks returns every known network, sorted by chain ID.
func (r *Registry) Networks() []Network {
	out := make([]Network, 0, len(r.byID))
	for _, n := range r.byID {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChainID < out[j].ChainID })
	return out
}

// GetByName finds a chain by its slug name (e.g. "base", "ethereum").
func (r *Registry) GetByName(name string) (*Chain, error) {
	c, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChainNotFound, name)
	}
	return c, nil
}

// Network finds the network for a chain ID, mainnet or testnet.
func (r *Registry) Network(id int64) (Network, error) {
	n, ok := r.byID[id]
	if !ok {
		return Network{}, fmt.Errorf("%w: chain id %d", ErrChainNotFound, id)
	}
	return n, nil
}

// AddressURL returns the explorer page for an address on this network.
func (n Network) AddressURL(address string) string {
	if n.Explorer == "" {
		return ""
	}
	return strings.TrimRight(n.Explorer, "/") + "/address/" + address
}

// --- chain data ---

func allChains() []Chain {
	return []Chain{
		{
			Name: "ethereum", DisplayName: "Ethereum", ChainID: 1, TestnetChainID: 11155111,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://eth.llamarpc.com", "https://ethereum-rpc.publicnode.com"},
			TestnetRPCs:     []string{"https://rpc.sepolia.org", "https://sepolia.gateway.tenderly.co"},
			MainnetExplorer: "https://etherscan.io",
			TestnetExplorer: "https://sepolia.etherscan.io",
			TestnetName:     "Sepolia",
		},
		{
			Name: "holesky", DisplayName: "Holesky", ChainID: 17000,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://ethereum-holesky-rpc.publicnode.com"},
			MainnetExplorer: "https://holesky.etherscan.io",
		},
		{
			Name: "base", DisplayName: "Base", ChainID: 8453, TestnetChainID: 84532,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://mainnet.base.org", "https://base.llamarpc.com"},
			TestnetRPCs:     []string{"https://sepolia.base.org"},
			MainnetExplorer: "https://basescan.org",
			TestnetExplorer: "https://sepolia.basescan.org",
			TestnetName:     "Base Sepolia",
		},
		{
			Name: "polygon", DisplayName: "Polygon", ChainID: 137, TestnetChainID: 80002,
			NativeCurrency:  "POL",
			MainnetRPCs:     []string{"https://polygon-bor-rpc.publicnode.com", "https://polygon-pokt.nodies.app"},
			TestnetRPCs:     []string{"https://rpc-amoy.polygon.technology"},
			MainnetExplorer: "https://polygonscan.com",
			TestnetExplorer: "https://amoy.polygonscan.com",
			TestnetName:     "Amoy",
		},
		{
			Name: "arbitrum", DisplayName: "Arbitrum", ChainID: 42161, TestnetChainID: 421614,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://arb1.arbitrum.io/rpc", "https://arbitrum.llamarpc.com"},
			TestnetRPCs:     []string{"https://sepolia-rollup.arbitrum.io/rpc"},
			MainnetExplorer: "https://arbiscan.io",
			TestnetExplorer: "https://sepolia.arbiscan.io",
			TestnetName:     "Arb Sepolia",
		},
		{
			Name: "optimism", DisplayName: "Optimism", ChainID: 10, TestnetChainID: 11155420,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://mainnet.optimism.io", "https://optimism.llamarpc.com"},
			TestnetRPCs:     []string{"https://sepolia.optimism.io"},
			MainnetExplorer: "https://optimistic.etherscan.io",
			TestnetExplorer: "https://sepolia-optimism.etherscan.io",
			TestnetName:     "OP Sepolia",
		},
		{
			Name: "bnb", DisplayName: "BNB Chain", ChainID: 56, TestnetChainID: 97,
			NativeCurrency:  "BNB",
			MainnetRPCs:     []string{"https://bsc-dataseed.binance.org", "https://bsc-rpc.publicnode.com"},
			TestnetRPCs:     []string{"https://data-seed-prebsc-1-s1.binance.org:8545"},
			MainnetExplorer: "https://bscscan.com",
			TestnetExplorer: "https://testnet.bscscan.com",
			TestnetName:     "BSC Testnet",
		},
		{
			Name: "avalanche", DisplayName: "Avalanche", ChainID: 43114, TestnetChainID: 43113,
			NativeCurrency:  "AVAX",
			MainnetRPCs:     []string{"https://api.avax.network/ext/bc/C/rpc", "https://avalanche-c-chain-rpc.publicnode.com"},
			TestnetRPCs:     []string{"https://api.avax-test.network/ext/bc/C/rpc"},
			MainnetExplorer: "https://snowtrace.io",
			TestnetExplorer: "https://testnet.snowtrace.io",
			TestnetName:     "Fuji",
		},
		{
			Name: "fantom", DisplayName: "Fantom", ChainID: 250, TestnetChainID: 4002,
			NativeCurrency:  "FTM",
			MainnetRPCs:     []string{"https://rpcapi.fantom.network", "https://fantom-pokt.nodies.app"},
			TestnetRPCs:     []string{"https://rpc.testnet.fantom.network"},
			MainnetExplorer: "https://ftmscan.com",
			TestnetExplorer: "https://testnet.ftmscan.com",
			TestnetName:     "FTM Testnet",
		},
		{
			Name: "linea", DisplayName: "Linea", ChainID: 59144, TestnetChainID: 59141,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://rpc.linea.build", "https://linea-rpc.publicnode.com"},
			TestnetRPCs:     []string{"https://rpc.sepolia.linea.build"},
			MainnetExplorer: "https://lineascan.build",
			TestnetExplorer: "https://sepolia.lineascan.build",
			TestnetName:     "Linea Sepolia",
		},
		{
			Name: "zksync", DisplayName: "zkSync Era", ChainID: 324, TestnetChainID: 300,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://mainnet.era.zksync.io", "https://zksync-era-rpc.publicnode.com"},
			TestnetRPCs:     []string{"https://sepolia.era.zksync.dev"},
			MainnetExplorer: "https://explorer.zksync.io",
			TestnetExplorer: "https://sepolia.explorer.zksync.io",
			TestnetName:     "zkSync Sepolia",
		},
		{
			Name: "scroll", DisplayName: "Scroll", ChainID: 534352, TestnetChainID: 534351,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://rpc.scroll.io", "https://scroll-rpc.publicnode.com"},
			TestnetRPCs:     []string{"https://sepolia-rpc.scroll.io"},
			MainnetExplorer: "https://scrollscan.com",
			TestnetExplorer: "https://sepolia.scrollscan.com",
			TestnetName:     "Scroll Sepolia",
		},
		{
			Name: "mantle", DisplayName: "Mantle", ChainID: 5000, TestnetChainID: 5003,
			NativeCurrency:  "MNT",
			MainnetRPCs:     []string{"https://rpc.mantle.xyz", "https://mantle-rpc.publicnode.com"},
			TestnetRPCs:     []string{"https://rpc.sepolia.mantle.xyz"},
			MainnetExplorer: "https://mantlescan.xyz",
			TestnetExplorer: "https://sepolia.mantlescan.xyz",
			TestnetName:     "Mantle Sepolia",
		},
		{
			Name: "celo", DisplayName: "Celo", ChainID: 42220, TestnetChainID: 44787,
			NativeCurrency:  "CELO",
			MainnetRPCs:     []string{"https://forno.celo.org", "https://celo-rpc.publicnode.com"},
			TestnetRPCs:     []string{"https://alfajores-forno.celo-testnet.org"},
			MainnetExplorer: "https://celoscan.io",
			TestnetExplorer: "https://alfajores.celoscan.io",
			TestnetName:     "Alfajores",
		},
		{
			Name: "gnosis", DisplayName: "Gnosis", ChainID: 100, TestnetChainID: 10200,
			NativeCurrency:  "xDAI",
			MainnetRPCs:     []string{"https://rpc.gnosischain.com", "https://gnosis-rpc.publicnode.com"},
			TestnetRPCs:     []string{"https://rpc.chiadochain.net"},
			MainnetExplorer: "https://gnosisscan.io",
			TestnetExplorer: "https://gnosis-chiado.blockscout.com",
			TestnetName:     "Chiado",
		},
		{
			Name: "blast", DisplayName: "Blast", ChainID: 81457, TestnetChainID: 168587773,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://rpc.blast.io", "https://blast-rpc.publicnode.com"},
			TestnetRPCs:     []string{"https://sepolia.blast.io"},
			MainnetExplorer: "https://blastscan.io",
			TestnetExplorer: "https://testnet.blastscan.io",
			TestnetName:     "Blast Sepolia",
		},
		{
			Name: "mode", DisplayName: "Mode", ChainID: 34443, TestnetChainID: 919,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://mainnet.mode.network", "https://mode-rpc.publicnode.com"},
			TestnetRPCs:     []string{"https://sepolia.mode.network"},
			MainnetExplorer: "https://explorer.mode.network",
			TestnetExplorer: "https://sepolia.explorer.mode.network",
			TestnetName:     "Mode Sepolia",
		},
		{
			Name: "zora", DisplayName: "Zora", ChainID: 7777777, TestnetChainID: 999999999,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://rpc.zora.energy"},
			TestnetRPCs:     []string{"https://sepolia.rpc.zora.energy"},
			MainnetExplorer: "https://explorer.zora.energy",
			TestnetExplorer: "https://sepolia.explorer.zora.energy",
			TestnetName:     "Zora Sepolia",
		},
		{
			Name: "moonbeam", DisplayName: "Moonbeam", ChainID: 1284, TestnetChainID: 1287,
			NativeCurrency:  "GLMR",
			MainnetRPCs:     []string{"https://rpc.api.moonbeam.network", "https://moonbeam-rpc.publicnode.com"},
			TestnetRPCs:     []string{"https://rpc.api.moonbase.moonbeam.network"},
			MainnetExplorer: "https://moonscan.io",
			TestnetExplorer: "https://moonbase.moonscan.io",
			TestnetName:     "Moonbase Alpha",
		},
		{
			Name: "cronos", DisplayName: "Cronos", ChainID: 25, TestnetChainID: 338,
			NativeCurrency:  "CRO",
			MainnetRPCs:     []string{"https://evm.cronos.org", "https://cronos-evm-rpc.publicnode.com"},
			TestnetRPCs:     []string{"https://evm-t3.cronos.org"},
			MainnetExplorer: "https://cronoscan.com",
			TestnetExplorer: "https://testnet.cronoscan.com",
			TestnetName:     "Cronos Testnet",
		},
		{
			Name: "klaytn", DisplayName: "Klaytn (Kaia)", ChainID: 8217, TestnetChainID: 1001,
			NativeCurrency:  "KAIA",
			MainnetRPCs:     []string{"https://public-en.node.kaia.io", "https://kaia.blockpi.network/v1/rpc/public"},
			TestnetRPCs:     []string{"https://public-en-kairos.node.kaia.io"},
			MainnetExplorer: "https://kaiascan.io",
			TestnetExplorer: "https://kairos.kaiascan.io",
			TestnetName:     "Kairos",
		},
		{
			Name: "aurora", DisplayName: "Aurora", ChainID: 1313161554, TestnetChainID: 1313161555,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://mainnet.aurora.dev"},
			TestnetRPCs:     []string{"https://testnet.aurora.dev"},
			MainnetExplorer: "https://aurorascan.dev",
			TestnetExplorer: "https://testnet.aurorascan.dev",
			TestnetName:     "Aurora Testnet",
		},
		{
			Name: "polygon-zkevm", DisplayName: "Polygon zkEVM", ChainID: 1101, TestnetChainID: 2442,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://zkevm-rpc.com", "https://polygon-zkevm-rpc.publicnode.com"},
			TestnetRPCs:     []string{"https://rpc.cardona.zkevm-rpc.com"},
			MainnetExplorer: "https://zkevm.polygonscan.com",
			TestnetExplorer: "https://cardona-zkevm.polygonscan.com",
			TestnetName:     "Cardona",
		},
		{
			Name: "hyperliquid", DisplayName: "Hyperliquid EVM", ChainID: 999, TestnetChainID: 998,
			NativeCurrency:  "HYPE",
			MainnetRPCs:     []string{"https://api.hyperliquid.xyz/evm"},
			TestnetRPCs:     []string{"https://api.hyperliquid-testnet.xyz/evm"},
			MainnetExplorer: "https://app.hyperliquid.xyz/explorer",
			TestnetExplorer: "https://app.hyperliquid-testnet.xyz/explorer",
			TestnetName:     "HyperEVM Testnet",
		},
		{
			Name: "boba", DisplayName: "Boba Network", ChainID: 288, TestnetChainID: 28882,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://mainnet.boba.network", "https://boba-ethereum.gateway.tenderly.co"},
			TestnetRPCs:     []string{"https://sepolia.boba.network"},
			MainnetExplorer: "https://bobascan.com",
			TestnetExplorer: "https://testnet.bobascan.com",
			TestnetName:     "Boba Sepolia",
		},
		// Local anvil / hardhat node.
		{
			Name: "foundry", DisplayName: "Foundry", ChainID: 31337,
			NativeCurrency: "ETH",
			MainnetRPCs:    []string{"http://127.0.0.1:8545"},
		},
	}
}
