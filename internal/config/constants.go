package config

import "time"

// Defaults applied when neither the config file nor a flag sets a value.
const (
	DefaultPort     = 3000
	DefaultAPIURL   = "https://api.etherscan.io/v2/api"
	DefaultExplorer = "https://etherscan.io"
)

// Timeout constants used across cmd and server packages.
const (
	RPCSelectTimeout = 10 * time.Second // RPC benchmark / selection
	ResolveTimeout   = 60 * time.Second // fetching every contract ABI at startup
	ShutdownTimeout  = 5 * time.Second  // graceful HTTP shutdown
)

// Environment variables read after .env is loaded.
const (
	EnvAPIKey       = "ABI_TEST_API_KEY"
	EnvEtherscanKey = "ETHERSCAN_API_KEY"
	EnvRPCURL       = "ABI_TEST_RPC_URL"
)
