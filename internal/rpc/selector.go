package rpc

import (
	"context"
	"fmt"

	"github.com/Mohsinsiddi/abi-test/internal/chain"
)

// Select returns the RPC URL to use for chainID. An explicit URL always
// wins; otherwise the registry's public RPCs for the chain are benchmarked
// and the algorithm picks one.
func Select(ctx context.Context, explicit string, chainID int64, reg *chain.Registry, algo Algorithm) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	network, err := reg.Network(chainID)
	if err != nil {
		return "", fmt.Errorf("no RPC URL given and %w", err)
	}
	url, err := Best(ctx, network.RPCs, algo)
	if err != nil {
		return "", fmt.Errorf("selecting RPC for %s: %w", network.DisplayName, err)
	}
	return url, nil
}
