package config

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/Mohsinsiddi/abi-test/internal/contract"
)

// ABIFetcher fetches verified ABIs from a block explorer.
type ABIFetcher interface {
	FetchFromExplorer(ctx context.Context, apiURL string, chainID int64, address string) (contract.ABI, error)
}

// Resolve loads every contract's ABI: inline, from a file relative to the
// config, from a built-in, or from the explorer. Explorer results go
// through cache when it is non-nil. Contracts resolve concurrently and keep
// their order.
func Resolve(ctx context.Context, cfg *Config, fetcher ABIFetcher, cache *contract.Cache) (*Resolved, error) {
	out := &Resolved{
		Contracts:        make([]ResolvedContract, len(cfg.Contracts)),
		BlockExplorerURL: cfg.BlockExplorerURL,
		RPCURL:           cfg.RPCURL,
		ChainID:          cfg.ChainID,
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, cc := range cfg.Contracts {
		g.Go(func() error {
			abi, err := resolveABI(gctx, cfg, cc, fetcher, cache)
			if err != nil {
				return fmt.Errorf("resolving ABI for %s: %w", cc.Name, err)
			}
			out.Contracts[i] = ResolvedContract{
				Name:    cc.Name,
				ABI:     abi,
				Address: cc.Address,
				Enums:   cc.Enums,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Save(); err != nil {
			return nil, fmt.Errorf("saving ABI cache: %w", err)
		}
	}
	return out, nil
}

func resolveABI(ctx context.Context, cfg *Config, cc ContractConfig, fetcher ABIFetcher, cache *contract.Cache) (contract.ABI, error) {
	switch {
	case cc.ABI.Inline != nil:
		return cc.ABI.Inline, nil

	case cc.ABI.Path != "":
		if id, ok := contract.BuiltinRef(cc.ABI.Path); ok {
			b, found := contract.GetBuiltin(id)
			if !found {
				return nil, fmt.Errorf("unknown builtin ABI %q", id)
			}
			return b.ABI, nil
		}
		path := cc.ABI.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.dir, path)
		}
		return contract.LoadFromArtifact(path)
	}

	address := cc.Address.Any(cfg.ChainID)
	if address == "" {
		return nil, fmt.Errorf("contract %q has no address and no ABI", cc.Name)
	}
	if cache != nil {
		if abi, ok := cache.Get(cfg.ChainID, address); ok {
			return abi, nil
		}
	}
	if fetcher == nil {
		return nil, fmt.Errorf("no ABI for %s and no explorer configured", address)
	}
	abi, err := fetcher.FetchFromExplorer(ctx, cfg.APIURL, cfg.ChainID, address)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		cache.Put(cfg.ChainID, address, abi)
	}
	return abi, nil
}
