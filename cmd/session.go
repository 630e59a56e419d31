package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Mohsinsiddi/abi-test/internal/chain"
	"github.com/Mohsinsiddi/abi-test/internal/codec"
	"github.com/Mohsinsiddi/abi-test/internal/config"
	"github.com/Mohsinsiddi/abi-test/internal/contract"
	"github.com/Mohsinsiddi/abi-test/internal/rpc"
)

// session is a loaded, resolved config ready for calls.
type session struct {
	cfg      *config.Config
	resolved *config.Resolved
	registry *chain.Registry
}

// loadConfig reads the config file (explicit or discovered), merges the
// flags and environment on top and validates the result. A missing config
// file is fine when contracts come from flags.
func loadConfig(reg *chain.Registry) (*config.Config, error) {
	path := flags.configPath
	if path == "" {
		found, err := config.Discover(".")
		switch {
		case err == nil:
			path = found
		case errors.Is(err, config.ErrNoConfig):
			if len(flags.contracts) == 0 {
				return nil, err
			}
		default:
			return nil, err
		}
	}

	var file *config.Config
	envDir := "."
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("path", path).Msg("loaded config")
		file, envDir = c, c.Dir()
	}
	if err := config.LoadEnv(envDir); err != nil {
		return nil, err
	}

	overrides, err := flags.overrides()
	if err != nil {
		return nil, err
	}
	cfg := config.Merge(file, overrides)
	cfg.ApplyEnv()
	cfg.ApplyDefaults(reg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openCache returns the on-disk ABI cache, or nil when caching is off or
// the user cache directory is unavailable.
func openCache() *contract.Cache {
	if flags.noCache {
		return nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		log.Debug().Err(err).Msg("no user cache dir; ABI cache disabled")
		return nil
	}
	cache := contract.NewCache(filepath.Join(dir, "abi-test", "abis.json"))
	if err := cache.Load(); err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable ABI cache")
		return contract.NewCache(filepath.Join(dir, "abi-test", "abis.json"))
	}
	return cache
}

// openSession loads and resolves the config. With needRPC the node URL is
// chosen too: the configured one, or the best public RPC for the chain.
func openSession(ctx context.Context, needRPC bool) (*session, error) {
	reg := chain.NewRegistry()
	cfg, err := loadConfig(reg)
	if err != nil {
		return nil, err
	}

	rctx, cancel := context.WithTimeout(ctx, config.ResolveTimeout)
	defer cancel()
	resolved, err := config.Resolve(rctx, cfg, contract.NewFetcher(cfg.APIKey), openCache())
	if err != nil {
		return nil, err
	}
	log.Debug().Int("contracts", len(resolved.Contracts)).Int64("chain", cfg.ChainID).Msg("resolved config")

	if needRPC {
		algo, err := rpc.ParseAlgorithm(cfg.RPCAlgorithm)
		if err != nil {
			return nil, err
		}
		sctx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout)
		defer cancel()
		url, err := rpc.Select(sctx, cfg.RPCURL, cfg.ChainID, reg, algo)
		if err != nil {
			return nil, err
		}
		resolved.RPCURL = url
		log.Debug().Str("rpc", url).Msg("selected RPC")
	}

	return &session{cfg: cfg, resolved: resolved, registry: reg}, nil
}

// contract looks up a configured contract by name, case-insensitively as a
// fallback.
func (s *session) contract(name string) (config.ResolvedContract, error) {
	if c, ok := s.resolved.Contract(name); ok {
		return c, nil
	}
	for _, c := range s.resolved.Contracts {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	names := make([]string, len(s.resolved.Contracts))
	for i, c := range s.resolved.Contracts {
		names[i] = c.Name
	}
	sort.Strings(names)
	return config.ResolvedContract{}, fmt.Errorf("unknown contract %q (configured: %s)", name, strings.Join(names, ", "))
}

// address resolves the address c is called at. override wins when set.
func (s *session) address(c config.ResolvedContract, override string) (string, error) {
	if override != "" {
		if !codec.IsAddress(override) {
			return "", fmt.Errorf("%w %q", codec.ErrInvalidAddress, override)
		}
		return override, nil
	}
	addr, ok := contract.ResolveAddress(c.Address, s.resolved.ChainID)
	if !ok {
		return "", fmt.Errorf("%s has no address on chain %d", c.Name, s.resolved.ChainID)
	}
	return addr, nil
}

// networkName is the registry name of the session's chain, or "chain N".
func (s *session) networkName() string {
	if n, err := s.registry.Network(s.resolved.ChainID); err == nil {
		return n.DisplayName
	}
	return fmt.Sprintf("chain %d", s.resolved.ChainID)
}

func (s *session) formatter() codec.Formatter {
	return codec.Formatter{GroupSeparator: flags.groupSeparator}
}

func (s *session) caller(c config.ResolvedContract) *contract.Caller {
	caller := contract.NewCaller(s.resolved.RPCURL, c.ABI)
	caller.Formatter = s.formatter()
	caller.Enums = c.Enums
	return caller
}
