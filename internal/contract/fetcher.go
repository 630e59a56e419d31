package contract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultExplorerAPI is the Etherscan v2 multichain endpoint.
const DefaultExplorerAPI = "https://api.etherscan.io/v2/api"

// ErrExplorer is returned when the explorer answers but refuses the request.
var ErrExplorer = errors.New("explorer error")

// Fetcher retrieves ABIs from block explorers or URLs.
type Fetcher struct {
	client *http.Client
	apiKey string
}

// NewFetcher creates a new ABI fetcher.
func NewFetcher(apiKey string) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 15 * time.Second},
		apiKey: apiKey,
	}
}

// FetchFromExplorer fetches a verified contract ABI from an Etherscan v2
// compatible API. apiURL defaults to DefaultExplorerAPI.
func (f *Fetcher) FetchFromExplorer(ctx context.Context, apiURL string, chainID int64, address string) (ABI, error) {
	if apiURL == "" {
		apiURL = DefaultExplorerAPI
	}
	q := url.Values{}
	q.Set("chainid", strconv.FormatInt(chainID, 10))
	q.Set("module", "contract")
	q.Set("action", "getabi")
	q.Set("address", address)
	if f.apiKey != "" {
		q.Set("apikey", f.apiKey)
	}
	endpoint := strings.TrimRight(apiURL, "/") + "?" + q.Encode()

	body, err := f.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching ABI for %s: %w", address, err)
	}

	var result struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Result  string `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing explorer response for %s: %w", address, err)
	}
	if result.Status != "1" || result.Result == "" {
		reason := result.Result
		if reason == "" {
			reason = result.Message
		}
		if reason == "" {
			reason = "unknown error"
		}
		return nil, fmt.Errorf("%w: fetching ABI for %s: %s", ErrExplorer, address, reason)
	}

	abi, err := ParseABI([]byte(result.Result))
	if err != nil {
		return nil, fmt.Errorf("ABI for %s: %w", address, err)
	}
	return abi, nil
}

// FetchFromURL fetches a raw ABI array or artifact from any URL.
func (f *Fetcher) FetchFromURL(ctx context.Context, rawURL string) (ABI, error) {
	body, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetching ABI from URL: %w", err)
	}
	return ParseDocument(body)
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return body, nil
}
