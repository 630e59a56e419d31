package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidABI is returned for documents that are not a usable ABI.
var ErrInvalidABI = errors.New("invalid ABI")

// ParseABI decodes a raw ABI JSON array.
func ParseABI(data []byte) (ABI, error) {
	var abi ABI
	if err := json.Unmarshal(data, &abi); err != nil {
		data = bytes.TrimSpace(data)
		if len(data) > 0 && data[0] == '{' {
			return nil, fmt.Errorf("%w: got a JSON object, not an array; a Hardhat/Foundry artifact must have an \"abi\" key", ErrInvalidABI)
		}
		return nil, fmt.Errorf("%w: expected an array of function/event definitions: %v", ErrInvalidABI, err)
	}
	return abi, nil
}

// LoadFromFile loads a raw ABI JSON array from a local file path.
func LoadFromFile(path string) (ABI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ABI file %s: %w", path, err)
	}
	return ParseABI(data)
}

// LoadFromArtifact loads an ABI from a local file that is either:
//   - a raw ABI JSON array: [{"type":"function",...}, ...]
//   - a Hardhat/Foundry artifact: {"abi":[...],"bytecode":"0x...",...}
//
// Both formats are detected automatically.
func LoadFromArtifact(path string) (ABI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read ABI file: %w", err)
	}
	abi, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return abi, nil
}

// ParseDocument parses a raw ABI array or an artifact object with an "abi"
// key and checks the result has something to call.
func ParseDocument(data []byte) (ABI, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: document is empty", ErrInvalidABI)
	}

	if data[0] == '{' {
		var artifact struct {
			ABI json.RawMessage `json:"abi"`
		}
		if json.Unmarshal(data, &artifact) == nil && len(artifact.ABI) > 1 && artifact.ABI[0] == '[' {
			data = artifact.ABI
		}
	}

	abi, err := ParseABI(data)
	if err != nil {
		return nil, err
	}
	if err := validateABI(abi); err != nil {
		return nil, err
	}
	return abi, nil
}

// validateABI checks that the parsed ABI has at least one function, event
// or constructor.
func validateABI(abi ABI) error {
	if len(abi) == 0 {
		return fmt.Errorf("%w: no functions or events found", ErrInvalidABI)
	}
	for _, e := range abi {
		if e.Type == "function" || e.Type == "event" || e.Type == "constructor" {
			return nil
		}
	}
	return fmt.Errorf("%w: %d entries but none are functions or events", ErrInvalidABI, len(abi))
}
