package allowlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/merkle"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

// LoadAddresses reads an allowlist file. A .json file (or any file whose
// content starts with '[') must hold an array of hex strings; anything else is
// read as one address per line, ignoring blank lines and '#' comments.
// Any malformed entry fails the whole load.
func LoadAddresses(path string) ([]common.Address, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read allowlist %s: %w", path, err)
	}

	addrs, err := ParseAddressList(data, filepath.Ext(path) == ".json")
	if err != nil {
		return nil, fmt.Errorf("invalid allowlist %s: %w", path, err)
	}
	return addrs, nil
}

// ParseAddressList parses allowlist content in either supported format.
func ParseAddressList(data []byte, isJSON bool) ([]common.Address, error) {
	trimmed := bytes.TrimSpace(data)
	if isJSON || bytes.HasPrefix(trimmed, []byte("[")) {
		var raw []string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode JSON address array: %w", err)
		}
		if len(raw) == 0 {
			return nil, fmt.Errorf("allowlist is empty: %w", merkle.ErrEmptyInput)
		}
		return types.ParseAddresses(raw)
	}

	var addrs []common.Address
	for i, line := range strings.Split(string(trimmed), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// trailing comments: "0xabc... # team wallet"
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		addr, err := types.ParseAddress(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		addrs = append(addrs, addr)
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("allowlist is empty: %w", merkle.ErrEmptyInput)
	}
	return addrs, nil
}

// SaveAddresses writes addresses as an indented JSON array of checksummed hex.
func SaveAddresses(path string, addrs []common.Address) error {
	data, err := json.MarshalIndent(types.AddressesToHex(addrs), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode allowlist: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write allowlist %s: %w", path, err)
	}
	return nil
}
