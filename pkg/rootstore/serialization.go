package rootstore

import (
	"encoding/json"
	"fmt"
)

// MarshalRootVersion serializes a RootVersion to JSON bytes.
func MarshalRootVersion(rv *RootVersion) ([]byte, error) {
	if rv == nil {
		return nil, fmt.Errorf("cannot marshal nil RootVersion")
	}

	data, err := json.Marshal(rv)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal RootVersion to JSON: %w", err)
	}

	return data, nil
}

// UnmarshalRootVersion deserializes a RootVersion from JSON bytes.
func UnmarshalRootVersion(data []byte) (*RootVersion, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot unmarshal empty data")
	}

	var rv RootVersion
	if err := json.Unmarshal(data, &rv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON to RootVersion: %w", err)
	}

	return &rv, nil
}
