package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/cfgexplorer/pkg/graph"
)

// hashKey keys an artifact as prefix:sha256(json(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// FunctionHash hashes the canonical JSON of one function. Artifacts keyed by
// it stay cached when other functions of the same document change, and a
// reformatted document file maps to the same hash.
func FunctionHash(fn *graph.FunctionDoc) (string, error) {
	data, err := json.Marshal(fn)
	if err != nil {
		return "", fmt.Errorf("hash function %s: %w", fn.Name, err)
	}
	return Hash(data), nil
}
