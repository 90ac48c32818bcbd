package plancache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"ai-retirement-be/pkg/tooldata"
)

// Signature computes the canonical hash of a snapshot. The snapshot is
// round-tripped through a generic value so maps serialize with sorted keys;
// two snapshots with identical content hash identically regardless of the key
// insertion order of the raw input they came from.
func Signature(snapshot *tooldata.ToolSnapshot) (string, error) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("canonicalize snapshot: %w", err)
	}

	canonical, err := json.Marshal(generic)
	if err != nil {
		return "", fmt.Errorf("marshal canonical form: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return fmt.Sprintf("%x", sum), nil
}
