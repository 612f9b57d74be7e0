package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// LayoutSchema is bumped whenever the layout format or algorithm changes so
// that stale entries are never served.
const LayoutSchema = 1

// LayoutKeyOpts holds the inputs besides the request itself that affect a
// cached layout.
type LayoutKeyOpts struct {
	Schema int `json:"schema"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout computed for requestHash.
	LayoutKey(requestHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer builds keys of the form "layout:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(requestHash string, opts LayoutKeyOpts) string {
	if opts.Schema == 0 {
		opts.Schema = LayoutSchema
	}
	return hashKey("layout", requestHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashJSON hashes the JSON encoding of v. Map keys are sorted by
// encoding/json, so equal values hash equally.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}
