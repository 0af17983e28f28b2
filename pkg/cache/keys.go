package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data. Passage hashes are computed from
// the canonical JSON encoding.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey digests a passage hash and its options into "kind:<sha256>".
func hashKey(kind, passageHash string, opts any) string {
	h := sha256.New()
	h.Write([]byte(passageHash))
	h.Write([]byte{0})
	_ = json.NewEncoder(h).Encode(opts)
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// ReportKeyOpts holds the validation options that change a report.
type ReportKeyOpts struct {
	Linkage        bool `json:"linkage"`
	Multigraph     bool `json:"multigraph"`
	MaxDiagnostics int  `json:"max_diagnostics,omitempty"`
}

// ArtifactKeyOpts holds the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format    string   `json:"format"`
	NodeIDs   bool     `json:"node_ids,omitempty"`
	Highlight []string `json:"highlight,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ReportKey identifies the validation report for a passage hash.
	ReportKey(passageHash string, opts ReportKeyOpts) string

	// ArtifactKey identifies a rendered diagram for a passage hash.
	ArtifactKey(passageHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the options together with the passage hash.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ReportKey returns "report:<sha256>".
func (DefaultKeyer) ReportKey(passageHash string, opts ReportKeyOpts) string {
	return hashKey("report", passageHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(passageHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", passageHash, opts)
}

var _ Keyer = DefaultKeyer{}
