package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainGraph is the domain prefix for content-addressed graph identity.
// Version suffix enables future algorithm migration.
const DomainGraph = "tidewater/graph/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data); the null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ContentID computes the content-addressed identity of the graph over
// its canonical document bytes. Two graphs that serialize identically
// share an id; the artifact store keys on it.
func (g *Graph) ContentID() (string, error) {
	data, err := g.MarshalCanonical()
	if err != nil {
		return "", fmt.Errorf("ContentID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainGraph, data), nil
}

// DocumentID computes the content-addressed identity of an
// already-serialized document, e.g. one loaded from disk.
func DocumentID(document []byte) string {
	return hashWithDomain(DomainGraph, document)
}
