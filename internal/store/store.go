package store

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/bryanroy/anomalyscan/internal/model"
)

// hashPrefixLen is the number of hex characters of the content hash used in
// identifiers and filenames. Ten characters keep names short while making
// collisions within a single scan run implausible.
const hashPrefixLen = 10

// Sink receives anomaly-free spectra discovered by the scanner.
//
// Persist stores the spectrum under the given human-readable tag and returns
// the identifier it was stored as. Implementations must be safe for
// concurrent use: the exhaustive vector-like block may persist hits from
// several workers at once.
type Sink interface {
	Persist(spectrum model.Spectrum, tag string) (string, error)
}

// resultFile is the serialized form of one persisted hit.
type resultFile struct {
	Tag           string                    `json:"tag"`
	IsAnomalyFree bool                      `json:"is_anomaly_free"`
	Fermions      []model.FermionDescriptor `json:"fermions"`
}

// CanonicalJSON serializes a spectrum to its canonical byte form: a JSON
// array of per-fermion objects with alphabetically sorted keys and exact
// rational hypercharge strings. Two spectra with the same content always
// produce the same bytes, whatever code path built them.
func CanonicalJSON(spectrum model.Spectrum) ([]byte, error) {
	// encoding/json sorts map keys, which gives the field-sorted property.
	canonical := make([]map[string]any, 0, len(spectrum))
	for _, f := range spectrum {
		canonical = append(canonical, map[string]any{
			"name":        f.Name(),
			"su3_rep":     f.SU3Rep(),
			"su2_rep":     f.SU2Rep(),
			"hypercharge": model.FormatHypercharge(f.Hypercharge()),
			"chirality":   f.Chirality(),
			"generations": f.Generations(),
		})
	}
	return json.Marshal(canonical)
}

// ContentHash returns the short content hash of a spectrum's canonical form.
func ContentHash(spectrum model.Spectrum) (string, error) {
	canonical, err := CanonicalJSON(spectrum)
	if err != nil {
		return "", fmt.Errorf("failed to serialize spectrum: %w", err)
	}
	sum := sha3.Sum256(canonical)
	return hex.EncodeToString(sum[:])[:hashPrefixLen], nil
}

// encodeResult renders the stored file body for one hit.
func encodeResult(spectrum model.Spectrum, tag string) ([]byte, error) {
	body, err := json.MarshalIndent(resultFile{
		Tag:           tag,
		IsAnomalyFree: true,
		Fermions:      spectrum.Descriptors(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize result for tag %q: %w", tag, err)
	}
	return append(body, '\n'), nil
}
