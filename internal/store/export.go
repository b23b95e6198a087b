package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bryanroy/anomalyscan/internal/model"
)

// ExportModel is one anomaly-free hit in a run export.
type ExportModel struct {
	// Description is the stage tag for the hit, e.g. "Vector-like pair: (3, 2)_1/6".
	Description string `json:"description"`

	// Signature lists the machine-readable "(su3,su2,Y,chirality)" tuples of
	// the fermions that are new relative to the base spectrum.
	Signature []string `json:"signature"`

	// Fermions is the full spectrum, base plus additions.
	Fermions []model.FermionDescriptor `json:"fermions"`

	// IsAnomalyFree is always true for exported models; kept for parity with
	// the per-hit result files.
	IsAnomalyFree bool `json:"is_anomaly_free"`
}

// ExportDocument is the JSON document summarizing all hits from one run.
type ExportDocument struct {
	// ScanConfig echoes the configuration the run used.
	ScanConfig any `json:"scan_config"`

	// BaseSpectrum is the descriptor form of the base spectrum.
	BaseSpectrum []model.FermionDescriptor `json:"base_spectrum"`

	// AnomalyFreeModels lists every recorded hit.
	AnomalyFreeModels []ExportModel `json:"anomaly_free_models"`
}

// BuildExport assembles the export document for a run. For each hit, the
// fermions new relative to the base spectrum (by name set difference) supply
// the machine signature.
func BuildExport(config any, base model.Spectrum, hits []model.ScanResult) ExportDocument {
	doc := ExportDocument{
		ScanConfig:        config,
		BaseSpectrum:      base.Descriptors(),
		AnomalyFreeModels: make([]ExportModel, 0, len(hits)),
	}
	for _, hit := range hits {
		added := hit.Spectrum.NewAgainst(base)
		signature := make([]string, 0, len(added))
		for _, f := range added {
			signature = append(signature, f.Signature())
		}
		doc.AnomalyFreeModels = append(doc.AnomalyFreeModels, ExportModel{
			Description:   hit.Description,
			Signature:     signature,
			Fermions:      hit.Spectrum.Descriptors(),
			IsAnomalyFree: true,
		})
	}
	return doc
}

// WriteExport writes the export document as indented JSON to path.
func WriteExport(path string, doc ExportDocument) error {
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize export document: %w", err)
	}
	if err := os.WriteFile(path, append(body, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	return nil
}
