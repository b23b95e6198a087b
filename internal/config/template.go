package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/bryanroy/anomalyscan/internal/model"
	"github.com/bryanroy/anomalyscan/internal/scan"
)

// ErrTemplateNotFound is returned when the template file does not exist.
var ErrTemplateNotFound = errors.New("template file not found")

// Template is a parsed scan template: the base spectrum to extend plus the
// scan configuration knobs.
type Template struct {
	// BaseSpectrum is the validated base spectrum.
	BaseSpectrum model.Spectrum

	// ScanConfig is the translated scanner configuration.
	ScanConfig scan.Config

	// Raw keeps the original scan_config knob map for echoing into exports.
	Raw json.RawMessage
}

// templateFile is the on-disk JSON schema.
type templateFile struct {
	BaseSpectrum []model.FermionDescriptor `json:"base_spectrum"`
	ScanConfig   templateScanConfig        `json:"scan_config"`
}

// templateScanConfig mirrors the knob map of the template format.
type templateScanConfig struct {
	Hypercharge   *templateHypercharge `json:"hypercharge"`
	SU3Rep        *templateRep         `json:"su3_rep"`
	SU2Rep        *templateRep         `json:"su2_rep"`
	EnabledBlocks []string             `json:"enabled_blocks"`
	BlockAPairs   *bool                `json:"scan_block_a_pairs"`
	Limit         int                  `json:"limit"`
	Workers       int                  `json:"workers"`
}

type templateHypercharge struct {
	KMax         int      `json:"k_max"`
	AbsMax       float64  `json:"abs_max"`
	CustomValues []string `json:"custom_values"`
	Range        []int    `json:"range"`
	Denominators []int    `json:"denominators"`
}

type templateRep struct {
	Values []int `json:"values"`
}

// LoadTemplate reads and validates a template file, translating its knobs
// into a scan.Config. Malformed descriptors or hypercharge strings surface
// here, before any candidates are generated.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided template path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, err
	}
	return ParseTemplate(data)
}

// ParseTemplate parses template JSON from memory.
func ParseTemplate(data []byte) (*Template, error) {
	var file templateFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid template JSON: %w", err)
	}

	base, err := model.SpectrumFromDescriptors(file.BaseSpectrum)
	if err != nil {
		return nil, fmt.Errorf("base spectrum: %w", err)
	}

	cfg := scan.DefaultConfig()
	tc := file.ScanConfig
	if tc.Hypercharge != nil {
		hc := tc.Hypercharge
		switch {
		case len(hc.CustomValues) > 0:
			values := make([]*big.Rat, 0, len(hc.CustomValues))
			for _, s := range hc.CustomValues {
				y, err := model.ParseHypercharge(s)
				if err != nil {
					return nil, fmt.Errorf("scan_config hypercharge: %w", err)
				}
				values = append(values, y)
			}
			cfg.Hypercharge.Values = values
		case len(hc.Range) == 2 && len(hc.Denominators) > 0:
			cfg.Hypercharge.RangeMin = hc.Range[0]
			cfg.Hypercharge.RangeMax = hc.Range[1]
			cfg.Hypercharge.Denominators = hc.Denominators
		default:
			cfg.Hypercharge.KMax = hc.KMax
			cfg.Hypercharge.AbsYMax = hc.AbsMax
		}
	}
	if tc.SU3Rep != nil {
		cfg.SU3Reps = tc.SU3Rep.Values
	}
	if tc.SU2Rep != nil {
		cfg.SU2Reps = tc.SU2Rep.Values
	}
	if len(tc.EnabledBlocks) > 0 {
		cfg.Blocks = nil
		for _, b := range tc.EnabledBlocks {
			cfg.Blocks = append(cfg.Blocks, scan.Block(b))
		}
	}
	if tc.BlockAPairs != nil {
		cfg.SeedPairsFromBlockA = *tc.BlockAPairs
	}
	cfg.Limit = tc.Limit
	cfg.Workers = tc.Workers

	raw, err := json.Marshal(file.ScanConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to re-serialize scan_config: %w", err)
	}

	return &Template{BaseSpectrum: base, ScanConfig: cfg, Raw: raw}, nil
}
