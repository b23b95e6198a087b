package rule

import (
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/bryanroy/anomalyscan/internal/scan"
)

const sampleRules = `
rule_sets:
  - name: minimal
    description: "Minimal extensions on the standard grid"
    blocks: ["A", "B"]
    constraints:
      hypercharge:
        type: grid
        k_max: 6
        denominator: 6
      su3_rep:
        values: [1, 3]
      su2_rep:
        values: [1, 2]
        forbidden_combinations:
          - su3: 3
            su2: 2
            hypercharge: "7/6"
  - name: leptonic
    description: "Color-singlet additions with explicit hypercharges"
    base_spectrum: standard_model_with_nu
    constraints:
      hypercharge:
        type: set
        values: ["-1/2", "1/2"]
      su3_rep:
        values: [1]
    symmetry_requirements:
      - type: parity
        pairs: ["L4:L4bar"]
    physics_motivated_sets:
      - name: higgsinos
        fermions:
          - name: Hu
            su3_rep: 1
            su2_rep: 2
            hypercharge: "1/2"
          - name: Hd
            su3_rep: 1
            su2_rep: 2
            hypercharge: "-1/2"
`

// TestParseRules tests the YAML schema end to end.
func TestParseRules(t *testing.T) {
	t.Parallel()

	loader, err := Parse([]byte(sampleRules))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rules := loader.Rules()
	if len(rules) != 2 {
		t.Fatalf("got %d rules, expected 2", len(rules))
	}
	if rules[0].Name != "minimal" || rules[1].Name != "leptonic" {
		t.Errorf("got order %q, %q", rules[0].Name, rules[1].Name)
	}

	t.Run("defaults applied", func(t *testing.T) {
		t.Parallel()
		minimal, err := loader.Rule("minimal")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if minimal.BaseSpectrum != "standard_model" {
			t.Errorf("got base %q, expected standard_model default", minimal.BaseSpectrum)
		}

		leptonic, err := loader.Rule("leptonic")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if leptonic.BaseSpectrum != "standard_model_with_nu" {
			t.Errorf("got base %q", leptonic.BaseSpectrum)
		}
		if len(leptonic.Blocks) != 3 {
			t.Errorf("got blocks %v, expected default A, B, C", leptonic.Blocks)
		}
	})

	t.Run("constraints parsed", func(t *testing.T) {
		t.Parallel()
		minimal, _ := loader.Rule("minimal")
		if minimal.Hypercharge == nil || minimal.Hypercharge.Kind != KindGrid {
			t.Fatal("expected grid hypercharge constraint")
		}
		if minimal.SU2 == nil || len(minimal.SU2.Forbidden) != 1 {
			t.Fatal("expected one forbidden combination")
		}
		combo := minimal.SU2.Forbidden[0]
		if combo.SU3 != 3 || combo.SU2 != 2 || combo.Hypercharge.Cmp(big.NewRat(7, 6)) != 0 {
			t.Errorf("got combo %+v", combo)
		}
	})

	t.Run("symmetries parsed", func(t *testing.T) {
		t.Parallel()
		leptonic, _ := loader.Rule("leptonic")
		if len(leptonic.Symmetries) != 1 {
			t.Fatalf("got %d symmetries, expected 1", len(leptonic.Symmetries))
		}
		sym := leptonic.Symmetries[0]
		if sym.Kind != SymmetryParity {
			t.Errorf("got kind %q", sym.Kind)
		}
		if len(sym.Pairs) != 1 || sym.Pairs[0].Left != "L4" || sym.Pairs[0].Right != "L4bar" {
			t.Errorf("got pairs %v", sym.Pairs)
		}
	})

	t.Run("unknown rule", func(t *testing.T) {
		t.Parallel()
		if _, err := loader.Rule("missing"); !errors.Is(err, ErrUnknownRule) {
			t.Errorf("got %v, expected ErrUnknownRule", err)
		}
	})
}

// TestParseErrors tests the configuration error taxonomy.
func TestParseErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			"missing rule_sets",
			`other_key: true`,
			ErrNoRuleSets,
		},
		{
			"unnamed rule",
			"rule_sets:\n  - description: anonymous\n",
			ErrUnnamedRule,
		},
		{
			"unknown constraint kind",
			"rule_sets:\n  - name: r\n    constraints:\n      hypercharge:\n        type: gaussian\n",
			ErrUnknownConstraintKind,
		},
		{
			"unknown symmetry kind",
			"rule_sets:\n  - name: r\n    symmetry_requirements:\n      - type: supersymmetry\n",
			ErrUnknownSymmetryKind,
		},
		{
			"malformed pair",
			"rule_sets:\n  - name: r\n    symmetry_requirements:\n      - type: parity\n        pairs: [\"justleft\"]\n",
			ErrMalformedConstraint,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tc.yaml))
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, expected %v", err, tc.wantErr)
			}
		})
	}
}

// TestLoadFile tests reading rules from disk.
func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(sampleRules), 0600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loader, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loader.Rules()) != 2 {
		t.Errorf("got %d rules, expected 2", len(loader.Rules()))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestScanConfigTranslation tests the rule-to-scanner mapping.
func TestScanConfigTranslation(t *testing.T) {
	t.Parallel()

	loader, err := Parse([]byte(sampleRules))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("native grid maps to k_max", func(t *testing.T) {
		t.Parallel()
		cfg, err := loader.ScanConfig("minimal")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Hypercharge.KMax != 6 {
			t.Errorf("got k_max %d, expected 6", cfg.Hypercharge.KMax)
		}
		if len(cfg.Hypercharge.Values) != 0 {
			t.Errorf("expected no explicit values, got %d", len(cfg.Hypercharge.Values))
		}
		if len(cfg.Blocks) != 2 || cfg.Blocks[0] != scan.BlockA || cfg.Blocks[1] != scan.BlockB {
			t.Errorf("got blocks %v", cfg.Blocks)
		}
		if cfg.Metadata["name"] != "minimal" {
			t.Errorf("got metadata %v", cfg.Metadata)
		}
	})

	t.Run("set maps to explicit values", func(t *testing.T) {
		t.Parallel()
		cfg, err := loader.ScanConfig("leptonic")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Hypercharge.Values) != 2 {
			t.Fatalf("got %d values, expected 2", len(cfg.Hypercharge.Values))
		}
		if len(cfg.SU3Reps) != 1 || cfg.SU3Reps[0] != 1 {
			t.Errorf("got SU(3) reps %v, expected [1]", cfg.SU3Reps)
		}
	})

	t.Run("grid with exclusions resolves to values", func(t *testing.T) {
		t.Parallel()
		excluding, err := Parse([]byte("rule_sets:\n  - name: r\n    constraints:\n      hypercharge:\n        type: grid\n        k_max: 2\n        exclude: [\"0\"]\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg, err := excluding.ScanConfig("r")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Hypercharge.Values) != 4 {
			t.Fatalf("got %d values, expected 4", len(cfg.Hypercharge.Values))
		}
		for _, v := range cfg.Hypercharge.Values {
			if v.Sign() == 0 {
				t.Error("excluded zero still present")
			}
		}
	})
}

// TestPhysicsSets tests conversion of pre-built sets to spectra.
func TestPhysicsSets(t *testing.T) {
	t.Parallel()

	loader, err := Parse([]byte(sampleRules))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sets, err := loader.PhysicsSets("leptonic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sets) != 1 {
		t.Fatalf("got %d sets, expected 1", len(sets))
	}
	if len(sets[0]) != 2 {
		t.Fatalf("got %d fermions, expected 2", len(sets[0]))
	}
	if sets[0][0].Name() != "Hu" || sets[0][1].Name() != "Hd" {
		t.Errorf("got names %q, %q", sets[0][0].Name(), sets[0][1].Name())
	}

	empty, err := loader.PhysicsSets("minimal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %d sets, expected 0", len(empty))
	}
}
