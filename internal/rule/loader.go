package rule

import (
	"errors"
	"fmt"
	"math/big"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bryanroy/anomalyscan/internal/model"
	"github.com/bryanroy/anomalyscan/internal/scan"
)

// ErrNoRuleSets is returned when the YAML file lacks the rule_sets key.
var ErrNoRuleSets = errors.New("rule file must contain a rule_sets list")

// YAML schema types. The file-level structure stays in unexported types so
// the parsed Rule values are the only public surface.

type ruleFile struct {
	RuleSets []ruleYAML `yaml:"rule_sets"`
}

type ruleYAML struct {
	Name              string            `yaml:"name"`
	Description       string            `yaml:"description"`
	BaseSpectrum      string            `yaml:"base_spectrum"`
	Blocks            []string          `yaml:"blocks"`
	Constraints       *constraintsYAML  `yaml:"constraints"`
	Symmetries        []symmetryYAML    `yaml:"symmetry_requirements"`
	PhysicsSets       []physicsSetYAML  `yaml:"physics_motivated_sets"`
	Extra             map[string]any    `yaml:",inline"`
}

type constraintsYAML struct {
	Hypercharge *hyperchargeYAML `yaml:"hypercharge"`
	SU3Rep      *repYAML         `yaml:"su3_rep"`
	SU2Rep      *repYAML         `yaml:"su2_rep"`
}

type hyperchargeYAML struct {
	Type         string `yaml:"type"`
	Values       []any  `yaml:"values"`
	Range        []any  `yaml:"range"`
	Denominators []int  `yaml:"denominators"`
	KMax         int    `yaml:"k_max"`
	Denominator  int    `yaml:"denominator"`
	Exclude      []any  `yaml:"exclude"`
}

type repYAML struct {
	Values    []int       `yaml:"values"`
	Forbidden []comboYAML `yaml:"forbidden_combinations"`
}

type comboYAML struct {
	SU3         int `yaml:"su3"`
	SU2         int `yaml:"su2"`
	Hypercharge any `yaml:"hypercharge"`
}

type symmetryYAML struct {
	Type        string         `yaml:"type"`
	Pairs       []string       `yaml:"pairs"`
	GroupAction map[string]any `yaml:"group_action"`
	Constraints map[string]any `yaml:"constraints"`
}

type physicsSetYAML struct {
	Name     string                    `yaml:"name"`
	Fermions []model.FermionDescriptor `yaml:"fermions"`
}

// Loader holds the rules parsed from one YAML file.
type Loader struct {
	rules map[string]Rule
	order []string
}

// LoadFile parses a rule file from disk. A missing file, invalid YAML, an
// unknown constraint kind, or a malformed constraint all surface here,
// before any candidate generation happens.
func LoadFile(path string) (*Loader, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided rule path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}
	loader, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rule file %s: %w", path, err)
	}
	return loader, nil
}

// Parse parses rule YAML from memory.
func Parse(data []byte) (*Loader, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if len(file.RuleSets) == 0 {
		return nil, ErrNoRuleSets
	}

	loader := &Loader{rules: make(map[string]Rule, len(file.RuleSets))}
	for _, raw := range file.RuleSets {
		parsed, err := parseRule(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := loader.rules[parsed.Name]; !dup {
			loader.order = append(loader.order, parsed.Name)
		}
		loader.rules[parsed.Name] = parsed
	}
	return loader, nil
}

// parseRule converts one YAML rule set into a Rule.
func parseRule(raw ruleYAML) (Rule, error) {
	if raw.Name == "" {
		return Rule{}, ErrUnnamedRule
	}

	r := Rule{
		Name:         raw.Name,
		Description:  raw.Description,
		BaseSpectrum: raw.BaseSpectrum,
		Blocks:       raw.Blocks,
		Metadata:     raw.Extra,
	}
	if r.BaseSpectrum == "" {
		r.BaseSpectrum = "standard_model"
	}
	if len(r.Blocks) == 0 {
		r.Blocks = []string{"A", "B", "C"}
	}

	if raw.Constraints != nil {
		if raw.Constraints.Hypercharge != nil {
			hc, err := parseHypercharge(*raw.Constraints.Hypercharge)
			if err != nil {
				return Rule{}, fmt.Errorf("rule %q: hypercharge: %w", raw.Name, err)
			}
			r.Hypercharge = &hc
		}
		if raw.Constraints.SU3Rep != nil {
			rc, err := parseRep(*raw.Constraints.SU3Rep)
			if err != nil {
				return Rule{}, fmt.Errorf("rule %q: su3_rep: %w", raw.Name, err)
			}
			r.SU3 = &rc
		}
		if raw.Constraints.SU2Rep != nil {
			rc, err := parseRep(*raw.Constraints.SU2Rep)
			if err != nil {
				return Rule{}, fmt.Errorf("rule %q: su2_rep: %w", raw.Name, err)
			}
			r.SU2 = &rc
		}
	}

	for _, sym := range raw.Symmetries {
		parsed, err := parseSymmetry(sym)
		if err != nil {
			return Rule{}, fmt.Errorf("rule %q: %w", raw.Name, err)
		}
		r.Symmetries = append(r.Symmetries, parsed)
	}

	for _, set := range raw.PhysicsSets {
		fermions := make([]model.Fermion, 0, len(set.Fermions))
		for _, d := range set.Fermions {
			f, err := d.Fermion()
			if err != nil {
				return Rule{}, fmt.Errorf("rule %q: physics set %q: %w", raw.Name, set.Name, err)
			}
			fermions = append(fermions, f)
		}
		if len(fermions) > 0 {
			r.PhysicsSets = append(r.PhysicsSets, PhysicsSet{Name: set.Name, Fermions: fermions})
		}
	}

	return r, nil
}

// parseHypercharge builds the tagged constraint from its YAML form.
func parseHypercharge(raw hyperchargeYAML) (HyperchargeConstraint, error) {
	kind := ConstraintKind(raw.Type)
	if kind == "" {
		kind = KindRange
	}

	hc := HyperchargeConstraint{Kind: kind}
	var err error

	switch kind {
	case KindExact, KindSet:
		hc.Values, err = parseFractions(raw.Values)
		if err != nil {
			return HyperchargeConstraint{}, err
		}

	case KindInteger, KindRational, KindRange:
		if len(raw.Range) != 2 {
			return HyperchargeConstraint{}, fmt.Errorf("%w: %s constraint requires range: [lo, hi]", ErrMalformedConstraint, kind)
		}
		if hc.Lo, err = parseFraction(raw.Range[0]); err != nil {
			return HyperchargeConstraint{}, err
		}
		if hc.Hi, err = parseFraction(raw.Range[1]); err != nil {
			return HyperchargeConstraint{}, err
		}
		hc.Denominators = raw.Denominators

	case KindGrid:
		hc.KMax = raw.KMax
		hc.Denominator = raw.Denominator

	default:
		return HyperchargeConstraint{}, fmt.Errorf("%w: %q", ErrUnknownConstraintKind, raw.Type)
	}

	if hc.Exclude, err = parseFractions(raw.Exclude); err != nil {
		return HyperchargeConstraint{}, err
	}
	return hc, nil
}

// parseRep builds a representation constraint from its YAML form.
func parseRep(raw repYAML) (RepConstraint, error) {
	rc := RepConstraint{Allowed: raw.Values}
	for _, combo := range raw.Forbidden {
		y, err := parseFraction(combo.Hypercharge)
		if err != nil {
			return RepConstraint{}, err
		}
		rc.Forbidden = append(rc.Forbidden, ForbiddenCombo{
			SU3:         combo.SU3,
			SU2:         combo.SU2,
			Hypercharge: y,
		})
	}
	return rc, nil
}

// parseSymmetry builds a symmetry requirement from its YAML form.
func parseSymmetry(raw symmetryYAML) (SymmetryRequirement, error) {
	kind := SymmetryKind(raw.Type)
	if !knownSymmetryKinds[kind] {
		return SymmetryRequirement{}, fmt.Errorf("%w: %q", ErrUnknownSymmetryKind, raw.Type)
	}

	req := SymmetryRequirement{
		Kind:        kind,
		GroupAction: raw.GroupAction,
		Constraints: raw.Constraints,
	}
	for _, p := range raw.Pairs {
		pair, err := parseNamePair(p)
		if err != nil {
			return SymmetryRequirement{}, err
		}
		req.Pairs = append(req.Pairs, pair)
	}
	return req, nil
}

// parseFractions parses a list of YAML fraction values.
func parseFractions(raw []any) ([]*big.Rat, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]*big.Rat, 0, len(raw))
	for _, v := range raw {
		r, err := parseFraction(v)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Rules returns the parsed rules in file order.
func (l *Loader) Rules() []Rule {
	out := make([]Rule, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.rules[name])
	}
	return out
}

// Rule returns the named rule.
func (l *Loader) Rule(name string) (Rule, error) {
	r, ok := l.rules[name]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return r, nil
}

// ScanConfig translates a named rule into the scanner configuration.
//
// The grid kind on the standard /6 lattice maps directly onto the scanner's
// native grid; every other kind (and grids on other lattices) resolves to an
// explicit value list, exclusions already applied, so the scanner never
// needs to understand constraint kinds.
func (l *Loader) ScanConfig(name string) (scan.Config, error) {
	r, err := l.Rule(name)
	if err != nil {
		return scan.Config{}, err
	}

	cfg := scan.DefaultConfig()
	cfg.Blocks = nil
	for _, b := range r.Blocks {
		cfg.Blocks = append(cfg.Blocks, scan.Block(b))
	}

	if r.Hypercharge != nil {
		hc := *r.Hypercharge
		if hc.Kind == KindGrid && (hc.Denominator == 0 || hc.Denominator == scan.GridDenominator) && len(hc.Exclude) == 0 {
			cfg.Hypercharge.KMax = hc.KMax
		} else {
			values, err := hc.Generate()
			if err != nil {
				return scan.Config{}, fmt.Errorf("rule %q: %w", name, err)
			}
			cfg.Hypercharge.Values = values
		}
	}

	if r.SU3 != nil {
		cfg.SU3Reps = r.SU3.Allowed
	}
	if r.SU2 != nil {
		cfg.SU2Reps = r.SU2.Allowed
	}

	cfg.Metadata = map[string]string{
		"name":          r.Name,
		"description":   r.Description,
		"base_spectrum": r.BaseSpectrum,
	}
	return cfg, nil
}

// PhysicsSets returns the pre-built fermion sets of a named rule as spectra
// ready to hand to Scanner.TestPhysicsSets.
func (l *Loader) PhysicsSets(name string) ([]model.Spectrum, error) {
	r, err := l.Rule(name)
	if err != nil {
		return nil, err
	}
	sets := make([]model.Spectrum, 0, len(r.PhysicsSets))
	for _, set := range r.PhysicsSets {
		sets = append(sets, model.Spectrum(set.Fermions))
	}
	return sets, nil
}
