package model

import (
	"fmt"
	"math/big"
)

// Spectrum is an ordered sequence of fermions defining a model's matter
// content. Order is irrelevant to anomaly values (the sums commute) but is
// preserved for display and for the "new versus base" set difference in
// export files.
type Spectrum []Fermion

// Append returns a new Spectrum with the given fermions added at the end.
// The receiver is never modified, so a base spectrum can be extended by many
// candidates without copies interfering with each other.
func (s Spectrum) Append(fermions ...Fermion) Spectrum {
	out := make(Spectrum, 0, len(s)+len(fermions))
	out = append(out, s...)
	out = append(out, fermions...)
	return out
}

// Names returns the set of fermion names in the spectrum.
func (s Spectrum) Names() map[string]bool {
	names := make(map[string]bool, len(s))
	for _, f := range s {
		names[f.Name()] = true
	}
	return names
}

// NewAgainst returns the fermions whose names do not appear in the base
// spectrum, preserving order. This is the set difference used when exporting
// hits: the base spectrum is fixed per run, so name difference identifies
// the candidate additions.
func (s Spectrum) NewAgainst(base Spectrum) []Fermion {
	baseNames := base.Names()
	var out []Fermion
	for _, f := range s {
		if !baseNames[f.Name()] {
			out = append(out, f)
		}
	}
	return out
}

// Descriptors returns the serializable descriptor list for the spectrum.
func (s Spectrum) Descriptors() []FermionDescriptor {
	out := make([]FermionDescriptor, len(s))
	for i, f := range s {
		out[i] = f.Descriptor()
	}
	return out
}

// SpectrumFromDescriptors validates each descriptor and builds a Spectrum.
// The first invalid descriptor aborts with an error naming the position and
// the offending fermion; the caller decides whether to skip or fail the run.
func SpectrumFromDescriptors(descriptors []FermionDescriptor) (Spectrum, error) {
	s := make(Spectrum, 0, len(descriptors))
	for i, d := range descriptors {
		f, err := d.Fermion()
		if err != nil {
			return nil, fmt.Errorf("descriptor %d: %w", i, err)
		}
		s = append(s, f)
	}
	return s, nil
}

// StandardModel builds the canonical one-generation Standard Model fermion
// spectrum. The hypercharge convention is Q = T3 + Y.
//
//	Q_L (3,2)_{1/6}  left-handed quark doublet
//	u_R (3,1)_{2/3}  right-handed up quark
//	d_R (3,1)_{-1/3} right-handed down quark
//	L_L (1,2)_{-1/2} left-handed lepton doublet
//	e_R (1,1)_{-1}   right-handed electron
//
// When includeRightNeutrino is true, a sterile ν_R (1,1)_0 is appended; it
// carries no gauge quantum numbers, so the spectrum is anomaly-free either way.
func StandardModel(includeRightNeutrino bool) Spectrum {
	s := Spectrum{
		MustFermion("Q_L", 3, 2, big.NewRat(1, 6), LeftHanded, 1),
		MustFermion("u_R", 3, 1, big.NewRat(2, 3), RightHanded, 1),
		MustFermion("d_R", 3, 1, big.NewRat(-1, 3), RightHanded, 1),
		MustFermion("L_L", 1, 2, big.NewRat(-1, 2), LeftHanded, 1),
		MustFermion("e_R", 1, 1, big.NewRat(-1, 1), RightHanded, 1),
	}
	if includeRightNeutrino {
		s = append(s, MustFermion("nu_R", 1, 1, new(big.Rat), RightHanded, 1))
	}
	return s
}
