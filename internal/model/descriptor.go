package model

// FermionDescriptor is the serializable form of a Fermion used in template
// files, result files, and rule files. Hypercharge travels as an exact
// "n/d" string so that JSON and YAML round trips never lose precision.
//
// Chirality and Generations carry the usual defaults (+1 and 1) when omitted,
// matching the input formats accepted on the template boundary.
type FermionDescriptor struct {
	Name        string `json:"name" yaml:"name"`
	SU3Rep      int    `json:"su3_rep" yaml:"su3_rep"`
	SU2Rep      int    `json:"su2_rep" yaml:"su2_rep"`
	Hypercharge string `json:"hypercharge" yaml:"hypercharge"`
	Chirality   int    `json:"chirality,omitempty" yaml:"chirality,omitempty"`
	Generations int    `json:"generations,omitempty" yaml:"generations,omitempty"`
}

// Fermion validates the descriptor and builds the immutable Fermion value.
// Missing chirality defaults to left-handed; missing generations defaults to 1.
func (d FermionDescriptor) Fermion() (Fermion, error) {
	y, err := ParseHypercharge(d.Hypercharge)
	if err != nil {
		return Fermion{}, err
	}
	chirality := d.Chirality
	if chirality == 0 {
		chirality = LeftHanded
	}
	generations := d.Generations
	if generations == 0 {
		generations = 1
	}
	return NewFermion(d.Name, d.SU3Rep, d.SU2Rep, y, chirality, generations)
}
