// Package rule translates named, human-authored search policies from YAML
// files into scanner configuration.
//
// A rule file carries a list of rule sets, each naming a base spectrum, the
// enabled search blocks, constraint specifications for hypercharge and the
// representation groups, optional symmetry requirements, and optional
// pre-built physics-motivated fermion sets. The core scanner consumes only
// the resolved scan.Config and the fermion sets; everything else stays on
// this side of the boundary.
//
// Design decision: Hypercharge constraints are a closed tagged-variant type
// discriminated by Kind, with one exhaustive switch generating values.
// Symmetry requirements are validated post hoc against a spectrum; they are
// never enforced during candidate generation.
package rule
