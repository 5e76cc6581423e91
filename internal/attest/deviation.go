package attest

import "github.com/FocuswithJustin/loanspell/core/edit"

// Deviation is one spelling edit found in an attestation, together with the
// attestation it came from.
type Deviation struct {
	edit.Edit
	Record Record

	// Similarity is the aligner's 2*M/T ratio between the canonical form and
	// the cleaned orthography.
	Similarity float64

	// ExcludedBy names the morphology rule that matched the edit, or is empty
	// for a genuine deviation.
	ExcludedBy string
}
