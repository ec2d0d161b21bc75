package domain

import (
	"github.com/Sosthene00/bitcoin-pro/pkg/descriptor"
	"github.com/Sosthene00/bitcoin-pro/pkg/hdwallet"
)

// KeyRecipe is the serializable form of a descriptor key source. Exactly one
// of the two shapes is populated: a fixed public key (PubkeyHex) or an
// extended key recipe (DerivationPath plus MasterKey, optionally AccountKey
// and IndexRanges).
type KeyRecipe struct {
	PubkeyHex      string
	DerivationPath string
	MasterKey      string
	AccountKey     string
	IndexRanges    string
}

// IsDerivable reports whether the recipe derives one key per index rather
// than holding a fixed key.
func (r KeyRecipe) IsDerivable() bool {
	return len(r.MasterKey) > 0
}

// Validate checks the recipe shape and that its key material parses.
func (r KeyRecipe) Validate() error {
	if len(r.PubkeyHex) <= 0 && !r.IsDerivable() {
		return ErrNullKeyRecipe
	}
	if len(r.PubkeyHex) > 0 && r.IsDerivable() {
		return ErrAmbiguousKeyRecipe
	}
	_, err := r.SingleSig()
	return err
}

// SingleSig reconstructs the live key source from the stored recipe.
func (r KeyRecipe) SingleSig() (descriptor.SingleSig, error) {
	if !r.IsDerivable() {
		return descriptor.ParsePubkey(r.PubkeyHex)
	}

	ranges, err := r.Ranges()
	if err != nil {
		return nil, err
	}
	components, err := hdwallet.NewDerivationComponents(
		hdwallet.DerivationComponentsOpts{
			DerivationPath: r.DerivationPath,
			MasterKey:      r.MasterKey,
			AccountKey:     r.AccountKey,
			IndexRanges:    ranges,
		},
	)
	if err != nil {
		return nil, err
	}
	return &descriptor.XPubDerivable{Components: components}, nil
}

// Ranges parses the stored index ranges, nil when none are set.
func (r KeyRecipe) Ranges() (*hdwallet.IndexRangeSet, error) {
	if len(r.IndexRanges) <= 0 {
		return nil, nil
	}
	return hdwallet.ParseIndexRanges(r.IndexRanges)
}
