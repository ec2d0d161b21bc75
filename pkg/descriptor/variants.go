package descriptor

import "strings"

// Variant is one of the standard output-script encodings.
type Variant string

const (
	// VariantBare is the raw single-key or multi-sig script, unwrapped.
	VariantBare Variant = "bare"
	// VariantHashed is the legacy p2pkh/p2sh wrapping.
	VariantHashed Variant = "hashed"
	// VariantNested is a native segwit program wrapped again in p2sh for
	// backward-compatible addresses.
	VariantNested Variant = "nested"
	// VariantSegwit is the native segwit witness program.
	VariantSegwit Variant = "segwit"
	// VariantTaproot is a key-path taproot output.
	VariantTaproot Variant = "taproot"
)

// variantOrder fixes the generation order of enabled variants.
var variantOrder = []Variant{
	VariantBare, VariantHashed, VariantNested, VariantSegwit, VariantTaproot,
}

// Variants is the set of independent switches selecting which script
// encodings a generator produces. At least one must be set for a generator to
// be usable; the struct itself does not enforce it, generation does.
type Variants struct {
	Bare    bool
	Hashed  bool
	Nested  bool
	Segwit  bool
	Taproot bool
}

// Any returns whether at least one variant is enabled.
func (v Variants) Any() bool {
	return v.Bare || v.Hashed || v.Nested || v.Segwit || v.Taproot
}

// Has returns whether the given variant is enabled.
func (v Variants) Has(variant Variant) bool {
	switch variant {
	case VariantBare:
		return v.Bare
	case VariantHashed:
		return v.Hashed
	case VariantNested:
		return v.Nested
	case VariantSegwit:
		return v.Segwit
	case VariantTaproot:
		return v.Taproot
	default:
		return false
	}
}

// Enabled returns the enabled variants in canonical generation order.
func (v Variants) Enabled() []Variant {
	enabled := make([]Variant, 0, len(variantOrder))
	for _, variant := range variantOrder {
		if v.Has(variant) {
			enabled = append(enabled, variant)
		}
	}
	return enabled
}

func (v Variants) String() string {
	names := make([]string, 0, len(variantOrder))
	for _, variant := range v.Enabled() {
		names = append(names, string(variant))
	}
	return strings.Join(names, "|")
}
