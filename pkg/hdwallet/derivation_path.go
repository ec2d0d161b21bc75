package hdwallet

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// DerivationPath is the internal representation of a hierarchical
// deterministic derivation path.
type DerivationPath []uint32

// ParseDerivationPath converts a derivation path string in the conventional
// m/i/i'/... notation to the internal binary representation. Both the
// apostrophe and the "h" suffix mark hardened indexes.
func ParseDerivationPath(strPath string) (DerivationPath, error) {
	var path DerivationPath

	elems := strings.Split(strPath, "/")
	switch {
	case strPath == "":
		return nil, ErrNullDerivationPath
	case containsEmptyString(elems):
		return nil, ErrMalformedDerivationPath
	case len(elems) < 2:
		return nil, ErrMalformedDerivationPath
	default:
		if strings.TrimSpace(elems[0]) == "m" {
			elems = elems[1:]
		}
	}

	// all remaining elems are relative, append one by one
	for _, elem := range elems {
		elem = strings.TrimSpace(elem)
		var value uint32

		if strings.HasSuffix(elem, "'") || strings.HasSuffix(elem, "h") {
			value = hdkeychain.HardenedKeyStart
			elem = strings.TrimSpace(elem[:len(elem)-1])
		}

		// use big int for conversion
		bigval, ok := new(big.Int).SetString(elem, 0)
		if !ok {
			return nil, fmt.Errorf("invalid elem '%s' in path", elem)
		}

		max := math.MaxUint32 - value
		if bigval.Sign() < 0 || bigval.Cmp(big.NewInt(int64(max))) > 0 {
			if value == 0 {
				return nil, fmt.Errorf("elem %v must be in range [0, %d]", bigval, max)
			}
			return nil, fmt.Errorf("elem %v must be in hardened range [0, %d]", bigval, max)
		}
		value += uint32(bigval.Uint64())

		path = append(path, value)
	}

	return path, nil
}

// String converts a binary derivation path to its canonical representation.
func (path DerivationPath) String() string {
	if len(path) <= 0 {
		return ""
	}

	result := "m"
	for _, component := range path {
		var hardened bool
		if component >= hdkeychain.HardenedKeyStart {
			component -= hdkeychain.HardenedKeyStart
			hardened = true
		}
		result = fmt.Sprintf("%s/%d", result, component)
		if hardened {
			result += "'"
		}
	}
	return result
}

// HardenedNormalSplit splits the path at the last hardened index into a
// hardened branch prefix and a normal terminal suffix. A path where a normal
// index is followed by a later hardened one cannot be split and yields
// ErrInvalidHardenedSplit.
func (path DerivationPath) HardenedNormalSplit() (
	DerivationPath, DerivationPath, error,
) {
	branch := make(DerivationPath, 0, len(path))
	terminal := make(DerivationPath, 0, len(path))

	for _, component := range path {
		if component >= hdkeychain.HardenedKeyStart {
			if len(terminal) > 0 {
				return nil, nil, ErrInvalidHardenedSplit
			}
			branch = append(branch, component)
			continue
		}
		terminal = append(terminal, component)
	}

	return branch, terminal, nil
}

// Extend returns a copy of the path with the given child indexes appended.
func (path DerivationPath) Extend(childs ...uint32) DerivationPath {
	extended := make(DerivationPath, 0, len(path)+len(childs))
	extended = append(extended, path...)
	extended = append(extended, childs...)
	return extended
}

func containsEmptyString(composedPath []string) bool {
	for _, s := range composedPath {
		if s == "" {
			return true
		}
	}
	return false
}
