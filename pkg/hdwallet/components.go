package hdwallet

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// DerivationComponents is a derivation recipe split once, at construction,
// into a hardened branch and a normal terminal segment. Everything past the
// branch point is derivable from the branch extended public key alone, which
// is what allows batches of keys to be computed without any private material.
type DerivationComponents struct {
	masterXpub   *hdkeychain.ExtendedKey
	branchXpub   *hdkeychain.ExtendedKey
	branchPath   DerivationPath
	terminalPath DerivationPath
	indexRanges  *IndexRangeSet
}

// DerivationComponentsOpts is the struct given to the NewDerivationComponents
// method. MasterKey accepts both extended public and extended private key
// encodings; AccountKey is required only when the derivation path crosses a
// hardened boundary and MasterKey is public. IndexRanges may be nil.
type DerivationComponentsOpts struct {
	DerivationPath string
	MasterKey      string
	AccountKey     string
	IndexRanges    *IndexRangeSet
}

func (o DerivationComponentsOpts) validate() error {
	if len(o.MasterKey) <= 0 {
		return ErrNullMasterKey
	}
	if _, err := ParseDerivationPath(o.DerivationPath); err != nil {
		return err
	}
	return nil
}

// NewDerivationComponents builds the branch/terminal split for the given
// derivation recipe and resolves the branch-level extended public key from
// the provided key material.
func NewDerivationComponents(
	opts DerivationComponentsOpts,
) (*DerivationComponents, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	path, _ := ParseDerivationPath(opts.DerivationPath)
	branchPath, terminalPath, err := path.HardenedNormalSplit()
	if err != nil {
		return nil, err
	}

	masterKey, err := hdkeychain.NewKeyFromString(opts.MasterKey)
	if err != nil {
		return nil, fmt.Errorf("parsing master key: %w", err)
	}

	if masterKey.IsPrivate() {
		return componentsFromMasterPriv(
			masterKey, branchPath, terminalPath, opts.IndexRanges,
		)
	}

	if len(branchPath) <= 0 {
		return &DerivationComponents{
			masterXpub:   masterKey,
			branchXpub:   masterKey,
			branchPath:   branchPath,
			terminalPath: terminalPath,
			indexRanges:  opts.IndexRanges,
		}, nil
	}

	// a public-only master key cannot cross the hardened boundary, the
	// account-level key must be supplied independently
	if len(opts.AccountKey) <= 0 {
		return nil, ErrMissingAccountKey
	}
	branchXpub, err := hdkeychain.NewKeyFromString(opts.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("parsing account key: %w", err)
	}
	if branchXpub.IsPrivate() {
		return nil, ErrPrivateAccountKey
	}

	return &DerivationComponents{
		masterXpub:   masterKey,
		branchXpub:   branchXpub,
		branchPath:   branchPath,
		terminalPath: terminalPath,
		indexRanges:  opts.IndexRanges,
	}, nil
}

func componentsFromMasterPriv(
	masterPriv *hdkeychain.ExtendedKey,
	branchPath, terminalPath DerivationPath,
	indexRanges *IndexRangeSet,
) (*DerivationComponents, error) {
	masterXpub, err := masterPriv.Neuter()
	if err != nil {
		return nil, err
	}

	branchPriv := masterPriv
	for _, child := range branchPath {
		branchPriv, err = branchPriv.Derive(child)
		if err != nil {
			return nil, err
		}
	}
	branchXpub, err := branchPriv.Neuter()
	if err != nil {
		return nil, err
	}

	return &DerivationComponents{
		masterXpub:   masterXpub,
		branchXpub:   branchXpub,
		branchPath:   branchPath,
		terminalPath: terminalPath,
		indexRanges:  indexRanges,
	}, nil
}

// MasterXpub returns the master extended public key.
func (c *DerivationComponents) MasterXpub() *hdkeychain.ExtendedKey {
	return c.masterXpub
}

// BranchXpub returns the extended public key at the hardened boundary.
func (c *DerivationComponents) BranchXpub() *hdkeychain.ExtendedKey {
	return c.branchXpub
}

// BranchPath returns the hardened prefix of the derivation path.
func (c *DerivationComponents) BranchPath() DerivationPath {
	return c.branchPath
}

// TerminalPath returns the normal suffix of the derivation path.
func (c *DerivationComponents) TerminalPath() DerivationPath {
	return c.terminalPath
}

// IndexRanges returns the batch index ranges, nil if the recipe derives at
// any index.
func (c *DerivationComponents) IndexRanges() *IndexRangeSet {
	return c.indexRanges
}

// DerivationPath returns the full original path, branch plus terminal.
func (c *DerivationComponents) DerivationPath() DerivationPath {
	return c.branchPath.Extend(c.terminalPath...)
}

// DeriveTerminalKey computes the public key obtained by applying the terminal
// path and then the given variable index to the branch extended public key.
// Only public (non-hardened) child derivation is used.
func (c *DerivationComponents) DeriveTerminalKey(
	index uint32,
) (*btcec.PublicKey, error) {
	if index > MaxNormalIndex {
		return nil, ErrKeyDerivationOverflow
	}

	node := c.branchXpub
	for _, child := range c.terminalPath.Extend(index) {
		if child > MaxNormalIndex {
			return nil, ErrKeyDerivationOverflow
		}
		derived, err := node.Derive(child)
		if err != nil {
			return nil, fmt.Errorf("deriving child %d: %w", child, err)
		}
		node = derived
	}

	return node.ECPubKey()
}

// Identity is the recipe's identity string: master key plus branch and
// terminal paths. Two recipes deriving the same keys through different paths
// are distinct, since display and re-export must round-trip the original.
func (c *DerivationComponents) Identity() string {
	return fmt.Sprintf(
		"%s:%s:%s",
		c.masterXpub.String(), c.branchPath, c.terminalPath,
	)
}

// Equal reports whether two recipes share the same identity.
func (c *DerivationComponents) Equal(other *DerivationComponents) bool {
	if other == nil {
		return false
	}
	return c.Identity() == other.Identity()
}

// String returns a descriptor-like representation of the recipe, with the
// index range (or a wildcard) as the terminal step.
func (c *DerivationComponents) String() string {
	terminal := "*"
	if c.indexRanges != nil {
		terminal = c.indexRanges.String()
	}
	path := c.DerivationPath().String()
	if path == "" {
		return fmt.Sprintf("%s/%s", c.masterXpub, terminal)
	}
	return fmt.Sprintf(
		"%s%s/%s", c.masterXpub, path[1:], terminal,
	)
}
