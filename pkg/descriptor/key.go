package descriptor

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/Sosthene00/bitcoin-pro/pkg/hdwallet"
)

// SingleSig is a single key source of a descriptor template: either a fixed
// public key used verbatim, or an extended-key recipe deriving one key per
// batch index. The variant set is closed.
type SingleSig interface {
	// SingleKey returns the fixed public key, or nil for derivable
	// variants.
	SingleKey() *btcec.PublicKey
	// PubkeyAt resolves the concrete key at the given batch index. Fixed
	// variants ignore the index and always return the same key.
	PubkeyAt(index uint32) (*btcec.PublicKey, error)
	// SerializedAt resolves the key at the given batch index and serializes
	// it in its tracked encoding. Derivable variants are always compressed.
	SerializedAt(index uint32) ([]byte, error)
	// Identity is the comparison key: normalized serialized bytes for
	// fixed keys, the derivation recipe for derivable ones. Two sources
	// deriving the same keys through different recipes are distinct.
	Identity() string

	fmt.Stringer
}

// KeyOrigin annotates a fixed key with the master it was derived from.
type KeyOrigin struct {
	MasterFingerprint uint32
	DerivationPath    hdwallet.DerivationPath
}

func (o KeyOrigin) String() string {
	path := o.DerivationPath.String()
	if len(path) > 0 {
		path = path[1:]
	}
	return fmt.Sprintf("[%08x%s]", o.MasterFingerprint, path)
}

// btcec only exports the compressed length.
const pubKeyBytesLenUncompressed = 65

// Pubkey is the fixed-key variant of SingleSig.
type Pubkey struct {
	Key          *btcec.PublicKey
	Uncompressed bool
	Origin       *KeyOrigin
}

// ParsePubkey decodes a standard compressed or uncompressed public key from
// its hex encoding.
func ParsePubkey(keyHex string) (*Pubkey, error) {
	buf, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	key, err := btcec.ParsePubKey(buf)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	return &Pubkey{
		Key:          key,
		Uncompressed: len(buf) == pubKeyBytesLenUncompressed,
	}, nil
}

func (p *Pubkey) SingleKey() *btcec.PublicKey {
	return p.Key
}

func (p *Pubkey) PubkeyAt(_ uint32) (*btcec.PublicKey, error) {
	if p.Key == nil {
		return nil, ErrEmptyKey
	}
	return p.Key, nil
}

func (p *Pubkey) SerializedAt(_ uint32) ([]byte, error) {
	if p.Key == nil {
		return nil, ErrEmptyKey
	}
	if p.Uncompressed {
		return p.Key.SerializeUncompressed(), nil
	}
	return p.Key.SerializeCompressed(), nil
}

func (p *Pubkey) Identity() string {
	if p.Key == nil {
		return ""
	}
	return hex.EncodeToString(p.Key.SerializeCompressed())
}

func (p *Pubkey) String() string {
	if p.Key == nil {
		return ""
	}
	serialized := p.Key.SerializeCompressed()
	if p.Uncompressed {
		serialized = p.Key.SerializeUncompressed()
	}
	if p.Origin != nil {
		return p.Origin.String() + hex.EncodeToString(serialized)
	}
	return hex.EncodeToString(serialized)
}

// XPubDerivable is the extended-key variant of SingleSig.
type XPubDerivable struct {
	Components *hdwallet.DerivationComponents
}

func (x *XPubDerivable) SingleKey() *btcec.PublicKey {
	return nil
}

func (x *XPubDerivable) PubkeyAt(index uint32) (*btcec.PublicKey, error) {
	if x.Components == nil {
		return nil, ErrEmptyKey
	}
	return x.Components.DeriveTerminalKey(index)
}

func (x *XPubDerivable) SerializedAt(index uint32) ([]byte, error) {
	pubkey, err := x.PubkeyAt(index)
	if err != nil {
		return nil, err
	}
	return pubkey.SerializeCompressed(), nil
}

func (x *XPubDerivable) Identity() string {
	if x.Components == nil {
		return ""
	}
	return x.Components.Identity()
}

func (x *XPubDerivable) String() string {
	if x.Components == nil {
		return ""
	}
	return x.Components.String()
}
