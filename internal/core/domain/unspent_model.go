package domain

import (
	"github.com/google/uuid"

	"github.com/Sosthene00/bitcoin-pro/pkg/lookup"
)

// UnspentKey represents the ID of an Unspent, composed by its txid and vout.
type UnspentKey struct {
	TxID string
	VOut uint32
}

// Unspent is a resolved coin bound to the descriptor account it was found
// for, together with the derivation coordinates that produced its script.
type Unspent struct {
	TxID            string
	VOut            uint32
	Value           uint64
	ScriptPubKey    []byte
	AccountID       uuid.UUID
	DerivationIndex uint32
	Variant         string
	Confirmed       bool
}

// NewUnspentFromEntry maps a lookup engine entry to a stored Unspent.
func NewUnspentFromEntry(entry lookup.Entry, accountID uuid.UUID) Unspent {
	return Unspent{
		TxID:            entry.OutPoint.Hash,
		VOut:            entry.OutPoint.Index,
		Value:           entry.Value,
		ScriptPubKey:    entry.Script,
		AccountID:       accountID,
		DerivationIndex: entry.DerivationIndex,
		Variant:         string(entry.Variant),
		Confirmed:       entry.Confirmed,
	}
}

// Key returns the identity of the coin.
func (u *Unspent) Key() UnspentKey {
	return UnspentKey{
		TxID: u.TxID,
		VOut: u.VOut,
	}
}

// IsKeyEqual reports whether the coin has the given identity.
func (u *Unspent) IsKeyEqual(key UnspentKey) bool {
	return u.TxID == key.TxID && u.VOut == key.VOut
}
