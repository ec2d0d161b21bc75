package explorer

// Utxo represents an unspent transaction output as reported by a chain index.
type Utxo interface {
	Hash() string
	Index() uint32
	Value() uint64
	Script() []byte
	IsConfirmed() bool
}

// Service is the representation of a chain index that resolves output scripts
// to the coins currently locked by them. Implementations are expected to be
// safe for concurrent use.
type Service interface {
	// GetUnspentsForScript fetches the utxos currently locked by the given
	// scriptPubKey.
	GetUnspentsForScript(script []byte) (unspents []Utxo, err error)
	// GetUnspentsForScripts fetches the utxos of the given list of
	// scriptPubKeys.
	GetUnspentsForScripts(scripts [][]byte) (unspents []Utxo, err error)
	// GetTransactionHex fetches the transaction in hex format given its hash.
	GetTransactionHex(txid string) (txhex string, err error)
	// IsTransactionConfirmed returns whether the tx identified by its hash
	// has been included in the blockchain.
	IsTransactionConfirmed(txid string) (confirmed bool, err error)
	// GetBlockHeight returns the current tip height of the blockchain.
	GetBlockHeight() (int, error)
}
