package esplora

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScriptHash(t *testing.T) {
	// sha256 of the empty script is
	// e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855,
	// the electrum convention reverses it
	assert.Equal(
		t,
		"55b852781b9995a44c939b64e441ae2724b96f99c8f4fb9a141cfc9842c4b0e3",
		scriptHash(nil),
	)

	// hashing is position sensitive, permuted scripts must not collide
	assert.NotEqual(
		t,
		scriptHash([]byte{0x51, 0x52}),
		scriptHash([]byte{0x52, 0x51}),
	)
}
