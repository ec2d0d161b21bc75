package descriptor

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sosthene00/bitcoin-pro/pkg/hdwallet"
)

func testMasterXprv(t *testing.T) string {
	t.Helper()

	master, err := hdkeychain.NewMaster(testSeed, &chaincfg.MainNetParams)
	require.NoError(t, err)
	return master.String()
}

func TestParsePubkey(t *testing.T) {
	compressedHex := testKey(t, 1).Identity()
	uncompressedHex := testKey(t, 1).Key.SerializeUncompressed()

	compressed, err := ParsePubkey(compressedHex)
	require.NoError(t, err)
	assert.False(t, compressed.Uncompressed)

	uncompressed, err := ParsePubkey(hex.EncodeToString(uncompressedHex))
	require.NoError(t, err)
	assert.True(t, uncompressed.Uncompressed)

	// both encodings of the same point share the identity but keep their
	// display form
	assert.Equal(t, compressed.Identity(), uncompressed.Identity())
	assert.NotEqual(t, compressed.String(), uncompressed.String())

	// the tracked encoding survives serialization
	serialized, err := uncompressed.SerializedAt(0)
	require.NoError(t, err)
	assert.Equal(t, uncompressedHex, serialized)
	serialized, err = compressed.SerializedAt(0)
	require.NoError(t, err)
	assert.Len(t, serialized, 33)

	_, err = ParsePubkey("not hex")
	assert.Error(t, err)
	_, err = ParsePubkey("0000")
	assert.Error(t, err)
}

func TestKeyOriginString(t *testing.T) {
	path, err := hdwallet.ParseDerivationPath("m/84'/0'/0'")
	require.NoError(t, err)

	origin := KeyOrigin{MasterFingerprint: 0xdeadbeef, DerivationPath: path}
	assert.Equal(t, "[deadbeef/84'/0'/0']", origin.String())

	key := testKey(t, 1)
	key.Origin = &origin
	assert.Equal(t, origin.String()+key.Identity(), key.String())
}

func TestXPubDerivableIdentity(t *testing.T) {
	components, err := hdwallet.NewDerivationComponents(
		hdwallet.DerivationComponentsOpts{
			DerivationPath: "m/84'/0'/0'/0",
			MasterKey:      testMasterXprv(t),
		},
	)
	require.NoError(t, err)

	derivable := &XPubDerivable{Components: components}
	assert.Nil(t, derivable.SingleKey())
	assert.Equal(t, components.Identity(), derivable.Identity())

	first, err := derivable.PubkeyAt(7)
	require.NoError(t, err)
	second, err := derivable.PubkeyAt(7)
	require.NoError(t, err)
	assert.Equal(t, first.SerializeCompressed(), second.SerializeCompressed())

	empty := &XPubDerivable{}
	_, err = empty.PubkeyAt(0)
	assert.EqualError(t, err, ErrEmptyKey.Error())
}
