package descriptor

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
)

// Generator couples a descriptor template with the set of script variants to
// produce for it. Generators are immutable values, callers replace them
// instead of mutating.
type Generator struct {
	Template Template
	Variants Variants
}

// ScriptTemplate is one concrete output script produced by a generator.
type ScriptTemplate struct {
	Variant Variant
	Script  []byte
}

func (g Generator) String() string {
	if g.Template == nil {
		return ""
	}
	return fmt.Sprintf("%s [%s]", g.Template, g.Variants)
}

// Scripts produces the scripts of the template at batch position 0. For
// templates made of fixed keys only, the position is irrelevant.
func (g Generator) Scripts() ([]ScriptTemplate, error) {
	return g.ScriptsAt(0)
}

// ScriptsAt resolves every key source of the template at the given batch
// index and produces one concrete scriptPubKey per enabled variant, in
// bare, hashed, nested, segwit, taproot order.
func (g Generator) ScriptsAt(index uint32) ([]ScriptTemplate, error) {
	if !g.Variants.Any() {
		return nil, ErrNoVariantsEnabled
	}

	switch template := g.Template.(type) {
	case SingleSigTemplate:
		return g.singleSigScripts(template, index)
	case MultiSigTemplate:
		return g.multiSigScripts(template, index)
	case ScriptedTemplate:
		return g.scriptedScripts(template)
	case nil:
		return nil, ErrEmptyKey
	default:
		return nil, NotYetSupportedError{
			Feature: fmt.Sprintf("%s templates", template.TypeName()),
		}
	}
}

func (g Generator) singleSigScripts(
	template SingleSigTemplate, index uint32,
) ([]ScriptTemplate, error) {
	if template.Key == nil {
		return nil, ErrEmptyKey
	}
	pubkey, err := template.Key.PubkeyAt(index)
	if err != nil {
		return nil, err
	}
	// bare and hashed embed the tracked encoding of the key, witness
	// programs always commit to the compressed one
	serialized, err := template.Key.SerializedAt(index)
	if err != nil {
		return nil, err
	}
	keyHash := btcutil.Hash160(serialized)
	witnessKeyHash := btcutil.Hash160(pubkey.SerializeCompressed())

	scripts := make([]ScriptTemplate, 0, len(variantOrder))
	for _, variant := range g.Variants.Enabled() {
		var script []byte
		var err error

		switch variant {
		case VariantBare:
			script, err = payToPubkeyScript(serialized)
		case VariantHashed:
			script, err = payToPubkeyHashScript(keyHash)
		case VariantNested:
			witnessProg, werr := witnessKeyHashScript(witnessKeyHash)
			if werr != nil {
				return nil, werr
			}
			script, err = payToScriptHashScript(witnessProg)
		case VariantSegwit:
			script, err = witnessKeyHashScript(witnessKeyHash)
		case VariantTaproot:
			script, err = taprootScript(
				txscript.ComputeTaprootKeyNoScript(pubkey),
			)
		}
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, ScriptTemplate{variant, script})
	}
	return scripts, nil
}

func (g Generator) multiSigScripts(
	template MultiSigTemplate, index uint32,
) ([]ScriptTemplate, error) {
	if err := validateKeyset(template); err != nil {
		return nil, err
	}
	if g.Variants.Taproot {
		return nil, NotYetSupportedError{Feature: "taproot multisig"}
	}

	keys := make([][]byte, 0, len(template.Pubkeys))
	for _, source := range template.Pubkeys {
		pubkey, err := source.PubkeyAt(index)
		if err != nil {
			return nil, err
		}
		keys = append(keys, pubkey.SerializeCompressed())
	}
	if template.Reorder {
		// BIP67-style canonical ordering: logically identical signer sets
		// always assemble to byte-identical scripts
		sort.Slice(keys, func(i, j int) bool {
			return bytes.Compare(keys[i], keys[j]) < 0
		})
	}

	redeem, err := multiSigScript(template.Threshold, keys)
	if err != nil {
		return nil, err
	}

	scripts := make([]ScriptTemplate, 0, len(variantOrder))
	for _, variant := range g.Variants.Enabled() {
		var script []byte
		var err error

		switch variant {
		case VariantBare:
			script = redeem
		case VariantHashed:
			script, err = payToScriptHashScript(redeem)
		case VariantNested:
			witnessProg, werr := witnessScriptHashScript(redeem)
			if werr != nil {
				return nil, werr
			}
			script, err = payToScriptHashScript(witnessProg)
		case VariantSegwit:
			script, err = witnessScriptHashScript(redeem)
		}
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, ScriptTemplate{variant, script})
	}
	return scripts, nil
}

func (g Generator) scriptedScripts(
	template ScriptedTemplate,
) ([]ScriptTemplate, error) {
	if len(template.Script) <= 0 {
		if len(template.Source) > 0 && len(template.SourceType) <= 0 {
			return nil, ErrSourceTypeRequired
		}
		return nil, ErrEmptyScript
	}

	scripts := make([]ScriptTemplate, 0, len(variantOrder))
	for _, variant := range g.Variants.Enabled() {
		var script []byte
		var err error

		switch variant {
		case VariantBare:
			script = template.Script
		case VariantHashed:
			script, err = payToScriptHashScript(template.Script)
		case VariantNested:
			witnessProg, werr := witnessScriptHashScript(template.Script)
			if werr != nil {
				return nil, werr
			}
			script, err = payToScriptHashScript(witnessProg)
		case VariantSegwit:
			script, err = witnessScriptHashScript(template.Script)
		case VariantTaproot:
			if template.TweakTarget == nil {
				return nil, NotYetSupportedError{
					Feature: "taproot for scripted templates without a tweak target",
				}
			}
			tapHash := txscript.NewBaseTapLeaf(template.Script).TapHash()
			script, err = taprootScript(txscript.ComputeTaprootOutputKey(
				template.TweakTarget, tapHash[:],
			))
		}
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, ScriptTemplate{variant, script})
	}
	return scripts, nil
}

func validateKeyset(template MultiSigTemplate) error {
	distinct := map[string]struct{}{}
	for _, source := range template.Pubkeys {
		if source == nil {
			return ErrEmptyKey
		}
		distinct[source.Identity()] = struct{}{}
	}
	if len(distinct) < 2 {
		return ErrEmptyKeyset
	}
	if template.Threshold < 1 || template.Threshold > len(template.Pubkeys) {
		return ErrInvalidThreshold
	}
	return nil
}

func payToPubkeyScript(serializedKey []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddData(serializedKey).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}

func payToPubkeyHashScript(keyHash []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(keyHash).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}

func payToScriptHashScript(redeemScript []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_HASH160).
		AddData(btcutil.Hash160(redeemScript)).
		AddOp(txscript.OP_EQUAL).
		Script()
}

func witnessKeyHashScript(keyHash []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(keyHash).
		Script()
}

func witnessScriptHashScript(witnessScript []byte) ([]byte, error) {
	scriptHash := sha256.Sum256(witnessScript)
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(scriptHash[:]).
		Script()
}

func taprootScript(outputKey *btcec.PublicKey) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_1).
		AddData(schnorr.SerializePubKey(outputKey)).
		Script()
}

func multiSigScript(threshold int, serializedKeys [][]byte) ([]byte, error) {
	builder := txscript.NewScriptBuilder().AddInt64(int64(threshold))
	for _, key := range serializedKeys {
		builder.AddData(key)
	}
	return builder.
		AddInt64(int64(len(serializedKeys))).
		AddOp(txscript.OP_CHECKMULTISIG).
		Script()
}
