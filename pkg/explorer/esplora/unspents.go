package esplora

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Sosthene00/bitcoin-pro/pkg/explorer"
)

func (e *esplora) GetUnspentsForScript(script []byte) ([]explorer.Utxo, error) {
	return e.getUnspents(script)
}

func (e *esplora) GetUnspentsForScripts(scripts [][]byte) ([]explorer.Utxo, error) {
	chUnspents := make(chan []explorer.Utxo)
	chErr := make(chan error, 1)
	unspents := make([]explorer.Utxo, 0)

	for _, script := range scripts {
		go e.getUnspentsForScript(script, chUnspents, chErr)

		select {
		case err := <-chErr:
			close(chErr)
			close(chUnspents)
			return nil, err
		case unspentsForScript := <-chUnspents:
			unspents = append(unspents, unspentsForScript...)
		}
	}

	return unspents, nil
}

func (e *esplora) GetTransactionHex(txid string) (string, error) {
	url := fmt.Sprintf("%s/tx/%s/hex", e.apiURL, txid)
	status, resp, err := e.client.NewHTTPRequest("GET", url, "", nil)
	if err != nil {
		return "", fmt.Errorf("error on retrieving tx: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%s", resp)
	}
	return resp, nil
}

func (e *esplora) IsTransactionConfirmed(txid string) (bool, error) {
	url := fmt.Sprintf("%s/tx/%s/status", e.apiURL, txid)
	status, resp, err := e.client.NewHTTPRequest("GET", url, "", nil)
	if err != nil {
		return false, fmt.Errorf("error on retrieving tx status: %w", err)
	}
	if status != http.StatusOK {
		return false, fmt.Errorf("%s", resp)
	}

	var txStatus struct {
		Confirmed bool `json:"confirmed"`
	}
	if err := json.Unmarshal([]byte(resp), &txStatus); err != nil {
		return false, fmt.Errorf("error on retrieving tx status: %w", err)
	}
	return txStatus.Confirmed, nil
}

func (e *esplora) getUnspents(script []byte) ([]explorer.Utxo, error) {
	url := fmt.Sprintf(
		"%s/scripthash/%s/utxo",
		e.apiURL,
		scriptHash(script),
	)
	status, resp, err := e.client.NewHTTPRequest("GET", url, "", nil)
	if err != nil {
		return nil, fmt.Errorf("error on retrieving utxos: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%s", resp)
	}

	var outs []scriptHashUtxo
	if err := json.Unmarshal([]byte(resp), &outs); err != nil {
		return nil, fmt.Errorf("error on retrieving utxos: %w", err)
	}

	unspents := make([]explorer.Utxo, 0, len(outs))
	for _, out := range outs {
		unspents = append(unspents, explorer.NewUtxo(
			out.Txid, out.Vout, out.Value, script, out.Status.Confirmed,
		))
	}
	return unspents, nil
}

func (e *esplora) getUnspentsForScript(
	script []byte,
	chUnspents chan []explorer.Utxo,
	chErr chan error,
) {
	unspents, err := e.getUnspents(script)
	if err != nil {
		chErr <- err
		return
	}
	chUnspents <- unspents
}

type scriptHashUtxo struct {
	Txid   string `json:"txid"`
	Vout   uint32 `json:"vout"`
	Value  uint64 `json:"value"`
	Status struct {
		Confirmed bool `json:"confirmed"`
	} `json:"status"`
}

// scriptHash returns the electrum-style script hash of a scriptPubKey: its
// sha256 digest hex-encoded in reverse byte order.
func scriptHash(script []byte) string {
	digest := sha256.Sum256(script)
	for i, j := 0, len(digest)-1; i < j; i, j = i+1, j-1 {
		digest[i], digest[j] = digest[j], digest[i]
	}
	return hex.EncodeToString(digest[:])
}
