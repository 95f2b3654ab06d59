package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	cm "github.com/dmitrijs2005/chainvote/internal/common"
)

const signatureLength = 65

// VerifySignature checks that signature is a personal_sign (EIP-191)
// signature of message produced by the key behind address.
//
// Wallets emit the recovery byte as 27/28; raw secp256k1 output uses 0/1.
// Both are accepted. An address that is not a hex account can never match
// a recovered key.
func VerifySignature(address, message, signature string) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("%w: not a hex account", cm.ErrInvalidSignature)
	}
	raw, err := hex.DecodeString(strip0x(strings.TrimSpace(signature)))
	if err != nil || len(raw) != signatureLength {
		return fmt.Errorf("%w: malformed signature", cm.ErrInvalidSignature)
	}

	sig := make([]byte, signatureLength)
	copy(sig, raw)
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	if sig[64] > 1 {
		return fmt.Errorf("%w: bad recovery id", cm.ErrInvalidSignature)
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return fmt.Errorf("%w: %v", cm.ErrInvalidSignature, err)
	}

	if crypto.PubkeyToAddress(*pub) != common.HexToAddress(address) {
		return cm.ErrInvalidSignature
	}
	return nil
}
