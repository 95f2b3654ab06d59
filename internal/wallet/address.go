// Package wallet validates Ethereum account addresses presented by clients
// and checks personal_sign ownership proofs.
package wallet

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"

	cm "github.com/dmitrijs2005/chainvote/internal/common"
)

// Normalize trims address and rejects it only when blank. A 20-byte hex
// account (0x prefix optional) comes back in its EIP-55 checksummed form;
// any other identifier is returned as given. Lookups are case-insensitive
// either way because the blind index lowercases its input.
func Normalize(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", cm.ErrAddressRequired
	}
	if !common.IsHexAddress(address) {
		return address, nil
	}
	return common.HexToAddress(address).Hex(), nil
}

// Equal reports whether two address strings name the same account,
// ignoring letter case and the 0x prefix.
func Equal(a, b string) bool {
	return strings.EqualFold(strip0x(strings.TrimSpace(a)), strip0x(strings.TrimSpace(b)))
}

func strip0x(s string) string {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}
