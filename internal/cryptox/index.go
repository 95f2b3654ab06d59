package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
)

const indexInfo = "chainvote wallet index"

// Indexer computes the keyed digest used to find a user by address
// without decrypting every stored row.
type Indexer struct {
	key []byte
}

// NewIndexer derives the index key from the encryption key with
// HKDF-SHA256, so a single configured secret drives both.
func NewIndexer(encryptionKey []byte) (*Indexer, error) {
	if len(encryptionKey) != KeySize {
		return nil, ErrInvalidKey
	}
	key := make([]byte, blake2b.Size256)
	if _, err := io.ReadFull(hkdf.New(sha256.New, encryptionKey, nil, []byte(indexInfo)), key); err != nil {
		return nil, err
	}
	return &Indexer{key: key}, nil
}

// Index returns the hex keyed BLAKE2b-256 of the lowercased address.
// Addresses differing only in letter case share an index.
func (x *Indexer) Index(address string) string {
	h, err := blake2b.New256(x.key)
	if err != nil {
		// only returned for keys longer than 64 bytes
		panic(err)
	}
	_, _ = io.WriteString(h, strings.ToLower(address))
	return hex.EncodeToString(h.Sum(nil))
}
