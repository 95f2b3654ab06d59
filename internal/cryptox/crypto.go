// Package cryptox obfuscates wallet addresses at rest and derives the
// deterministic lookup index stored next to them.
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/chainvote/internal/common"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

var (
	ErrInvalidKey          = errors.New("encryption key must be 32 bytes")
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
)

// AddressCipher encrypts short strings with AES-256-CBC and PKCS#7 padding.
//
// The stored form is "ivHex:cipherHex". Every call to Encrypt draws a fresh
// IV, so two encryptions of the same address never compare equal; lookups
// must go through an Indexer instead.
type AddressCipher struct {
	block cipher.Block
}

// NewAddressCipher returns a cipher keyed with a 32-byte key.
func NewAddressCipher(key []byte) (*AddressCipher, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &AddressCipher{block: block}, nil
}

// Encrypt returns "ivHex:cipherHex" for plaintext.
func (c *AddressCipher) Encrypt(plaintext string) string {
	iv := common.GenerateRandByteArray(aes.BlockSize)

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(out, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(out)
}

// Decrypt reverses Encrypt. The IV is taken from the input, so values
// written by any process sharing the key decrypt correctly. Anything that
// does not parse or unpad cleanly yields ErrMalformedCiphertext.
func (c *AddressCipher) Decrypt(encoded string) (string, error) {
	ivHex, dataHex, ok := strings.Cut(encoded, ":")
	if !ok {
		return "", fmt.Errorf("%w: missing separator", ErrMalformedCiphertext)
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil || len(iv) != aes.BlockSize {
		return "", fmt.Errorf("%w: bad iv", ErrMalformedCiphertext)
	}

	data, err := hex.DecodeString(dataHex)
	if err != nil || len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: bad payload", ErrMalformedCiphertext)
	}

	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(out, data)

	plain, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(append(make([]byte, 0, len(b)+n), b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, fmt.Errorf("%w: bad length", ErrMalformedCiphertext)
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: bad padding", ErrMalformedCiphertext)
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrMalformedCiphertext)
		}
	}
	return b[:len(b)-n], nil
}
