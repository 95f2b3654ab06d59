// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is one row of the wallet directory.
type User struct {
	// ID is assigned by the store and never changes.
	ID string
	// WalletAddress is the "ivHex:cipherHex" ciphertext of the checksummed
	// address. Written once at registration.
	WalletAddress string
	// WalletIndex is the keyed digest of the lowercased address; unique.
	WalletIndex string
	// ProfilePhoto is the pinned photo's content identifier, nil until set.
	ProfilePhoto *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
