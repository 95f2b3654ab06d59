// Package models holds the data the CLI receives from the API.
package models

// Account is the caller's own record as returned by GET /me.
type Account struct {
	ID            string  `json:"id"`
	WalletAddress string  `json:"walletAddress"`
	ProfilePhoto  *string `json:"profilePhoto"`
}

// Profile is the public view of a wallet's profile. GatewayURL is empty
// when no photo has been pinned yet.
type Profile struct {
	WalletAddress string  `json:"walletAddress"`
	ProfilePhoto  *string `json:"profilePhoto"`
	GatewayURL    string  `json:"gatewayUrl,omitempty"`
}
