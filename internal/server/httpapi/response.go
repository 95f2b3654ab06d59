package httpapi

import (
	"encoding/json"
	"net/http"
)

// User-facing messages. Clients match on these, keep them stable.
const (
	msgAddressRequired    = "Wallet address is required."
	msgSignatureRequired  = "Wallet signature is required."
	msgSignatureFailed    = "Wallet signature verification failed."
	msgAlreadyRegistered  = "Wallet address already registered."
	msgRegisterFailed     = "Error registering user."
	msgRegistered         = "User registered successfully."
	msgNoRegisteredUsers  = "No registered users found. Please register first."
	msgWalletNotFound     = "Wallet not registered. Please register first."
	msgLoginOK            = "Login successful."
	msgFileRequired       = "Profile photo is required."
	msgFileTooLarge       = "Profile photo is too large."
	msgPinningFailed      = "Failed to update profile photo."
	msgPhotoUpdateFailed  = "Error updating profile photo."
	msgPhotoUpdated       = "Profile photo updated successfully."
	msgProfileNotFound    = "Profile not found."
	msgProfileFetchFailed = "Error fetching profile."
	msgInvalidBody        = "Invalid request body."
	msgUnauthorized       = "Unauthorized."
	msgTokenExpired       = "Token expired."
	msgServerError        = "Server error."
)

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type updateProfileResponse struct {
	Message string `json:"message"`
	Hash    string `json:"hash"`
}

type profileResponse struct {
	ProfilePhoto *string `json:"profilePhoto"`
}

type meResponse struct {
	ID            string  `json:"id"`
	WalletAddress string  `json:"walletAddress"`
	ProfilePhoto  *string `json:"profilePhoto"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type walletRequest struct {
	WalletAddress string `json:"walletAddress"`
	Signature     string `json:"signature,omitempty"`
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}
