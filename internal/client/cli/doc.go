// Package cli implements the chainvote command-line client.
//
// Commands
//
//	register <address> [--signature SIG]   create an account for a wallet
//	login <address> [--signature SIG]      log in and store the session
//	logout                                 forget the stored session
//	me                                     show the logged-in account
//	profile [address]                      show a wallet's profile photo
//	upload <address> <file>                set a wallet's profile photo
//	status [--watch]                       probe the server
//
// The session (bearer token and wallet) lives in <home>/session.db. Output
// is human-readable on a terminal and JSON otherwise; --output overrides.
package cli
