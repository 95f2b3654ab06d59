// Package client contains the CLI's building blocks for talking to the
// chainvote API and keeping a local session.
//
// # Overview
//
//  1. Client is the API contract used by the services layer; HTTPClient
//     implements it over the JSON/multipart HTTP API.
//  2. InitDatabase and RunMigrations open the CLI's sqlite session database
//     and apply the embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx answers are returned as
// *APIError carrying the server's message; errors.Is(err, ErrUnauthorized)
// and errors.Is(err, ErrNotFound) match 401 and 404.
package client
