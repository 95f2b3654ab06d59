// Package config loads runtime configuration for the chainvote CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file passed with -c/--config.
//  3. CHAINVOTE_* environment variables.
//  4. Persistent command-line flags, applied by the cli package.
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:5003",
//	  "home": "/home/me/.chainvote",
//	  "gateway_url": "https://gateway.pinata.cloud/ipfs/",
//	  "request_timeout": "30s",
//	  "watch_interval": "3s"
//	}
package config
