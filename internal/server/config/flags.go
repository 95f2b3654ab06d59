package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/chainvote/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":5003")
//	-g string   gRPC health bind address
//	-d string   PostgreSQL DSN, or memory://
//	-s string   JWT HMAC secret key
//	-k string   32-byte wallet address encryption key
//	-t int      access token validity, minutes
//	-o string   comma-separated CORS origins
//	-p string   pinning backend (pinata|s3)
//	-l string   log level
//	-require-signature  demand wallet signatures on register/login
//
// Only these flags are looked at (flagx.Filter), so -c/-config and flags of
// other components pass through untouched.
func parseFlags(config *Config) {
	args := flagx.Filter(os.Args[1:], flagx.Spec{
		Value: []string{"-a", "-g", "-d", "-s", "-k", "-t", "-o", "-p", "-l"},
		Bool:  []string{"-require-signature"},
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to serve HTTP")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to serve gRPC health")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "jwt secret key")
	fs.StringVar(&config.EncryptionKey, "k", config.EncryptionKey, "wallet address encryption key (32 bytes)")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "comma-separated CORS origins")

	fs.StringVar(&config.PinningBackend, "p", config.PinningBackend, "pinning backend (pinata|s3)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.RequireSignature, "require-signature", config.RequireSignature, "require wallet signatures")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// derived values are only touched when given, so sub-minute defaults survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		case "o":
			config.AllowedOrigins = splitList(*origins)
		}
	})
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
