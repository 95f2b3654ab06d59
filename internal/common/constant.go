package common

// AuthorizationHeaderName carries the bearer token on authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header value.
const BearerPrefix = "Bearer "

// RequestIDHeaderName is echoed back on every HTTP response.
const RequestIDHeaderName = "X-Request-ID"

// OwnershipMessage is the text a wallet signs (personal_sign) to prove it
// controls the address it presents.
const OwnershipMessage = "Please sign this message to confirm your wallet ownership."
