package common

// SessionIDHeaderName is the HTTP header carrying the client session id on
// every backend request.
const SessionIDHeaderName = "X-Session-Id"

// AuthorizationHeaderName carries the bearer token once a wallet login has
// completed.
const AuthorizationHeaderName = "Authorization"
