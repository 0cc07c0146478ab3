// Package common contains shared constants and sentinel errors used across
// tripmate components.
package common

// Storage keys under which the session is persisted between runs.
const (
	StorageKeyToken = "auth_token"
	StorageKeyUser  = "auth_user"
)

// HTTP header names attached to outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// DevToken is the fixed credential produced by the local development bypass.
const DevToken = "dev-token"
