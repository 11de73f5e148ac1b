package domain

// Request-context keys set by the auth middleware.
const (
	RequesterIDCtxKey    = "requester-id"
	RequesterEmailCtxKey = "requester-email"
	SessionTokenCtxKey   = "session-token"
)
