package middleware

// contextKey is a private type for context keys set by this package.
// Using a custom type prevents collisions with other packages.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDCtxKey = contextKey("userID")
)
