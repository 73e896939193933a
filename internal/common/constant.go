package common

const (
	// AuthorizationHeader carries the bearer access token on API requests.
	AuthorizationHeader = "Authorization"
	// BearerPrefix precedes the token in AuthorizationHeader.
	BearerPrefix = "Bearer "

	// RefreshTokenCookie is the HttpOnly cookie set by the login endpoint.
	RefreshTokenCookie = "refreshToken"

	// DefaultRole is assigned when a user or session carries no role.
	DefaultRole = "user"
)
