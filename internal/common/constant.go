package common

// AuthorizationHeader is the HTTP header carrying the bearer credential on
// outbound requests.
const AuthorizationHeader = "Authorization"

// TokenCookieName is the cookie name mirrored for non-application consumers.
const TokenCookieName = "token"
