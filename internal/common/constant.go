package common

// AuthHeaderName is the HTTP header carrying the bearer access token on
// outbound API requests.
const AuthHeaderName = "Authorization"
