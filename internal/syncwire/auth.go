package syncwire

// Auth envelopes. Registration and login share the same request shape; both
// return a bearer token the client stores locally and attaches to every sync
// call.

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// ErrorResponse is the JSON body returned by the API on failures.
type ErrorResponse struct {
	Error string `json:"error"`
}
