package models

// SessionState is the client state remembered between runs.
type SessionState struct {
	// Endpoint is the base URL of the secret store API.
	Endpoint string
	// Token is the bearer token; empty after logout.
	Token string
	// DisplayName caches data.display_name of the token.
	DisplayName string
}

// CanAutoLoad reports whether the state is complete enough to reload the
// secret tree at startup without asking the user.
func (s SessionState) CanAutoLoad() bool {
	return s.Endpoint != "" && s.Token != ""
}
