package models

// ListResponse is the body of a LIST request on a directory path.
type ListResponse struct {
	Data struct {
		// Keys are child names relative to the listed directory. Names ending
		// with "/" are directories.
		Keys []string `json:"keys"`
	} `json:"data"`
}

// ReadResponse is the body of a READ request on a leaf path.
type ReadResponse struct {
	// Data holds the leaf's name/value pairs in payload order.
	Data *SecretData `json:"data"`
}

// TokenLookupResponse is the body of auth/token/lookup-self.
type TokenLookupResponse struct {
	Data TokenInfo `json:"data"`
}

// TokenInfo is the subset of token metadata the client displays.
type TokenInfo struct {
	DisplayName string   `json:"display_name"`
	Accessor    string   `json:"accessor"`
	Policies    []string `json:"policies"`
	TTL         int64    `json:"ttl"`
}

// ErrorResponse is the error body the server returns with non-2xx statuses.
type ErrorResponse struct {
	Errors []string `json:"errors"`
}
