package request

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

// AdjustScoreRequest is the request body for a relative score change
type AdjustScoreRequest struct {
	Delta *int `json:"delta"`
}

// SetScoreRequest is the request body for replacing a score. Value is the
// raw moderator input and is coerced server-side.
type SetScoreRequest struct {
	Value string `json:"value"`
}
