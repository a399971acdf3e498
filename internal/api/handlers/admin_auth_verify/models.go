package admin_auth_verify

// VerifyRequest HTTP request model
type VerifyRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// VerifyResponse HTTP response model
type VerifyResponse struct {
	OK    bool     `json:"ok"`
	Slugs []string `json:"slugs"`
}
