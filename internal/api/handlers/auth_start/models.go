package auth_start

// StartRequest HTTP request model
type StartRequest struct {
	Phone string `json:"phone"`
}

// StartResponse HTTP response model
type StartResponse struct {
	OK bool `json:"ok"`
}
