package models

// RegisterResponse represents the response after user registration
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"` // UUID
}

// LoginResponse carries the signed session token
type LoginResponse struct {
	Token string `json:"token"`
}
