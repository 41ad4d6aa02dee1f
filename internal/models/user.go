package models

// User represents a registered account
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Never serialize password hash
}

// CredentialsRequest is the body of register and login requests
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse is returned on successful registration
type RegisterResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// LoginResponse carries the bearer token issued on successful login
type LoginResponse struct {
	Token string `json:"token"`
}
