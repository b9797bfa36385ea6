package dto

// MsgLoginSucceeded is returned with every issued token.
const MsgLoginSucceeded = "Login exitoso"

// LoginRequest defines the credentials for local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"maria@exportadora.hn"`
	Password string `json:"contraseña" binding:"required" example:"secret"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Message   string `json:"mensaje"`
	Token     string `json:"token"`
	TokenType string `json:"token_type" example:"bearer"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// MessageResponse is a plain informational body.
type MessageResponse struct {
	Message string `json:"mensaje"`
}
