package user

import "github.com/ijas-muhmd/todo-app/internal/domain/user"

// tokenInput is an OAuth2 password grant form: username=<email>&password=<password>.
type tokenInput struct {
	RawBody []byte `contentType:"application/x-www-form-urlencoded"`
}

type tokenOutput struct {
	Body TokenResponse
}

type TokenResponse struct {
	AccessToken string `json:"access_token" doc:"Signed bearer token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

type registerInput struct {
	Body RegisterRequest
}

type RegisterRequest struct {
	Email string `json:"email" example:"alice@example.com" doc:"Login email"`
	// The field name is kept for client compatibility; it carries the plaintext password.
	Password string `json:"hashed_password" doc:"Plaintext password"`
}

type registerOutput struct {
	Body MessageResponse
}

type MessageResponse struct {
	Message string `json:"message"`
}

type meOutput struct {
	Body user.User
}
