package models

type LoginRequestBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequestBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type UpdateUserRequest struct {
	ID       string `json:"-"`
	Username string `json:"username"`
}

type LoginResponse struct {
	User  ProfileResponse `json:"user"`
	Token string          `json:"token"`
}
