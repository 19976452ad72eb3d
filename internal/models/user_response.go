package models

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
