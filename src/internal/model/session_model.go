package model

type OpenSessionRequest struct {
	UserID   string `json:"-" validate:"required"`
	Role     string `json:"-" validate:"required"`
	FullName string `json:"-"`
	Token    string `json:"-" validate:"required"`
}

type CloseSessionRequest struct {
	UserID string `json:"-" validate:"required"`
}

type SessionResponse struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
}
