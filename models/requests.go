package models

type SignupRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	ControllerSN string `json:"controller_sn" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ValidateRequest struct {
	ControllerSN string `json:"controller_sn" binding:"required"`
}

type UpdateUserRequest struct {
	Email string `json:"email" binding:"required"`
}

// CreateEntryRequest is the body of POST /create.
type CreateEntryRequest struct {
	DeviceType string `json:"device_type" binding:"required"`
	DeviceData string `json:"device_data" binding:"required"`
}

// LoginResponse carries the bearer token issued at login.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

type SignupResponse struct {
	User       User       `json:"user"`
	Controller Controller `json:"controller"`
}
