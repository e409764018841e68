package auth

import "go-complaintdesk/internal/user"

type RegisterRequest struct {
	EmployeeNumber int64  `json:"employee_number" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Designation    string `json:"designation" binding:"required"`
	Department     string `json:"department" binding:"required"`
	Location       string `json:"location" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	IsWorker       bool   `json:"is_worker"`
}

type RegisterAdminRequest struct {
	RegisterRequest
	RegistrationCode string `json:"registration_code" binding:"required"`
}

type LoginRequest struct {
	EmployeeNumber int64  `json:"employee_number" binding:"required"`
	Password       string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User  user.UserResponse `json:"user"`
	Token string            `json:"token"`
}
