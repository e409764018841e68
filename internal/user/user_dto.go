package user

// UserResponse never carries the password hash.
type UserResponse struct {
	ID             string `json:"id"`
	EmployeeNumber int64  `json:"employee_number"`
	Name           string `json:"name"`
	Designation    string `json:"designation"`
	Department     string `json:"department"`
	Location       string `json:"location"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	IsWorker       bool   `json:"is_worker"`
	CreatedAt      string `json:"created_at"`
}

// WorkerResponse is the projection the assignment screen needs.
type WorkerResponse struct {
	EmployeeNumber int64  `json:"employee_number"`
	Name           string `json:"name"`
}

type UpdateUserRequest struct {
	UserID      string  `json:"user_id" binding:"required,uuid"`
	Name        *string `json:"name"`
	Designation *string `json:"designation"`
	Department  *string `json:"department"`
	Location    *string `json:"location"`
	IsWorker    *bool   `json:"is_worker"`
}
