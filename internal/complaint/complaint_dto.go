package complaint

type RegisterComplaintRequest struct {
	Location  string `json:"location" binding:"required"`
	AssetType string `json:"asset_type" binding:"required"`
	Phone     string `json:"phone" binding:"required,len=10,numeric"`
	Details   string `json:"details" binding:"required"`
}

type ListComplaintsQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=Opened Processing Closed"`
	Mine     bool   `form:"mine"`
	Assigned bool   `form:"assigned"`
}

type AssignComplaintRequest struct {
	ComplaintID          string `json:"complaint_id" binding:"required,uuid"`
	WorkerEmployeeNumber int64  `json:"worker_employee_number" binding:"required"`
}

type ChangeStatusRequest struct {
	ComplaintID string `json:"complaint_id" binding:"required,uuid"`
	IsCompleted bool   `json:"is_completed"`
	Feedback    string `json:"feedback"`
}

type FilterByDateRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Status    string `json:"status" binding:"omitempty,oneof=Opened Processing Closed"`
}

type AttendedByResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ComplaintResponse struct {
	ID         string              `json:"id"`
	TicketCode string              `json:"ticket_code"`
	Location   string              `json:"location"`
	AssetType  string              `json:"asset_type"`
	Phone      string              `json:"phone"`
	Details    string              `json:"details"`
	Status     string              `json:"status"`
	EmployeeID string              `json:"employee_id"`
	AttendedBy *AttendedByResponse `json:"attended_by,omitempty"`
	Feedback   string              `json:"feedback,omitempty"`
	CreatedAt  string              `json:"created_at"`
	ClosedAt   *string             `json:"closed_at,omitempty"`
}
