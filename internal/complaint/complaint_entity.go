package complaint

import (
	"time"

	"github.com/google/uuid"
)

type Complaint struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketCode     string     `gorm:"column:ticket_code;type:varchar(20);not null;uniqueIndex:uq_complaints_ticket_code"`
	Location       string     `gorm:"column:location;type:varchar(255);not null"`
	AssetType      string     `gorm:"column:asset_type;type:varchar(100);not null"`
	Phone          string     `gorm:"column:phone;type:varchar(10);not null"`
	Details        string     `gorm:"column:details;type:text;not null"`
	Status         string     `gorm:"column:status;type:varchar(20);not null;default:'Opened';index:idx_complaints_status"`
	EmployeeID     uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index:idx_complaints_employee"`
	AttendedByID   *uuid.UUID `gorm:"column:attended_by_id;type:uuid;index:idx_complaints_attended_by"`
	AttendedByName string     `gorm:"column:attended_by_name;type:varchar(255)"`
	Feedback       string     `gorm:"column:feedback;type:text"`
	CreatedAt      time.Time  `gorm:"column:created_at;index:idx_complaints_created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	ClosedAt       *time.Time `gorm:"column:closed_at"`
}

func (Complaint) TableName() string {
	return "complaints"
}
