package user

import (
	"time"

	"go-complaintdesk/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNumber int64          `gorm:"column:employee_number;not null;uniqueIndex:uq_users_employee_number"`
	Name           string         `gorm:"column:name;type:varchar(255);not null"`
	Designation    string         `gorm:"column:designation;type:varchar(100)"`
	Department     string         `gorm:"column:department;type:varchar(100)"`
	Location       string         `gorm:"column:location;type:varchar(100)"`
	Email          string         `gorm:"column:email;type:text;not null;uniqueIndex:uq_users_email"`
	Password       string         `gorm:"column:password;type:text;not null"`
	Role           domain.Role    `gorm:"column:role;type:varchar(20);not null;default:'employee'"`
	IsWorker       bool           `gorm:"column:is_worker;not null;default:false"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}
