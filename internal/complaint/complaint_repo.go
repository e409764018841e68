package complaint

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Filter narrows a complaint listing. Supplied fields are ANDed together.
type Filter struct {
	Status       string
	OwnerID      *uuid.UUID
	AssignedToID *uuid.UUID
}

//go:generate mockgen -source=complaint_repo.go -destination=mock/complaint_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Complaint) error
	FindByID(ctx context.Context, id string) (*Complaint, error)
	FindAll(ctx context.Context, filter Filter) ([]Complaint, error)
	FindByCreatedRange(ctx context.Context, start, end time.Time, status string) ([]Complaint, error)
	Update(ctx context.Context, c *Complaint) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, c *Complaint) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Complaint, error) {
	var c Complaint
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]Complaint, error) {
	db := r.db.WithContext(ctx).Model(&Complaint{})

	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.OwnerID != nil {
		db = db.Where("employee_id = ?", *filter.OwnerID)
	}
	if filter.AssignedToID != nil {
		db = db.Where("attended_by_id = ?", *filter.AssignedToID)
	}

	var complaints []Complaint
	err := db.Order("created_at DESC").Find(&complaints).Error
	return complaints, err
}

func (r *repository) FindByCreatedRange(ctx context.Context, start, end time.Time, status string) ([]Complaint, error) {
	// end is exclusive; callers pass start-of-day-after for inclusive ranges.
	db := r.db.WithContext(ctx).
		Model(&Complaint{}).
		Where("created_at >= ?", start).
		Where("created_at < ?", end)

	if status != "" {
		db = db.Where("status = ?", status)
	}

	var complaints []Complaint
	err := db.Order("created_at ASC").Find(&complaints).Error
	return complaints, err
}

func (r *repository) Update(ctx context.Context, c *Complaint) error {
	return r.db.WithContext(ctx).Save(c).Error
}
