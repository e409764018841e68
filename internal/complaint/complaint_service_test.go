package complaint

import (
	"context"
	"database/sql"
	"testing"
	"time"

	complainterrors "go-complaintdesk/internal/complaint/errors"
	"go-complaintdesk/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn             func(ctx context.Context, c *Complaint) error
	findByIDFn           func(ctx context.Context, id string) (*Complaint, error)
	findAllFn            func(ctx context.Context, filter Filter) ([]Complaint, error)
	findByCreatedRangeFn func(ctx context.Context, start, end time.Time, status string) ([]Complaint, error)
	updateFn             func(ctx context.Context, c *Complaint) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, c *Complaint) error {
	return f.createFn(ctx, c)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Complaint, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAll(ctx context.Context, filter Filter) ([]Complaint, error) {
	return f.findAllFn(ctx, filter)
}
func (f *fakeRepo) FindByCreatedRange(ctx context.Context, start, end time.Time, status string) ([]Complaint, error) {
	return f.findByCreatedRangeFn(ctx, start, end, status)
}
func (f *fakeRepo) Update(ctx context.Context, c *Complaint) error {
	return f.updateFn(ctx, c)
}

type fakeUserRepo struct {
	findByEmployeeNumberFn func(ctx context.Context, employeeNumber int64) (*user.User, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindByEmployeeNumber(ctx context.Context, employeeNumber int64) (*user.User, error) {
	return f.findByEmployeeNumberFn(ctx, employeeNumber)
}
func (f *fakeUserRepo) FindAll(ctx context.Context) ([]user.User, error)     { return nil, nil }
func (f *fakeUserRepo) FindWorkers(ctx context.Context) ([]user.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error       { return nil }
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return nil
}
func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

func TestService_Register(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ownerID := uuid.New()
	ctx := context.Background()

	var saved Complaint
	repo := &fakeRepo{
		createFn: func(ctx context.Context, c *Complaint) error { saved = *c; return nil },
	}

	svc := NewService(db, repo, &fakeUserRepo{}, &fakeCounter{next: 41})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Register(ctx, ownerID.String(), RegisterComplaintRequest{
		Location:  "Block A, Floor 2",
		AssetType: "printer",
		Phone:     "9876543210",
		Details:   "paper jam on every second page",
	})
	assert.NoError(t, err)
	assert.Equal(t, "C42", resp.TicketCode)
	assert.Equal(t, StatusOpened, resp.Status)
	assert.Equal(t, ownerID.String(), resp.EmployeeID)
	assert.Nil(t, resp.AttendedBy)
	assert.Nil(t, resp.ClosedAt)
	assert.Equal(t, saved.ID.String(), resp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Register_InvalidOwnerID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeUserRepo{}, &fakeCounter{})

	_, err := svc.Register(context.Background(), "not-a-uuid", RegisterComplaintRequest{})
	assert.ErrorIs(t, err, complainterrors.ErrInvalidOwnerID)
}

func TestService_Assign(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	workerID := uuid.New()
	stored := Complaint{
		ID:         uuid.New(),
		TicketCode: "C7",
		Status:     StatusOpened,
		EmployeeID: uuid.New(),
	}

	var saved Complaint
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Complaint, error) {
			c := stored
			return &c, nil
		},
		updateFn: func(ctx context.Context, c *Complaint) error { saved = *c; return nil },
	}
	users := &fakeUserRepo{
		findByEmployeeNumberFn: func(ctx context.Context, employeeNumber int64) (*user.User, error) {
			return &user.User{ID: workerID, EmployeeNumber: employeeNumber, Name: "Ravi", IsWorker: true}, nil
		},
	}

	svc := NewService(db, repo, users, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Assign(context.Background(), AssignComplaintRequest{
		ComplaintID:          stored.ID.String(),
		WorkerEmployeeNumber: 1003,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusProcessing, resp.Status)
	assert.NotNil(t, resp.AttendedBy)
	assert.Equal(t, workerID.String(), resp.AttendedBy.ID)
	assert.Equal(t, "Ravi", resp.AttendedBy.Name)
	assert.Equal(t, StatusProcessing, saved.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Assign_NotAWorker(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	users := &fakeUserRepo{
		findByEmployeeNumberFn: func(ctx context.Context, employeeNumber int64) (*user.User, error) {
			return &user.User{ID: uuid.New(), IsWorker: false}, nil
		},
	}
	svc := NewService(db, &fakeRepo{}, users, &fakeCounter{})

	_, err := svc.Assign(context.Background(), AssignComplaintRequest{
		ComplaintID:          uuid.New().String(),
		WorkerEmployeeNumber: 1003,
	})
	assert.ErrorIs(t, err, complainterrors.ErrNotAWorker)
}

func TestService_Assign_WorkerNotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	users := &fakeUserRepo{
		findByEmployeeNumberFn: func(ctx context.Context, employeeNumber int64) (*user.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(db, &fakeRepo{}, users, &fakeCounter{})

	_, err := svc.Assign(context.Background(), AssignComplaintRequest{
		ComplaintID:          uuid.New().String(),
		WorkerEmployeeNumber: 9999,
	})
	assert.ErrorIs(t, err, complainterrors.ErrWorkerNotFound)
}

func TestService_Assign_AlreadyAssigned(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	assignedID := uuid.New()
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Complaint, error) {
			return &Complaint{
				ID:           uuid.New(),
				Status:       StatusProcessing,
				EmployeeID:   uuid.New(),
				AttendedByID: &assignedID,
			}, nil
		},
	}
	users := &fakeUserRepo{
		findByEmployeeNumberFn: func(ctx context.Context, employeeNumber int64) (*user.User, error) {
			return &user.User{ID: uuid.New(), IsWorker: true}, nil
		},
	}
	svc := NewService(db, repo, users, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Assign(context.Background(), AssignComplaintRequest{
		ComplaintID:          uuid.New().String(),
		WorkerEmployeeNumber: 1003,
	})
	assert.ErrorIs(t, err, complainterrors.ErrAlreadyAssigned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ChangeStatus_CloseByOwner(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ownerID := uuid.New()
	workerID := uuid.New()
	stored := Complaint{
		ID:           uuid.New(),
		Status:       StatusProcessing,
		EmployeeID:   ownerID,
		AttendedByID: &workerID,
	}

	var saved Complaint
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Complaint, error) {
			c := stored
			return &c, nil
		},
		updateFn: func(ctx context.Context, c *Complaint) error { saved = *c; return nil },
	}
	svc := NewService(db, repo, &fakeUserRepo{}, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.ChangeStatus(context.Background(), ownerID.String(), ChangeStatusRequest{
		ComplaintID: stored.ID.String(),
		IsCompleted: true,
		Feedback:    "replaced the fuser unit",
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusClosed, resp.Status)
	assert.Equal(t, "replaced the fuser unit", resp.Feedback)
	assert.NotNil(t, resp.ClosedAt)
	assert.NotNil(t, saved.ClosedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ChangeStatus_CloseByAssignee(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	workerID := uuid.New()
	stored := Complaint{
		ID:           uuid.New(),
		Status:       StatusProcessing,
		EmployeeID:   uuid.New(),
		AttendedByID: &workerID,
	}

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Complaint, error) {
			c := stored
			return &c, nil
		},
		updateFn: func(ctx context.Context, c *Complaint) error { return nil },
	}
	svc := NewService(db, repo, &fakeUserRepo{}, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.ChangeStatus(context.Background(), workerID.String(), ChangeStatusRequest{
		ComplaintID: stored.ID.String(),
		IsCompleted: true,
		Feedback:    "done",
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusClosed, resp.Status)
}

func TestService_ChangeStatus_NotOwnerOrAssignee(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Complaint, error) {
			return &Complaint{ID: uuid.New(), Status: StatusProcessing, EmployeeID: uuid.New()}, nil
		},
	}
	svc := NewService(db, repo, &fakeUserRepo{}, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ChangeStatus(context.Background(), uuid.New().String(), ChangeStatusRequest{
		ComplaintID: uuid.New().String(),
		IsCompleted: true,
		Feedback:    "done",
	})
	assert.ErrorIs(t, err, complainterrors.ErrNotOwnerOrAssignee)
}

func TestService_ChangeStatus_NotCompletedIsNoOp(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ownerID := uuid.New()
	updated := false
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Complaint, error) {
			return &Complaint{ID: uuid.New(), Status: StatusProcessing, EmployeeID: ownerID}, nil
		},
		updateFn: func(ctx context.Context, c *Complaint) error { updated = true; return nil },
	}
	svc := NewService(db, repo, &fakeUserRepo{}, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	resp, err := svc.ChangeStatus(context.Background(), ownerID.String(), ChangeStatusRequest{
		ComplaintID: uuid.New().String(),
		IsCompleted: false,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusProcessing, resp.Status)
	assert.False(t, updated)
}

func TestService_ChangeStatus_AlreadyClosed(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ownerID := uuid.New()
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Complaint, error) {
			return &Complaint{ID: uuid.New(), Status: StatusClosed, EmployeeID: ownerID}, nil
		},
	}
	svc := NewService(db, repo, &fakeUserRepo{}, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ChangeStatus(context.Background(), ownerID.String(), ChangeStatusRequest{
		ComplaintID: uuid.New().String(),
		IsCompleted: true,
		Feedback:    "again",
	})
	assert.ErrorIs(t, err, complainterrors.ErrAlreadyClosed)
}

func TestService_ChangeStatus_FeedbackRequired(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ownerID := uuid.New()
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Complaint, error) {
			return &Complaint{ID: uuid.New(), Status: StatusProcessing, EmployeeID: ownerID}, nil
		},
	}
	svc := NewService(db, repo, &fakeUserRepo{}, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ChangeStatus(context.Background(), ownerID.String(), ChangeStatusRequest{
		ComplaintID: uuid.New().String(),
		IsCompleted: true,
	})
	assert.ErrorIs(t, err, complainterrors.ErrFeedbackRequired)
}

func TestService_List_Filters(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	actorID := uuid.New()
	var gotFilter Filter
	repo := &fakeRepo{
		findAllFn: func(ctx context.Context, filter Filter) ([]Complaint, error) {
			gotFilter = filter
			return []Complaint{{ID: uuid.New(), EmployeeID: actorID, Status: StatusOpened}}, nil
		},
	}
	svc := NewService(db, repo, &fakeUserRepo{}, &fakeCounter{})

	resp, err := svc.List(context.Background(), actorID.String(), ListComplaintsQuery{
		Status: StatusOpened,
		Mine:   true,
	})
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, StatusOpened, gotFilter.Status)
	assert.NotNil(t, gotFilter.OwnerID)
	assert.Equal(t, actorID, *gotFilter.OwnerID)
	assert.Nil(t, gotFilter.AssignedToID)
}

func TestService_FilterByDateRange(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	var gotStart, gotEnd time.Time
	var gotStatus string
	repo := &fakeRepo{
		findByCreatedRangeFn: func(ctx context.Context, start, end time.Time, status string) ([]Complaint, error) {
			gotStart, gotEnd, gotStatus = start, end, status
			return nil, nil
		},
	}
	svc := NewService(db, repo, &fakeUserRepo{}, &fakeCounter{})

	_, err := svc.FilterByDateRange(context.Background(), FilterByDateRequest{
		StartDate: "01/02/24",
		EndDate:   "15/02/24",
		Status:    StatusClosed,
	})
	assert.NoError(t, err)
	assert.Equal(t, 2024, gotStart.Year())
	assert.Equal(t, time.February, gotStart.Month())
	assert.Equal(t, 1, gotStart.Day())
	// End date is inclusive: the query upper bound is the next midnight.
	assert.Equal(t, 16, gotEnd.Day())
	assert.Equal(t, StatusClosed, gotStatus)
}

func TestService_FilterByDateRange_InvalidFormat(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeUserRepo{}, &fakeCounter{})

	_, err := svc.FilterByDateRange(context.Background(), FilterByDateRequest{
		StartDate: "2024-02-01",
		EndDate:   "15/02/24",
	})
	assert.ErrorIs(t, err, complainterrors.ErrInvalidDateFormat)
}

func TestService_FilterByDateRange_StartAfterEnd(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeUserRepo{}, &fakeCounter{})

	_, err := svc.FilterByDateRange(context.Background(), FilterByDateRequest{
		StartDate: "15/02/24",
		EndDate:   "01/02/24",
	})
	assert.ErrorIs(t, err, complainterrors.ErrInvalidDateRange)
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Complaint, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(db, repo, &fakeUserRepo{}, &fakeCounter{})

	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, complainterrors.ErrComplaintNotFound)
}

func TestParseDate_TwoDigitYearMeansCurrentCentury(t *testing.T) {
	got, err := parseDate("31/12/99")
	assert.NoError(t, err)
	assert.Equal(t, 2099, got.Year())

	got, err = parseDate("01/01/06")
	assert.NoError(t, err)
	assert.Equal(t, 2006, got.Year())
}
