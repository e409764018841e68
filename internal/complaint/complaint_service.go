package complaint

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	complainterrors "go-complaintdesk/internal/complaint/errors"
	"go-complaintdesk/internal/events"
	"go-complaintdesk/internal/messaging/kafka"
	"go-complaintdesk/internal/shared/cache"
	"go-complaintdesk/internal/shared/contextutil"
	"go-complaintdesk/internal/shared/counter"
	"go-complaintdesk/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusOpened     = "Opened"
	StatusProcessing = "Processing"
	StatusClosed     = "Closed"
)

const ticketCounterType = "complaint_ticket"

// dateLayout is the reporting form's date format; two-digit years always
// mean 20YY.
const dateLayout = "02/01/06"

func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	switch currentStatus {
	case StatusOpened:
		return targetStatus == StatusProcessing
	case StatusProcessing:
		return targetStatus == StatusClosed
	default:
		return false
	}
}

//go:generate mockgen -source=complaint_service.go -destination=mock/complaint_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, ownerID string, req RegisterComplaintRequest) (ComplaintResponse, error)
	GetByID(ctx context.Context, id string) (ComplaintResponse, error)
	List(ctx context.Context, actorID string, q ListComplaintsQuery) ([]ComplaintResponse, error)
	Assign(ctx context.Context, req AssignComplaintRequest) (ComplaintResponse, error)
	ChangeStatus(ctx context.Context, actorID string, req ChangeStatusRequest) (ComplaintResponse, error)
	FilterByDateRange(ctx context.Context, req FilterByDateRequest) ([]ComplaintResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	users     user.Repository
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	listCache *cache.ListCache
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	counterRepo counter.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, users, counterRepo, nil, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	listCache *cache.ListCache,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("complaint.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("complaint.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		users:     users,
		counter:   counterRepo,
		outbox:    outboxRepo,
		listCache: listCache,
		logger:    l,
	}
}

func (s *service) Register(ctx context.Context, ownerID string, req RegisterComplaintRequest) (ComplaintResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("register complaint requested",
		zap.String("request_id", rid),
		zap.String("owner_id", ownerID),
		zap.String("asset_type", req.AssetType),
	)

	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return ComplaintResponse{}, complainterrors.ErrInvalidOwnerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register complaint begin tx failed", zap.Error(err))
		return ComplaintResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	nextVal, err := s.counter.GetNextValue(ctx, ticketCounterType)
	if err != nil {
		s.logger.Error("generate ticket code failed", zap.Error(err))
		return ComplaintResponse{}, err
	}

	c := &Complaint{
		ID:         uuid.New(),
		TicketCode: fmt.Sprintf("C%d", nextVal),
		Location:   req.Location,
		AssetType:  req.AssetType,
		Phone:      req.Phone,
		Details:    req.Details,
		Status:     StatusOpened,
		EmployeeID: ownerUUID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := qtx.Create(ctx, c); err != nil {
		s.logger.Error("register complaint persist failed", zap.Error(err))
		return ComplaintResponse{}, err
	}

	if err := s.queueLifecycleEvent(ctx, tx, c, events.ComplaintRegistered); err != nil {
		return ComplaintResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("register complaint commit failed", zap.Error(err))
		return ComplaintResponse{}, err
	}

	s.listCache.Invalidate(ctx)
	s.logger.Info("register complaint success",
		zap.String("request_id", rid),
		zap.String("complaint_id", c.ID.String()),
		zap.String("ticket_code", c.TicketCode),
	)

	return mapToResponse(*c), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ComplaintResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ComplaintResponse{}, complainterrors.ErrInvalidComplaintID
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ComplaintResponse{}, complainterrors.ErrComplaintNotFound
		}
		return ComplaintResponse{}, err
	}
	return mapToResponse(*c), nil
}

func (s *service) List(ctx context.Context, actorID string, q ListComplaintsQuery) ([]ComplaintResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, complainterrors.ErrInvalidOwnerID
	}

	filter := Filter{Status: q.Status}
	if q.Mine {
		filter.OwnerID = &actorUUID
	}
	if q.Assigned {
		filter.AssignedToID = &actorUUID
	}

	key := fmt.Sprintf("status=%s&mine=%v&assigned=%v&actor=%s", q.Status, q.Mine, q.Assigned, actorID)
	return cache.GetOrLoad(ctx, s.listCache, key, func(ctx context.Context) ([]ComplaintResponse, error) {
		complaints, err := s.repo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(complaints), nil
	})
}

func (s *service) Assign(ctx context.Context, req AssignComplaintRequest) (ComplaintResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("assign complaint requested",
		zap.String("request_id", rid),
		zap.String("complaint_id", req.ComplaintID),
		zap.Int64("worker_employee_number", req.WorkerEmployeeNumber),
	)

	worker, err := s.users.FindByEmployeeNumber(ctx, req.WorkerEmployeeNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ComplaintResponse{}, complainterrors.ErrWorkerNotFound
		}
		return ComplaintResponse{}, err
	}
	if !worker.IsWorker {
		return ComplaintResponse{}, complainterrors.ErrNotAWorker
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("assign complaint begin tx failed", zap.Error(err))
		return ComplaintResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByID(ctx, req.ComplaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ComplaintResponse{}, complainterrors.ErrComplaintNotFound
		}
		return ComplaintResponse{}, err
	}

	// Forward-only state machine: re-assignment of a Processing or Closed
	// complaint is rejected rather than silently overwritten.
	if !isAllowedStatusTransition(c.Status, StatusProcessing) {
		s.logger.Warn("assign complaint invalid transition",
			zap.String("complaint_id", req.ComplaintID),
			zap.String("from_status", c.Status),
		)
		return ComplaintResponse{}, complainterrors.ErrAlreadyAssigned
	}

	workerID := worker.ID
	c.AttendedByID = &workerID
	c.AttendedByName = worker.Name
	c.Status = StatusProcessing

	if err := qtx.Update(ctx, c); err != nil {
		s.logger.Error("assign complaint persist failed",
			zap.String("complaint_id", req.ComplaintID),
			zap.Error(err),
		)
		return ComplaintResponse{}, err
	}

	if err := s.queueLifecycleEvent(ctx, tx, c, events.ComplaintAssigned); err != nil {
		return ComplaintResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("assign complaint commit failed", zap.Error(err))
		return ComplaintResponse{}, err
	}

	s.listCache.Invalidate(ctx)
	s.logger.Info("assign complaint success",
		zap.String("complaint_id", req.ComplaintID),
		zap.String("worker_id", worker.ID.String()),
	)

	return mapToResponse(*c), nil
}

func (s *service) ChangeStatus(ctx context.Context, actorID string, req ChangeStatusRequest) (ComplaintResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("change complaint status requested",
		zap.String("request_id", rid),
		zap.String("complaint_id", req.ComplaintID),
		zap.Bool("is_completed", req.IsCompleted),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ComplaintResponse{}, complainterrors.ErrInvalidOwnerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("change status begin tx failed", zap.Error(err))
		return ComplaintResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByID(ctx, req.ComplaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ComplaintResponse{}, complainterrors.ErrComplaintNotFound
		}
		return ComplaintResponse{}, err
	}

	isOwner := c.EmployeeID == actorUUID
	isAssignee := c.AttendedByID != nil && *c.AttendedByID == actorUUID
	if !isOwner && !isAssignee {
		return ComplaintResponse{}, complainterrors.ErrNotOwnerOrAssignee
	}

	// is_completed=false carries no defined transition; the complaint is
	// returned unchanged.
	if !req.IsCompleted {
		return mapToResponse(*c), nil
	}

	if c.Status == StatusClosed {
		return ComplaintResponse{}, complainterrors.ErrAlreadyClosed
	}
	if req.Feedback == "" {
		return ComplaintResponse{}, complainterrors.ErrFeedbackRequired
	}

	now := time.Now().UTC()
	c.Status = StatusClosed
	c.Feedback = req.Feedback
	c.ClosedAt = &now

	if err := qtx.Update(ctx, c); err != nil {
		s.logger.Error("change status persist failed",
			zap.String("complaint_id", req.ComplaintID),
			zap.Error(err),
		)
		return ComplaintResponse{}, err
	}

	if err := s.queueLifecycleEvent(ctx, tx, c, events.ComplaintClosed); err != nil {
		return ComplaintResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("change status commit failed", zap.Error(err))
		return ComplaintResponse{}, err
	}

	s.listCache.Invalidate(ctx)
	s.logger.Info("change status success",
		zap.String("complaint_id", req.ComplaintID),
		zap.String("status", c.Status),
	)

	return mapToResponse(*c), nil
}

func (s *service) FilterByDateRange(ctx context.Context, req FilterByDateRequest) ([]ComplaintResponse, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, complainterrors.ErrInvalidDateRange
	}

	// Inclusive day range: [start 00:00, end+1d 00:00).
	complaints, err := s.repo.FindByCreatedRange(ctx, start, end.AddDate(0, 0, 1), req.Status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(complaints), nil
}

func (s *service) queueLifecycleEvent(ctx context.Context, tx *sql.Tx, c *Complaint, eventType string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.ComplaintLifecycleEvent{
		EventType:   eventType,
		RequestID:   contextutil.GetRequestID(ctx),
		ComplaintID: c.ID.String(),
		TicketCode:  c.TicketCode,
		Status:      c.Status,
		AttendedBy:  c.AttendedByName,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal lifecycle event failed", zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "complaint",
		AggregateID:   c.ID.String(),
		EventType:     eventType,
		Topic:         events.ComplaintLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("queue lifecycle event failed",
			zap.String("complaint_id", c.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, complainterrors.ErrInvalidDateFormat
	}
	// time.Parse maps two-digit years 69-99 to 19YY; the form means 20YY.
	if t.Year() < 2000 {
		t = t.AddDate(100, 0, 0)
	}
	return t, nil
}

func mapToResponse(c Complaint) ComplaintResponse {
	resp := ComplaintResponse{
		ID:         c.ID.String(),
		TicketCode: c.TicketCode,
		Location:   c.Location,
		AssetType:  c.AssetType,
		Phone:      c.Phone,
		Details:    c.Details,
		Status:     c.Status,
		EmployeeID: c.EmployeeID.String(),
		Feedback:   c.Feedback,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
	if c.AttendedByID != nil {
		resp.AttendedBy = &AttendedByResponse{
			ID:   c.AttendedByID.String(),
			Name: c.AttendedByName,
		}
	}
	if c.ClosedAt != nil {
		v := c.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &v
	}
	return resp
}

func mapToListResponse(complaints []Complaint) []ComplaintResponse {
	resp := make([]ComplaintResponse, len(complaints))
	for i, c := range complaints {
		resp[i] = mapToResponse(c)
	}
	return resp
}
