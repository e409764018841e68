package complaint_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-complaintdesk/internal/complaint"
	complainterrors "go-complaintdesk/internal/complaint/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	registerFn     func(ctx context.Context, ownerID string, req complaint.RegisterComplaintRequest) (complaint.ComplaintResponse, error)
	getByIDFn      func(ctx context.Context, id string) (complaint.ComplaintResponse, error)
	listFn         func(ctx context.Context, actorID string, q complaint.ListComplaintsQuery) ([]complaint.ComplaintResponse, error)
	assignFn       func(ctx context.Context, req complaint.AssignComplaintRequest) (complaint.ComplaintResponse, error)
	changeStatusFn func(ctx context.Context, actorID string, req complaint.ChangeStatusRequest) (complaint.ComplaintResponse, error)
	filterFn       func(ctx context.Context, req complaint.FilterByDateRequest) ([]complaint.ComplaintResponse, error)
}

func (f *fakeService) Register(ctx context.Context, ownerID string, req complaint.RegisterComplaintRequest) (complaint.ComplaintResponse, error) {
	return f.registerFn(ctx, ownerID, req)
}
func (f *fakeService) GetByID(ctx context.Context, id string) (complaint.ComplaintResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeService) List(ctx context.Context, actorID string, q complaint.ListComplaintsQuery) ([]complaint.ComplaintResponse, error) {
	return f.listFn(ctx, actorID, q)
}
func (f *fakeService) Assign(ctx context.Context, req complaint.AssignComplaintRequest) (complaint.ComplaintResponse, error) {
	return f.assignFn(ctx, req)
}
func (f *fakeService) ChangeStatus(ctx context.Context, actorID string, req complaint.ChangeStatusRequest) (complaint.ComplaintResponse, error) {
	return f.changeStatusFn(ctx, actorID, req)
}
func (f *fakeService) FilterByDateRange(ctx context.Context, req complaint.FilterByDateRequest) ([]complaint.ComplaintResponse, error) {
	return f.filterFn(ctx, req)
}

func TestHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ownerID := uuid.New().String()

	svc := &fakeService{
		registerFn: func(ctx context.Context, gotOwner string, req complaint.RegisterComplaintRequest) (complaint.ComplaintResponse, error) {
			assert.Equal(t, ownerID, gotOwner)
			assert.Equal(t, "printer", req.AssetType)
			return complaint.ComplaintResponse{
				ID:         uuid.New().String(),
				TicketCode: "C1",
				Status:     "Opened",
			}, nil
		},
	}
	h := complaint.NewHandler(svc)

	body := `{"location":"Block A","asset_type":"printer","phone":"9876543210","details":"paper jam"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", ownerID)
	c.Request = httptest.NewRequest(http.MethodPost, "/registerComplaint", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"ticket_code":"C1"`)
}

func TestHandler_Register_BadPhone(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := complaint.NewHandler(&fakeService{})

	body := `{"location":"Block A","asset_type":"printer","phone":"12345","details":"paper jam"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/registerComplaint", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestHandler_GetByID_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getByIDFn: func(ctx context.Context, id string) (complaint.ComplaintResponse, error) {
			return complaint.ComplaintResponse{}, complainterrors.ErrComplaintNotFound
		},
	}
	h := complaint.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodGet, "/getComplaintDetails/x", nil)
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), "complaint not found")
}

func TestHandler_List_PassesQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	actorID := uuid.New().String()

	svc := &fakeService{
		listFn: func(ctx context.Context, gotActor string, q complaint.ListComplaintsQuery) ([]complaint.ComplaintResponse, error) {
			assert.Equal(t, actorID, gotActor)
			assert.Equal(t, "Opened", q.Status)
			assert.True(t, q.Mine)
			return []complaint.ComplaintResponse{{ID: uuid.New().String()}}, nil
		},
	}
	h := complaint.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", actorID)
	c.Request = httptest.NewRequest(http.MethodGet, "/complaints?status=Opened&mine=true", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestHandler_ChangeStatus_Forbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		changeStatusFn: func(ctx context.Context, actorID string, req complaint.ChangeStatusRequest) (complaint.ComplaintResponse, error) {
			return complaint.ComplaintResponse{}, complainterrors.ErrNotOwnerOrAssignee
		},
	}
	h := complaint.NewHandler(svc)

	body := `{"complaint_id":"` + uuid.New().String() + `","is_completed":true,"feedback":"done"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPut, "/changeStatusOfComplaint", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.ChangeStatus(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestHandler_Assign_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		assignFn: func(ctx context.Context, req complaint.AssignComplaintRequest) (complaint.ComplaintResponse, error) {
			return complaint.ComplaintResponse{}, complainterrors.ErrAlreadyAssigned
		},
	}
	h := complaint.NewHandler(svc)

	body := `{"complaint_id":"` + uuid.New().String() + `","worker_employee_number":1003}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/admin/assignComplaintToWorkers", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Assign(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestHandler_FilterByDate_InvalidFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		filterFn: func(ctx context.Context, req complaint.FilterByDateRequest) ([]complaint.ComplaintResponse, error) {
			return nil, complainterrors.ErrInvalidDateFormat
		},
	}
	h := complaint.NewHandler(svc)

	body := `{"start_date":"2024-01-01","end_date":"15/02/24"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/filterComplaints", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.FilterByDate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "DD/MM/YY")
}
