package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awahyudi/facility-portal/internal/application/asyncop"
	"github.com/awahyudi/facility-portal/internal/application/service"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
)

type stubPermitService struct{}

func (stubPermitService) Submit(_ context.Context, input service.SubmitPermitInput) (*entity.LeavePermit, error) {
	return &entity.LeavePermit{
		ID:         "p1",
		EmployeeID: input.EmployeeID,
		Status:     entity.PermitStatusPending,
	}, nil
}

func (stubPermitService) SubmitDetached(ctx context.Context, _ service.SubmitPermitInput) (*asyncop.Task, error) {
	return asyncop.Run(ctx, "permits", "create", nil, func(context.Context) error { return nil }), nil
}

func (stubPermitService) CanSubmit(context.Context, string, string) (bool, error) { return true, nil }
func (stubPermitService) Approve(context.Context, string, string) error           { return nil }
func (stubPermitService) Reject(context.Context, string, string) error            { return nil }
func (stubPermitService) RequestClarification(context.Context, string, string) error {
	return nil
}
func (stubPermitService) SignOut(context.Context, string, string, string) error { return nil }
func (stubPermitService) ConfirmReturn(context.Context, string, string) error   { return nil }
func (stubPermitService) Get(context.Context, string) (*entity.LeavePermit, error) {
	return &entity.LeavePermit{ID: "p1"}, nil
}
func (stubPermitService) List(context.Context) ([]*entity.LeavePermit, error) { return nil, nil }
func (stubPermitService) AdminQueue(context.Context) ([]*entity.LeavePermit, error) {
	return nil, nil
}
func (stubPermitService) SecurityOutQueue(context.Context) ([]*entity.LeavePermit, error) {
	return nil, nil
}
func (stubPermitService) SecurityReturnQueue(context.Context) ([]*entity.LeavePermit, error) {
	return nil, nil
}
func (stubPermitService) EmployeePermits(context.Context, string) ([]*entity.LeavePermit, error) {
	return nil, nil
}
func (stubPermitService) MonthlyRecap(context.Context, string) ([]*entity.LeavePermit, error) {
	return nil, nil
}

type stubAttendanceService struct{}

func (stubAttendanceService) ClockIn(_ context.Context, employeeID, employeeName, date, timeOfDay, notes string) (*entity.AttendanceRecord, error) {
	return &entity.AttendanceRecord{
		EmployeeID: employeeID,
		Date:       date,
		Status:     entity.AttendanceStatusPresent,
	}, nil
}

func (stubAttendanceService) ClockOut(_ context.Context, employeeID, date, timeOfDay, notes string) (*entity.AttendanceRecord, error) {
	return &entity.AttendanceRecord{EmployeeID: employeeID, Date: date}, nil
}

func (stubAttendanceService) Update(context.Context, *entity.AttendanceRecord) error { return nil }
func (stubAttendanceService) Get(context.Context, string, string) (*entity.AttendanceRecord, error) {
	return nil, nil
}
func (stubAttendanceService) List(context.Context) ([]*entity.AttendanceRecord, error) {
	return nil, nil
}
func (stubAttendanceService) ListByDate(context.Context, string) ([]*entity.AttendanceRecord, error) {
	return nil, nil
}

type nopKVLogger struct{}

func (nopKVLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopKVLogger) Error(msg string, keysAndValues ...interface{}) {}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := NewServer(ServerConfig{
		Host:      "127.0.0.1",
		Port:      0,
		JWTSecret: testSecret,
	}, Services{
		Permits:    stubPermitService{},
		Attendance: stubAttendanceService{},
	}, nil, nil, nil, nil, nopKVLogger{})
	return srv.Router()
}

func doJSON(r *gin.Engine, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func submitBody() service.SubmitPermitInput {
	return service.SubmitPermitInput{
		EmployeeID:     "budi",
		EmployeeName:   "Budi",
		Date:           "2026-08-01",
		LeaveTime:      "09:00",
		Purpose:        "Keperluan keluarga",
		SecurityOnDuty: "Pak Joko",
	}
}

func TestPermitSubmissionIsSelfServiceForAllNonAdminRoles(t *testing.T) {
	r := newTestRouter(t)

	for _, role := range []string{entity.RoleEmployee, entity.RoleReceptionist, entity.RoleSecurity} {
		token := signSession(t, role, entity.UserStatusApproved, time.Hour)

		w := doJSON(r, http.MethodPost, "/api/permits", token, submitBody())
		assert.Equalf(t, http.StatusCreated, w.Code, "role %s should be able to submit", role)

		w = doJSON(r, http.MethodGet, "/api/permits/can-submit?date=2026-08-01", token, nil)
		assert.Equalf(t, http.StatusOK, w.Code, "role %s should reach can-submit", role)

		w = doJSON(r, http.MethodGet, "/api/permits/mine", token, nil)
		assert.Equalf(t, http.StatusOK, w.Code, "role %s should reach mine", role)
	}
}

func TestPermitDecisionRoutesStayAdminOnly(t *testing.T) {
	r := newTestRouter(t)

	for _, role := range []string{entity.RoleEmployee, entity.RoleReceptionist, entity.RoleSecurity} {
		token := signSession(t, role, entity.UserStatusApproved, time.Hour)
		w := doJSON(r, http.MethodPost, "/api/permits/p1/approve", token, gin.H{"actor_name": "X"})
		assert.Equalf(t, http.StatusForbidden, w.Code, "role %s must not approve", role)
	}

	admin := signSession(t, entity.RoleAdmin, entity.UserStatusApproved, time.Hour)
	w := doJSON(r, http.MethodPost, "/api/permits/p1/approve", admin, gin.H{"actor_name": "Ibu Sari"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClockInIsOpenToEveryRole(t *testing.T) {
	r := newTestRouter(t)

	body := gin.H{"employee_name": "Budi", "date": "2026-08-01", "time": "08:00"}
	for _, role := range []string{entity.RoleEmployee, entity.RoleReceptionist, entity.RoleSecurity, entity.RoleAdmin} {
		token := signSession(t, role, entity.UserStatusApproved, time.Hour)
		w := doJSON(r, http.MethodPost, "/api/attendance/clock-in", token, body)
		assert.Equalf(t, http.StatusCreated, w.Code, "role %s should be able to clock in", role)
	}
}

func TestSignOutStaysSecurityOnly(t *testing.T) {
	r := newTestRouter(t)

	body := gin.H{"signature": "sig", "actual_leave_time": "09:15"}

	employee := signSession(t, entity.RoleEmployee, entity.UserStatusApproved, time.Hour)
	w := doJSON(r, http.MethodPost, "/api/permits/p1/sign-out", employee, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	security := signSession(t, entity.RoleSecurity, entity.UserStatusApproved, time.Hour)
	w = doJSON(r, http.MethodPost, "/api/permits/p1/sign-out", security, body)
	require.Equal(t, http.StatusOK, w.Code)
}
