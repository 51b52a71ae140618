package http

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/awahyudi/facility-portal/internal/application/service"
	"github.com/awahyudi/facility-portal/pkg/utils"
)

// SubmitPermit handles POST /api/permits. With ?detached=true the write is
// queued and the request returns 202 before the insert lands; a late
// failure then surfaces on the error event stream instead.
func (h *Handlers) SubmitPermit(c *gin.Context) {
	var input service.SubmitPermitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid permit payload: "+err.Error())
		return
	}

	if c.Query("detached") == "true" {
		task, err := h.services.Permits.SubmitDetached(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}
		task.Detach(h.dispatcher)
		respondAccepted(c, gin.H{"queued": true})
		return
	}

	permit, err := h.services.Permits.Submit(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, permit)
}

// CanSubmitPermit handles GET /api/permits/can-submit
func (h *Handlers) CanSubmitPermit(c *gin.Context) {
	employeeID := c.DefaultQuery("employee_id", sessionUID(c))
	date := c.Query("date")
	if date == "" {
		respondBadRequest(c, "date is required")
		return
	}

	ok, err := h.services.Permits.CanSubmit(c.Request.Context(), employeeID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"can_submit": ok})
}

// MyPermits handles GET /api/permits/mine
func (h *Handlers) MyPermits(c *gin.Context) {
	permits, err := h.services.Permits.EmployeePermits(c.Request.Context(), sessionUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, permits)
}

// ListPermits handles GET /api/permits
func (h *Handlers) ListPermits(c *gin.Context) {
	permits, err := h.services.Permits.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, permits)
}

// AdminQueue handles GET /api/permits/queue/admin
func (h *Handlers) AdminQueue(c *gin.Context) {
	permits, err := h.services.Permits.AdminQueue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, permits)
}

// SecurityOutQueue handles GET /api/permits/queue/security-out
func (h *Handlers) SecurityOutQueue(c *gin.Context) {
	permits, err := h.services.Permits.SecurityOutQueue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, permits)
}

// SecurityReturnQueue handles GET /api/permits/queue/security-return
func (h *Handlers) SecurityReturnQueue(c *gin.Context) {
	permits, err := h.services.Permits.SecurityReturnQueue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, permits)
}

// MonthlyRecap handles GET /api/permits/recap?month=YYYY-MM
func (h *Handlers) MonthlyRecap(c *gin.Context) {
	month := c.Query("month")
	if err := utils.ValidateMonth(month); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	permits, err := h.services.Permits.MonthlyRecap(c.Request.Context(), month)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, permits)
}

// ExportMonthlyRecap handles GET /api/permits/recap/export?month=YYYY-MM
func (h *Handlers) ExportMonthlyRecap(c *gin.Context) {
	month := c.Query("month")
	if err := utils.ValidateMonth(month); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	permits, err := h.services.Permits.MonthlyRecap(c.Request.Context(), month)
	if err != nil {
		respondError(c, err)
		return
	}

	outputPath, err := h.archive.Place("rekap", fmt.Sprintf("rekap-izin-%s.xlsx", month))
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := h.exporter.WriteMonthlyRecap(c.Request.Context(), month, permits, outputPath); err != nil {
		respondError(c, err)
		return
	}

	c.FileAttachment(outputPath, filepath.Base(outputPath))
}

// GetPermit handles GET /api/permits/:id
func (h *Handlers) GetPermit(c *gin.Context) {
	permit, err := h.services.Permits.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, permit)
}

// ExportPermitForm handles GET /api/permits/:id/form
func (h *Handlers) ExportPermitForm(c *gin.Context) {
	permit, err := h.services.Permits.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	outputPath, err := h.archive.Place("surat-izin", fmt.Sprintf("surat-izin-%s.xlsx", permit.ID))
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := h.exporter.WritePermitForm(c.Request.Context(), permit, outputPath); err != nil {
		respondError(c, err)
		return
	}

	c.FileAttachment(outputPath, filepath.Base(outputPath))
}

type decisionRequest struct {
	ActorName string `json:"actor_name" binding:"required"`
}

// ApprovePermit handles POST /api/permits/:id/approve
func (h *Handlers) ApprovePermit(c *gin.Context) {
	h.decide(c, h.services.Permits.Approve)
}

// RejectPermit handles POST /api/permits/:id/reject
func (h *Handlers) RejectPermit(c *gin.Context) {
	h.decide(c, h.services.Permits.Reject)
}

// ClarifyPermit handles POST /api/permits/:id/clarify
func (h *Handlers) ClarifyPermit(c *gin.Context) {
	h.decide(c, h.services.Permits.RequestClarification)
}

func (h *Handlers) decide(c *gin.Context, fn func(ctx context.Context, id, actorName string) error) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "actor_name is required")
		return
	}

	id := c.Param("id")
	if err := fn(c.Request.Context(), id, req.ActorName); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"id": id})
}

type signOutRequest struct {
	Signature       string `json:"signature" binding:"required"`
	ActualLeaveTime string `json:"actual_leave_time" binding:"required"`
}

// SignOutPermit handles POST /api/permits/:id/sign-out
func (h *Handlers) SignOutPermit(c *gin.Context) {
	var req signOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "signature and actual_leave_time are required")
		return
	}

	id := c.Param("id")
	if err := h.services.Permits.SignOut(c.Request.Context(), id, req.Signature, req.ActualLeaveTime); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"id": id})
}

type confirmReturnRequest struct {
	ActualReturnTime string `json:"actual_return_time" binding:"required"`
}

// ConfirmReturnPermit handles POST /api/permits/:id/return
func (h *Handlers) ConfirmReturnPermit(c *gin.Context) {
	var req confirmReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "actual_return_time is required")
		return
	}

	id := c.Param("id")
	if err := h.services.Permits.ConfirmReturn(c.Request.Context(), id, req.ActualReturnTime); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"id": id})
}
