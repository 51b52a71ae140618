package http

import (
	"github.com/gin-gonic/gin"

	"github.com/awahyudi/facility-portal/internal/domain/entity"
)

type clockInRequest struct {
	EmployeeName string `json:"employee_name" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	Notes        string `json:"notes"`
}

// ClockIn handles POST /api/attendance/clock-in
func (h *Handlers) ClockIn(c *gin.Context) {
	var req clockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "employee_name, date and time are required")
		return
	}

	rec, err := h.services.Attendance.ClockIn(c.Request.Context(), sessionUID(c), req.EmployeeName, req.Date, req.Time, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, rec)
}

type clockOutRequest struct {
	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`
}

// ClockOut handles POST /api/attendance/clock-out
func (h *Handlers) ClockOut(c *gin.Context) {
	var req clockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "date and time are required")
		return
	}

	rec, err := h.services.Attendance.ClockOut(c.Request.Context(), sessionUID(c), req.Date, req.Time, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, rec)
}

// ListAttendance handles GET /api/attendance. With ?date= it returns one
// day's ledger, otherwise the whole ledger.
func (h *Handlers) ListAttendance(c *gin.Context) {
	if date := c.Query("date"); date != "" {
		records, err := h.services.Attendance.ListByDate(c.Request.Context(), date)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, records)
		return
	}

	records, err := h.services.Attendance.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}

// GetAttendance handles GET /api/attendance/record?employee_id=&date=
func (h *Handlers) GetAttendance(c *gin.Context) {
	employeeID := c.DefaultQuery("employee_id", sessionUID(c))
	date := c.Query("date")
	if date == "" {
		respondBadRequest(c, "date is required")
		return
	}

	rec, err := h.services.Attendance.Get(c.Request.Context(), employeeID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, rec)
}

// UpdateAttendance handles PUT /api/attendance/:id
func (h *Handlers) UpdateAttendance(c *gin.Context) {
	var rec entity.AttendanceRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		respondBadRequest(c, "invalid attendance payload")
		return
	}
	rec.ID = c.Param("id")

	if err := h.services.Attendance.Update(c.Request.Context(), &rec); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, rec)
}

// AddGuest handles POST /api/guests. With ?detached=true the reception desk
// gets an immediate 202 and any late failure goes to the error stream.
func (h *Handlers) AddGuest(c *gin.Context) {
	var guest entity.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		respondBadRequest(c, "invalid guest payload")
		return
	}

	if c.Query("detached") == "true" {
		task, err := h.services.Guests.AddDetached(c.Request.Context(), &guest)
		if err != nil {
			respondError(c, err)
			return
		}
		task.Detach(h.dispatcher)
		respondAccepted(c, gin.H{"queued": true})
		return
	}

	if err := h.services.Guests.Add(c.Request.Context(), &guest); err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, guest)
}

// ListGuests handles GET /api/guests
func (h *Handlers) ListGuests(c *gin.Context) {
	guests, err := h.services.Guests.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, guests)
}

// AddOvertime handles POST /api/overtime
func (h *Handlers) AddOvertime(c *gin.Context) {
	var rec entity.OvertimeRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		respondBadRequest(c, "invalid overtime payload")
		return
	}
	rec.EmployeeID = sessionUID(c)

	if err := h.services.Overtime.Add(c.Request.Context(), &rec); err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, rec)
}

// ListOvertime handles GET /api/overtime
func (h *Handlers) ListOvertime(c *gin.Context) {
	records, err := h.services.Overtime.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}

// UpdateOvertime handles PUT /api/overtime/:id
func (h *Handlers) UpdateOvertime(c *gin.Context) {
	var rec entity.OvertimeRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		respondBadRequest(c, "invalid overtime payload")
		return
	}
	rec.ID = c.Param("id")

	if err := h.services.Overtime.Update(c.Request.Context(), &rec); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, rec)
}

// DeleteOvertime handles DELETE /api/overtime/:id
func (h *Handlers) DeleteOvertime(c *gin.Context) {
	if err := h.services.Overtime.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"id": c.Param("id")})
}

type overtimeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetOvertimeStatus handles POST /api/overtime/:id/status
func (h *Handlers) SetOvertimeStatus(c *gin.Context) {
	var req overtimeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "status is required")
		return
	}

	if err := h.services.Overtime.SetStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"id": c.Param("id"), "status": req.Status})
}

// AddWaste handles POST /api/waste
func (h *Handlers) AddWaste(c *gin.Context) {
	var rec entity.WasteRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		respondBadRequest(c, "invalid waste payload")
		return
	}

	if err := h.services.Waste.Add(c.Request.Context(), &rec); err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, rec)
}

// ListWaste handles GET /api/waste
func (h *Handlers) ListWaste(c *gin.Context) {
	records, err := h.services.Waste.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}

// WasteSummary handles GET /api/waste/summary?date=YYYY-MM-DD
func (h *Handlers) WasteSummary(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		respondBadRequest(c, "date is required")
		return
	}

	summary, err := h.services.Waste.DailySummary(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"date": date, "summary": summary})
}

// UpdateWaste handles PUT /api/waste/:id
func (h *Handlers) UpdateWaste(c *gin.Context) {
	var rec entity.WasteRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		respondBadRequest(c, "invalid waste payload")
		return
	}
	rec.ID = c.Param("id")

	if err := h.services.Waste.Update(c.Request.Context(), &rec); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, rec)
}

// DeleteWaste handles DELETE /api/waste/:id
func (h *Handlers) DeleteWaste(c *gin.Context) {
	if err := h.services.Waste.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"id": c.Param("id")})
}

// AddSarpras handles POST /api/sarpras
func (h *Handlers) AddSarpras(c *gin.Context) {
	var item entity.SarprasItem
	if err := c.ShouldBindJSON(&item); err != nil {
		respondBadRequest(c, "invalid sarpras payload")
		return
	}

	if err := h.services.Sarpras.Add(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, item)
}

// ListSarpras handles GET /api/sarpras
func (h *Handlers) ListSarpras(c *gin.Context) {
	items, err := h.services.Sarpras.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, items)
}

// UpdateSarpras handles PUT /api/sarpras/:id
func (h *Handlers) UpdateSarpras(c *gin.Context) {
	var item entity.SarprasItem
	if err := c.ShouldBindJSON(&item); err != nil {
		respondBadRequest(c, "invalid sarpras payload")
		return
	}
	item.ID = c.Param("id")

	if err := h.services.Sarpras.Update(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, item)
}

// AddBriefing handles POST /api/briefings
func (h *Handlers) AddBriefing(c *gin.Context) {
	var b entity.SafetyBriefing
	if err := c.ShouldBindJSON(&b); err != nil {
		respondBadRequest(c, "invalid briefing payload")
		return
	}

	if err := h.services.Briefings.Add(c.Request.Context(), &b); err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, b)
}

// ListBriefings handles GET /api/briefings
func (h *Handlers) ListBriefings(c *gin.Context) {
	briefings, err := h.services.Briefings.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, briefings)
}

type dailyReportRequest struct {
	Date       string `json:"date" binding:"required"`
	Activities string `json:"activities"`
}

// GenerateDailyReport handles POST /api/reports/daily
func (h *Handlers) GenerateDailyReport(c *gin.Context) {
	var req dailyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "date is required")
		return
	}

	report, err := h.services.Reports.GenerateDailyReport(c.Request.Context(), req.Date, req.Activities)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"date": req.Date, "report": report})
}
