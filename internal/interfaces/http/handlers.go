package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/awahyudi/facility-portal/internal/application/dispatcher"
	"github.com/awahyudi/facility-portal/internal/infrastructure/export"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	services   Services
	exporter   *export.Exporter
	archive    *export.Archive
	dispatcher dispatcher.Dispatcher
	logger     Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services Services, exporter *export.Exporter, archive *export.Archive, d dispatcher.Dispatcher, logger Logger) *Handlers {
	return &Handlers{
		services:   services,
		exporter:   exporter,
		archive:    archive,
		dispatcher: d,
		logger:     logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	respondOK(c, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	})
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup handles POST /api/auth/signup
func (h *Handlers) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email and password are required")
		return
	}

	user, err := h.services.Users.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, user)
}

// Login handles POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email and password are required")
		return
	}

	user, token, err := h.services.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"user": user, "token": token})
}

// Me handles GET /api/auth/me
func (h *Handlers) Me(c *gin.Context) {
	user, err := h.services.Users.Get(c.Request.Context(), sessionUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, user)
}

// ListUsers handles GET /api/users
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.services.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, users)
}

type updateUserRequest struct {
	Role   string `json:"role"`
	Status string `json:"status"`
}

// UpdateUser handles PATCH /api/users/:uid
func (h *Handlers) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := h.services.Users.UpdateUser(c.Request.Context(), c.Param("uid"), req.Role, req.Status); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"uid": c.Param("uid")})
}
