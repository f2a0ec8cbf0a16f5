package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"movigo/internal/domain"
	"movigo/internal/repository"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	users repository.UserRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterUserRequest is the HTTP request body for user registration.
type RegisterUserRequest struct {
	FirstName      string `json:"firstName"`
	MiddleName     string `json:"middleName"`
	LastName1      string `json:"lastName1"`
	LastName2      string `json:"lastName2"`
	Email          string `json:"email"`
	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"document"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
}

// UpdateUserRequest carries partial user fields.
type UpdateUserRequest struct {
	FirstName  *string `json:"firstName"`
	MiddleName *string `json:"middleName"`
	LastName1  *string `json:"lastName1"`
	LastName2  *string `json:"lastName2"`
	Email      *string `json:"email"`
	Address    *string `json:"address"`
	Phone      *string `json:"phone"`
	Active     *bool   `json:"active"`
}

// Register handles POST /v1/users
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user := &domain.User{
		ID:              uuid.New().String(),
		FirstName:       req.FirstName,
		MiddleName:      req.MiddleName,
		LastName1:       req.LastName1,
		LastName2:       req.LastName2,
		Email:           req.Email,
		DocumentType:    domain.DocumentType(req.DocumentType),
		DocumentNumber:  req.DocumentNumber,
		Address:         req.Address,
		Phone:           req.Phone,
		RegisteredAt:    time.Now(),
		ActiveRentalIDs: []string{},
		Active:          true,
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Get handles GET /v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetAll handles GET /v1/users
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Update handles PATCH /v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.MiddleName != nil {
		user.MiddleName = *req.MiddleName
	}
	if req.LastName1 != nil {
		user.LastName1 = *req.LastName1
	}
	if req.LastName2 != nil {
		user.LastName2 = *req.LastName2
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := h.users.Update(ctx, user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
