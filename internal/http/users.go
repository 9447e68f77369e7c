package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmatrack/internal/service"
)

type userReq struct {
	Name            string `json:"name" binding:"required,notblank"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"omitempty,min=6"`
	Role            string `json:"role"`
	Territory       string `json:"territory"`
	Phone           string `json:"phone"`
	Status          string `json:"status"`
	AssignedManager string `json:"assignedManager"`
}

func (userReq) messages() map[string]string {
	return map[string]string{
		"Name.required":  "Name is required",
		"Name.notblank":  "Name is required",
		"Email.required": "Email is required",
		"Email.email":    "Email must be a valid email address",
		"Password.min":   "Password must be at least 6 characters",
	}
}

func (r userReq) input() service.UserInput {
	return service.UserInput{
		Name:            r.Name,
		Email:           r.Email,
		Password:        r.Password,
		Role:            r.Role,
		Territory:       r.Territory,
		Phone:           r.Phone,
		Status:          r.Status,
		AssignedManager: r.AssignedManager,
	}
}

// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} domain.User
// @Router /users [get]
func (s *Server) listUsers(c *gin.Context) {
	list, err := s.svc.Users.List(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} domain.User
// @Failure 400 {object} apiError
// @Router /users/{id} [get]
func (s *Server) getUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	u, err := s.svc.Users.Get(c, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param input body userReq true "User"
// @Success 201 {object} domain.User
// @Failure 400 {object} apiError
// @Router /users [post]
func (s *Server) createUser(c *gin.Context) {
	var req userReq
	if !bind(c, &req) {
		return
	}
	u, err := s.svc.Users.Create(c, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// @Summary Update user (empty password keeps the current one)
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param input body userReq true "User"
// @Success 200 {object} domain.User
// @Failure 400 {object} apiError
// @Router /users/{id} [put]
func (s *Server) updateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req userReq
	if !bind(c, &req) {
		return
	}
	u, err := s.svc.Users.Update(c, id, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary Delete user
// @Tags users
// @Param id path int true "User ID"
// @Success 204
// @Router /users/{id} [delete]
func (s *Server) deleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.svc.Users.Delete(c, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
