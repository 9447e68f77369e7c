package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmatrack/internal/domain"
	"farmatrack/internal/logger"
)

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (loginReq) messages() map[string]string {
	return map[string]string{
		"Email.required":    "Email is required",
		"Email.email":       "Email must be a valid email address",
		"Password.required": "Password is required",
	}
}

type loginResp struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginReq true "Credentials"
// @Success 200 {object} loginResp
// @Failure 401 {object} apiError
// @Router /auth/login [post]
func (s *Server) login(c *gin.Context) {
	var req loginReq
	if !bind(c, &req) {
		return
	}
	token, u, err := s.svc.Auth.Login(c, req.Email, req.Password)
	if err != nil {
		logger.Warn("login.failed", "email", req.Email)
		fail(c, err)
		return
	}
	logger.Info("login.ok", "uid", u.ID, "role", u.Role)
	c.JSON(http.StatusOK, loginResp{Token: token, User: u})
}
