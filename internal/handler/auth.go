package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Piyush-Inovation/ClassSnap/internal/auth"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns an access/refresh token pair.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "username and password are required")
		return
	}

	t, err := h.teachers.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	tokens, err := auth.Issue(t.ID, h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.AccessTTL, h.cfg.RefreshTTL)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"teacher":       teacherJSON(t),
	})
}

type registerTeacherRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
}

// RegisterTeacher creates another teacher account. Protected: only an
// authenticated teacher may call it.
func (h *Handler) RegisterTeacher(c *gin.Context) {
	var req registerTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "username, password and name are required")
		return
	}

	t, err := h.teachers.Register(c.Request.Context(), req.Username, req.Password, req.Name, req.Email)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "teacher": teacherJSON(t)})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh mints a fresh access token from a valid refresh token. Access
// tokens are not accepted here; an expired refresh token forces re-login.
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "refresh_token is required")
		return
	}

	claims, err := auth.Parse(req.RefreshToken, h.cfg.JWTSigningKey, h.cfg.JWTIssuer, auth.TypeRefresh)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			fail(c, http.StatusUnauthorized, "Token expired")
			return
		}
		fail(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	id, err := claims.TeacherID()
	if err != nil {
		fail(c, http.StatusUnauthorized, "Invalid token")
		return
	}
	t, err := h.teachers.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if t == nil {
		fail(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	tokens, err := auth.Issue(t.ID, h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.AccessTTL, h.cfg.RefreshTTL)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "access_token": tokens.AccessToken})
}

// Me returns the teacher resolved from the bearer token.
func (h *Handler) Me(c *gin.Context) {
	t, ok := auth.CurrentTeacher(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "teacher": teacherJSON(t)})
}

// Logout acknowledges a client-side token discard. Tokens are stateless, so
// there is no server session to invalidate; they lapse at natural expiry.
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}
