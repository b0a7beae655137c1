package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Piyush-Inovation/ClassSnap/internal/model"
	"github.com/Piyush-Inovation/ClassSnap/internal/student"
	"github.com/Piyush-Inovation/ClassSnap/internal/teacher"
)

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// writeError maps domain errors onto the uniform error envelope. Anything
// unexpected is logged server-side and reported as a bare 500; internals never
// reach the client.
func writeError(c *gin.Context, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		fail(c, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, teacher.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, student.ErrNotFound):
		fail(c, http.StatusNotFound, "Student not found")
	default:
		log.Printf("handler: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		fail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// teacherJSON is the public shape of a teacher account.
func teacherJSON(t *model.Teacher) gin.H {
	return gin.H{
		"id":       t.ID,
		"username": t.Username,
		"name":     t.Name,
	}
}
