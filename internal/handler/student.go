package handler

import (
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Piyush-Inovation/ClassSnap/internal/auth"
	"github.com/Piyush-Inovation/ClassSnap/internal/model"
	"github.com/Piyush-Inovation/ClassSnap/internal/queue"
	"github.com/Piyush-Inovation/ClassSnap/internal/student"
)

type registerStudentRequest struct {
	StudentID string `json:"student_id" form:"student_id"`
	Name      string `json:"name" form:"name"`
	ClassName string `json:"class" form:"class"`
	PhotoURL  string `json:"photo_url" form:"photo_url"`
}

// RegisterStudent creates a student record stamped with the calling teacher's
// id. Accepts JSON, or multipart form data with an optional photo file which
// is uploaded to Cloudinary and queued for face enrollment.
func (h *Handler) RegisterStudent(c *gin.Context) {
	t, ok := auth.CurrentTeacher(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req registerStudentRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.Contains(c.ContentType(), "multipart/form-data") {
		if url, ok := h.uploadPhoto(c); ok {
			req.PhotoURL = url
		} else if c.IsAborted() {
			return
		}
	}

	st, err := h.students.Register(c.Request.Context(), t.ID, student.RegisterInput{
		StudentID: req.StudentID,
		Name:      req.Name,
		ClassName: req.ClassName,
		PhotoURL:  req.PhotoURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if st.PhotoURL != "" && h.jobs != nil {
		job := queue.EncodeJob{StudentID: st.ID, PhotoURL: st.PhotoURL}
		if err := h.jobs.Publish(c.Request.Context(), job); err != nil {
			log.Printf("queue publish failed for student %d: %v", st.ID, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "student": st})
}

// uploadPhoto stores the multipart "photo" file in Cloudinary. Returns the
// photo URL; a missing photo field is not an error. Aborts the request on
// upload failure.
func (h *Handler) uploadPhoto(c *gin.Context) (string, bool) {
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		return "", false
	}
	defer file.Close()

	if h.cloud == nil {
		fail(c, http.StatusServiceUnavailable, "photo storage not configured")
		c.Abort()
		return "", false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to read photo")
		c.Abort()
		return "", false
	}

	result, err := h.cloud.Upload(data, header.Filename)
	if err != nil {
		log.Printf("cloudinary upload failed: %v", err)
		fail(c, http.StatusBadGateway, "photo upload failed")
		c.Abort()
		return "", false
	}
	return result.SecureURL, true
}

// ListStudents returns all registered students.
func (h *Handler) ListStudents(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if students == nil {
		students = []model.Student{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "students": students})
}

// DeleteStudent removes a student plus their face gallery entry.
func (h *Handler) DeleteStudent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid student id")
		return
	}

	st, err := h.students.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	if h.faces != nil {
		if err := h.faces.Remove(c.Request.Context(), st.ID); err != nil {
			log.Printf("face gallery cleanup failed for student %d: %v", st.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Student deleted successfully"})
}
