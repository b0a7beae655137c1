package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Piyush-Inovation/ClassSnap/internal/attendance"
	"github.com/Piyush-Inovation/ClassSnap/internal/auth"
	"github.com/Piyush-Inovation/ClassSnap/internal/model"
)

type markRequest struct {
	StudentID  string   `json:"student_id"`
	Date       string   `json:"date"`
	Status     string   `json:"status"`
	Confidence *float64 `json:"confidence"`
}

// MarkAttendance records attendance, stamped with the calling teacher's id.
// A repeat mark for the same student and date returns the existing record.
func (h *Handler) MarkAttendance(c *gin.Context) {
	t, ok := auth.CurrentTeacher(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req markRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, created, err := h.attendance.Mark(c.Request.Context(), t.ID, attendance.MarkInput{
		StudentID:  req.StudentID,
		Date:       req.Date,
		Status:     req.Status,
		Confidence: req.Confidence,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"success": true, "created": created, "record": rec})
}

// TodayAttendance returns records for the current date.
func (h *Handler) TodayAttendance(c *gin.Context) {
	date, records, err := h.attendance.ListToday(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "date": date, "records": emptyIfNil(records)})
}

// AttendanceByDate returns records for a specific date (YYYY-MM-DD).
func (h *Handler) AttendanceByDate(c *gin.Context) {
	date := c.Param("date")
	records, err := h.attendance.ListByDate(c.Request.Context(), date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "date": date, "records": emptyIfNil(records)})
}

// ExportCSV streams attendance records as a CSV download. An optional ?date=
// query restricts the export to a single day.
func (h *Handler) ExportCSV(c *gin.Context) {
	records, err := h.attendance.Export(c.Request.Context(), c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", exportDisposition("csv"))
	c.Status(http.StatusOK)
	if err := attendance.WriteCSV(c.Writer, records); err != nil {
		// Headers are already written; all we can do is log.
		log.Printf("csv export write failed: %v", err)
	}
}

// ExportXLSX streams attendance records as a spreadsheet download.
func (h *Handler) ExportXLSX(c *gin.Context) {
	records, err := h.attendance.Export(c.Request.Context(), c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", exportDisposition("xlsx"))
	c.Status(http.StatusOK)
	if err := attendance.WriteXLSX(c.Writer, records); err != nil {
		log.Printf("xlsx export write failed: %v", err)
	}
}

func exportDisposition(ext string) string {
	return fmt.Sprintf(`attachment; filename="attendance_%s.%s"`, uuid.NewString(), ext)
}

func emptyIfNil(records []model.AttendanceRecord) []model.AttendanceRecord {
	if records == nil {
		return []model.AttendanceRecord{}
	}
	return records
}
