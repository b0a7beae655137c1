package handler

import "github.com/gin-gonic/gin"

// Register wires the API route table. Every protected route goes through
// teacherAuth; no handler re-validates tokens on its own.
func (h *Handler) Register(r *gin.Engine, teacherAuth gin.HandlerFunc) {
	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.POST("/login", h.Login)
	authRoutes.POST("/refresh", h.Refresh)
	authRoutes.POST("/logout", h.Logout)
	authRoutes.POST("/register", teacherAuth, h.RegisterTeacher)
	authRoutes.GET("/me", teacherAuth, h.Me)

	students := api.Group("/students", teacherAuth)
	students.GET("", h.ListStudents)
	students.POST("/register", h.RegisterStudent)
	students.DELETE("/:id", h.DeleteStudent)

	att := api.Group("/attendance", teacherAuth)
	att.POST("/mark", h.MarkAttendance)
	att.GET("/today", h.TodayAttendance)
	att.GET("/date/:date", h.AttendanceByDate)
	att.GET("/export/csv", h.ExportCSV)
	att.GET("/export/xlsx", h.ExportXLSX)
}
