package handler

import (
	"github.com/Piyush-Inovation/ClassSnap/internal/attendance"
	"github.com/Piyush-Inovation/ClassSnap/internal/cloudinary"
	"github.com/Piyush-Inovation/ClassSnap/internal/config"
	"github.com/Piyush-Inovation/ClassSnap/internal/faceclient"
	"github.com/Piyush-Inovation/ClassSnap/internal/queue"
	"github.com/Piyush-Inovation/ClassSnap/internal/student"
	"github.com/Piyush-Inovation/ClassSnap/internal/teacher"
)

// Handler carries the services behind the API surface. Handlers stay thin:
// decode, call a service, encode.
type Handler struct {
	cfg        config.App
	teachers   *teacher.Service
	students   *student.Service
	attendance *attendance.Service
	cloud      *cloudinary.Client // nil when Cloudinary is not configured
	faces      *faceclient.Client
	jobs       queue.Queue
}

// New wires a handler from its collaborators.
func New(cfg config.App, teachers *teacher.Service, students *student.Service, att *attendance.Service, cloud *cloudinary.Client, faces *faceclient.Client, jobs queue.Queue) *Handler {
	return &Handler{
		cfg:        cfg,
		teachers:   teachers,
		students:   students,
		attendance: att,
		cloud:      cloud,
		faces:      faces,
		jobs:       jobs,
	}
}
