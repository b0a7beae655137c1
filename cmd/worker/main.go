package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Piyush-Inovation/ClassSnap/internal/config"
	"github.com/Piyush-Inovation/ClassSnap/internal/faceclient"
	"github.com/Piyush-Inovation/ClassSnap/internal/queue"
	"github.com/Piyush-Inovation/ClassSnap/internal/store"
	"github.com/Piyush-Inovation/ClassSnap/internal/student"
)

// Worker consumes face-encode jobs, enrolls student photos with the face
// service, and flags students as enrolled.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "classsnap:encodejobs")
	}

	students := student.NewService(student.NewRepository(db.Client))
	faces := faceclient.New(cfg.FaceServiceURL, cfg.FaceSkip)

	if !cfg.FaceSkip {
		if err := faces.Health(ctx); err != nil {
			log.Printf("WARNING: face service not available: %v", err)
			log.Println("worker will retry enrollment when jobs arrive")
		} else {
			log.Println("face service connected")
		}
	}

	jobs, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume failed: %v", err)
	}

	log.Println("worker started")
	for job := range jobs {
		processJob(ctx, job, students, faces)
	}
	log.Println("worker exited")
}

func processJob(ctx context.Context, job queue.EncodeJob, students *student.Service, faces *faceclient.Client) {
	st, err := students.Get(ctx, job.StudentID)
	if err != nil {
		// Student may have been deleted between publish and consume.
		log.Printf("encode job %d skipped: %v", job.StudentID, err)
		return
	}

	result, err := faces.Enroll(ctx, st.ID, job.PhotoURL, st.Name)
	if err != nil {
		log.Printf("face enroll failed for student %d: %v", st.ID, err)
		return
	}
	if !result.Success {
		log.Printf("face enroll rejected for student %d: %s", st.ID, result.Message)
		return
	}

	if err := students.MarkFaceEnrolled(ctx, st.ID); err != nil {
		log.Printf("mark enrolled failed for student %d: %v", st.ID, err)
		return
	}
	log.Printf("student %d face enrolled", st.ID)
}
