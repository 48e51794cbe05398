package jobs

import (
	"context"
	"log"
	"time"

	"github.com/directhome/directhome-backend/internal/services"
)

// CleanupJob periodically sweeps expired OTP records
type CleanupJob struct {
	otp      *services.OTPService
	interval time.Duration
	stop     chan struct{}
}

// NewCleanupJob creates a cleanup job over the OTP service
func NewCleanupJob(otp *services.OTPService) *CleanupJob {
	return &CleanupJob{
		otp:      otp,
		interval: 10 * time.Minute,
		stop:     make(chan struct{}),
	}
}

// Start launches the background sweep loop
func (j *CleanupJob) Start() {
	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				removed, err := j.otp.SweepExpired(context.Background())
				if err != nil {
					log.Printf("OTP sweep failed: %v", err)
					continue
				}
				if removed > 0 {
					log.Printf("Swept %d expired OTP records", removed)
				}
			case <-j.stop:
				return
			}
		}
	}()
	log.Println("Cleanup job started")
}

// Stop halts the sweep loop
func (j *CleanupJob) Stop() {
	close(j.stop)
}
