package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/amelbk/stagelink/database"
	"github.com/amelbk/stagelink/models"
	"github.com/amelbk/stagelink/services"
)

// CloseExpiredJobPosts deactivates every active posting whose deadline has
// passed and tells the owning company through the notification sink.
func CloseExpiredJobPosts(notifier *services.NotificationService) {
	log.Println("Running job: CloseExpiredJobPosts...")

	var expiredJobs []models.JobPost
	err := database.DB.
		Preload("Company").
		Where("is_active = ? AND deadline IS NOT NULL AND deadline < ?", true, time.Now()).
		Find(&expiredJobs).Error
	if err != nil {
		log.Printf("Error checking for expired job posts: %v", err)
		return
	}

	if len(expiredJobs) == 0 {
		return
	}

	for _, job := range expiredJobs {
		if err := database.DB.Model(&models.JobPost{}).
			Where("id = ?", job.ID).
			Update("is_active", false).Error; err != nil {
			log.Printf("Failed to deactivate job post %s: %v", job.ID, err)
			continue
		}

		message := fmt.Sprintf("Your job posting \"%s\" has reached its deadline and was deactivated", job.Title)
		link := "/api/v1/companies/me/applications"
		if _, err := notifier.Notify(job.Company.UserID, message, &link); err != nil {
			log.Printf("Failed to notify company %s about expired job post: %v", job.Company.UserID, err)
		}
	}

	log.Printf("✅ Deactivated %d expired job post(s).", len(expiredJobs))
}
