package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/amelbk/stagelink/database"
	"github.com/amelbk/stagelink/models"
	"github.com/amelbk/stagelink/notifications"
)

const pendingReminderAge = 72 * time.Hour

// SendPendingApplicationReminders emails companies that have applications
// sitting in pending for more than three days.
func SendPendingApplicationReminders() {
	log.Println("Running job: SendPendingApplicationReminders...")

	cutoff := time.Now().Add(-pendingReminderAge)

	type companyBacklog struct {
		CompanyID string
		Name      string
		Email     string
		Pending   int64
	}
	var backlogs []companyBacklog

	err := database.DB.Model(&models.Application{}).
		Select("companies.id as company_id, companies.name as name, users.email as email, count(applications.id) as pending").
		Joins("JOIN job_posts ON job_posts.id = applications.job_post_id").
		Joins("JOIN companies ON companies.id = job_posts.company_id").
		Joins("JOIN users ON users.id = companies.user_id").
		Where("applications.status = ? AND applications.created_at < ?", models.ApplicationStatusPending, cutoff).
		Group("companies.id, companies.name, users.email").
		Scan(&backlogs).Error
	if err != nil {
		log.Printf("Error checking for pending applications: %v", err)
		return
	}

	for _, backlog := range backlogs {
		subject := "You have applications waiting for review"
		body := fmt.Sprintf(
			"<h1>Pending Applications</h1><p>Hi %s,</p><p>You have %d application(s) that have been waiting for more than three days. Log in to review them.</p>",
			backlog.Name, backlog.Pending,
		)
		go notifications.SendEmail(backlog.Name, backlog.Email, subject, body)
	}
}
