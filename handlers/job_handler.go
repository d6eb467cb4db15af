package handlers

import (
	"fmt"
	"log"

	"github.com/amelbk/stagelink/models"
	"github.com/amelbk/stagelink/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobHandler serves the public job board and the apply flow. Applying
// notifies the posting company through the notification sink.
type JobHandler struct {
	db       *gorm.DB
	notifier *services.NotificationService
}

func NewJobHandler(db *gorm.DB, notifier *services.NotificationService) *JobHandler {
	return &JobHandler{db: db, notifier: notifier}
}

func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	query := c.Query("query")
	jobType := c.Query("job_type")
	location := c.Query("location")

	jobQuery := h.db.Preload("Company").Where("is_active = ?", true)

	if query != "" {
		term := "%" + query + "%"
		jobQuery = jobQuery.Where("title ILIKE ? OR description ILIKE ? OR requirements ILIKE ?", term, term, term)
	}
	if jobType != "" {
		jobQuery = jobQuery.Where("job_type = ?", jobType)
	}
	if location != "" {
		jobQuery = jobQuery.Where("location ILIKE ?", "%"+location+"%")
	}

	var jobs []models.JobPost
	if err := jobQuery.Order("created_at desc").Find(&jobs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch job postings"})
	}

	return c.JSON(jobs)
}

func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job ID"})
	}

	var job models.JobPost
	if err := h.db.Preload("Company").Where("id = ? AND is_active = ?", jobID, true).First(&job).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job posting not found"})
	}

	return c.JSON(job)
}

func (h *JobHandler) ListCompanyJobs(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("companyId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid company ID"})
	}

	var company models.Company
	if err := h.db.Where("id = ?", companyID).First(&company).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company not found"})
	}

	var jobs []models.JobPost
	if err := h.db.
		Where("company_id = ? AND is_active = ?", company.ID, true).
		Order("created_at desc").
		Find(&jobs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch job postings"})
	}

	return c.JSON(fiber.Map{"company": company, "jobs": jobs})
}

func (h *JobHandler) Apply(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job ID"})
	}

	var student models.Student
	if err := h.db.Where("user_id = ?", userID).First(&student).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only students can apply for jobs"})
	}

	var job models.JobPost
	if err := h.db.Preload("Company").Where("id = ? AND is_active = ?", jobID, true).First(&job).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job posting not found"})
	}

	var existing int64
	h.db.Model(&models.Application{}).
		Where("student_id = ? AND job_post_id = ?", student.ID, job.ID).
		Count(&existing)
	if existing > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already applied for this job"})
	}

	type Request struct {
		CoverLetter *string `json:"cover_letter"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	application := models.Application{
		StudentID:   student.ID,
		JobPostID:   job.ID,
		CoverLetter: req.CoverLetter,
		Status:      models.ApplicationStatusPending,
	}
	if err := h.db.Create(&application).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit application"})
	}

	message := fmt.Sprintf("New application received for \"%s\" from %s %s", job.Title, student.FirstName, student.LastName)
	link := "/api/v1/companies/me/applications"
	if _, err := h.notifier.Notify(job.Company.UserID, message, &link); err != nil {
		log.Printf("Failed to notify company %s about new application: %v", job.Company.UserID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(application)
}
