package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/amelbk/stagelink/models"
	"github.com/amelbk/stagelink/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyHandler owns the company-side surfaces: profile, job posting CRUD
// and application processing. Status changes fan out through the notification
// sink, so the sink is injected rather than reached through a global.
type CompanyHandler struct {
	db       *gorm.DB
	notifier *services.NotificationService
	offers   *services.OfferLetterService
}

func NewCompanyHandler(db *gorm.DB, notifier *services.NotificationService, offers *services.OfferLetterService) *CompanyHandler {
	return &CompanyHandler{db: db, notifier: notifier, offers: offers}
}

func (h *CompanyHandler) currentCompany(c *fiber.Ctx) (*models.Company, error) {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var company models.Company
	if err := h.db.Where("user_id = ?", userID).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

type UpdateCompanyProfileRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Industry    *string `json:"industry"`
	Website     *string `json:"website"`
	Location    *string `json:"location"`
	Size        *string `json:"size"`
	FoundedYear *int    `json:"founded_year"`
	LogoURL     *string `json:"logo_url"`
}

func (h *CompanyHandler) UpdateCompanyProfile(c *fiber.Ctx) error {
	company, err := h.currentCompany(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company profile not found"})
	}

	var req UpdateCompanyProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Name != nil && *req.Name != "" {
		company.Name = *req.Name
	}
	if req.Description != nil {
		company.Description = req.Description
	}
	if req.Industry != nil {
		company.Industry = req.Industry
	}
	if req.Website != nil {
		company.Website = req.Website
	}
	if req.Location != nil {
		company.Location = req.Location
	}
	if req.Size != nil {
		company.Size = req.Size
	}
	if req.FoundedYear != nil {
		company.FoundedYear = req.FoundedYear
	}
	if req.LogoURL != nil {
		company.LogoURL = req.LogoURL
	}

	h.db.Save(company)

	return c.JSON(company)
}

type JobPostRequest struct {
	Title        string     `json:"title" validate:"required,max=128"`
	Description  string     `json:"description" validate:"required"`
	Requirements *string    `json:"requirements"`
	Location     *string    `json:"location"`
	JobType      *string    `json:"job_type"`
	SalaryMin    *float64   `json:"salary_min"`
	SalaryMax    *float64   `json:"salary_max"`
	Deadline     *time.Time `json:"deadline"`
}

func (h *CompanyHandler) CreateJob(c *fiber.Ctx) error {
	company, err := h.currentCompany(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company profile not found"})
	}

	var req JobPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	job := models.JobPost{
		CompanyID:    company.ID,
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		JobType:      req.JobType,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Deadline:     req.Deadline,
	}
	if err := h.db.Create(&job).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create job posting"})
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

func (h *CompanyHandler) UpdateJob(c *fiber.Ctx) error {
	company, err := h.currentCompany(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company profile not found"})
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job ID"})
	}

	var job models.JobPost
	if err := h.db.Where("id = ? AND company_id = ?", jobID, company.ID).First(&job).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job posting not found"})
	}

	var req JobPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	job.Title = req.Title
	job.Description = req.Description
	job.Requirements = req.Requirements
	job.Location = req.Location
	job.JobType = req.JobType
	job.SalaryMin = req.SalaryMin
	job.SalaryMax = req.SalaryMax
	job.Deadline = req.Deadline

	h.db.Save(&job)

	return c.JSON(job)
}

func (h *CompanyHandler) ToggleJobStatus(c *fiber.Ctx) error {
	company, err := h.currentCompany(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company profile not found"})
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job ID"})
	}

	var job models.JobPost
	if err := h.db.Where("id = ? AND company_id = ?", jobID, company.ID).First(&job).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job posting not found"})
	}

	job.IsActive = !job.IsActive
	h.db.Save(&job)

	return c.JSON(job)
}

func (h *CompanyHandler) DeleteJob(c *fiber.Ctx) error {
	company, err := h.currentCompany(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company profile not found"})
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job ID"})
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var job models.JobPost
		if err := tx.Where("id = ? AND company_id = ?", jobID, company.ID).First(&job).Error; err != nil {
			return err
		}
		if err := tx.Where("job_post_id = ?", job.ID).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&job).Error
	})
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job posting not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CompanyHandler) ListApplications(c *fiber.Ctx) error {
	company, err := h.currentCompany(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company profile not found"})
	}

	var applications []models.Application
	if err := h.db.
		Preload("Student").
		Preload("JobPost").
		Joins("JOIN job_posts ON job_posts.id = applications.job_post_id").
		Where("job_posts.company_id = ?", company.ID).
		Order("applications.created_at desc").
		Find(&applications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch applications"})
	}

	return c.JSON(applications)
}

func (h *CompanyHandler) UpdateApplicationStatus(c *fiber.Ctx) error {
	type Request struct {
		Status string `json:"status" validate:"required,oneof=pending reviewing rejected accepted"`
	}

	company, err := h.currentCompany(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company profile not found"})
	}

	applicationID, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid application ID"})
	}

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var application models.Application
	if err := h.db.
		Preload("Student").
		Preload("JobPost").
		Joins("JOIN job_posts ON job_posts.id = applications.job_post_id").
		Where("applications.id = ? AND job_posts.company_id = ?", applicationID, company.ID).
		First(&application).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}

	if err := h.db.Model(&models.Application{}).
		Where("id = ?", application.ID).
		Update("status", req.Status).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update application status"})
	}
	application.Status = req.Status

	// Best effort: a failed notification must not undo the status change.
	message := fmt.Sprintf("Your application for \"%s\" has been updated to: %s", application.JobPost.Title, req.Status)
	link := "/api/v1/students/me/applications"
	if _, err := h.notifier.Notify(application.Student.UserID, message, &link); err != nil {
		log.Printf("Failed to notify student %s about application status: %v", application.Student.UserID, err)
	}

	if req.Status == models.ApplicationStatusAccepted {
		go h.offers.GenerateForApplication(application.ID)
	}

	return c.JSON(application)
}
