package handlers

import (
	"github.com/amelbk/stagelink/database"
	"github.com/amelbk/stagelink/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type UpdateStudentProfileRequest struct {
	FirstName         *string `json:"first_name"`
	LastName          *string `json:"last_name"`
	Bio               *string `json:"bio"`
	Education         *string `json:"education"`
	Phone             *string `json:"phone"`
	Website           *string `json:"website"`
	ProfilePictureURL *string `json:"profile_picture_url"`
	CVFileURL         *string `json:"cv_file_url"`
}

func UpdateStudentProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var student models.Student
	if err := database.DB.Where("user_id = ?", userID).First(&student).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student profile not found"})
	}

	var req UpdateStudentProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Bio != nil {
		student.Bio = req.Bio
	}
	if req.Education != nil {
		student.Education = req.Education
	}
	if req.Phone != nil {
		student.Phone = req.Phone
	}
	if req.Website != nil {
		student.Website = req.Website
	}
	if req.ProfilePictureURL != nil {
		student.ProfilePictureURL = req.ProfilePictureURL
	}
	if req.CVFileURL != nil {
		student.CVFileURL = req.CVFileURL
	}

	database.DB.Save(&student)

	return c.JSON(student)
}

func AddSkill(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var student models.Student
	if err := database.DB.Where("user_id = ?", userID).First(&student).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student profile not found"})
	}

	type Request struct {
		Name  string `json:"name" validate:"required,max=64"`
		Level int    `json:"level" validate:"required,min=1,max=5"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	skill := models.Skill{
		StudentID: student.ID,
		Name:      req.Name,
		Level:     req.Level,
	}
	if err := database.DB.Create(&skill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add skill"})
	}

	return c.Status(fiber.StatusCreated).JSON(skill)
}

func DeleteSkill(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid skill ID"})
	}

	var student models.Student
	if err := database.DB.Where("user_id = ?", userID).First(&student).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student profile not found"})
	}

	result := database.DB.Where("id = ? AND student_id = ?", skillID, student.ID).Delete(&models.Skill{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete skill"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Skill not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func ListMyApplications(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var student models.Student
	if err := database.DB.Where("user_id = ?", userID).First(&student).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student profile not found"})
	}

	var applications []models.Application
	if err := database.DB.
		Preload("JobPost.Company").
		Where("student_id = ?", student.ID).
		Order("created_at desc").
		Find(&applications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch applications"})
	}

	return c.JSON(applications)
}

// Withdrawing is only allowed while the application is still pending.
func WithdrawApplication(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	applicationID, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid application ID"})
	}

	var student models.Student
	if err := database.DB.Where("user_id = ?", userID).First(&student).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student profile not found"})
	}

	var application models.Application
	if err := database.DB.Where("id = ? AND student_id = ?", applicationID, student.ID).First(&application).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}

	if application.Status != models.ApplicationStatusPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Cannot withdraw an application that is already being processed"})
	}

	if err := database.DB.Delete(&application).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to withdraw application"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
