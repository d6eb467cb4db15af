package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/amelbk/stagelink/database"
	"github.com/amelbk/stagelink/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func GetDashboardStats(c *fiber.Ctx) error {
	var totalUsers, totalStudents, totalCompanies, totalJobs, totalApplications, totalMessages int64

	database.DB.Model(&models.User{}).Count(&totalUsers)
	database.DB.Model(&models.Student{}).Count(&totalStudents)
	database.DB.Model(&models.Company{}).Count(&totalCompanies)
	database.DB.Model(&models.JobPost{}).Count(&totalJobs)
	database.DB.Model(&models.Application{}).Count(&totalApplications)
	database.DB.Model(&models.Message{}).Count(&totalMessages)

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	database.DB.Model(&models.Application{}).
		Select("status, count(id) as count").
		Group("status").
		Scan(&statusCounts)

	var recentUsers []models.User
	database.DB.Order("created_at desc").Limit(5).Find(&recentUsers)

	var recentJobs []models.JobPost
	database.DB.Preload("Company").Order("created_at desc").Limit(5).Find(&recentJobs)

	return c.JSON(fiber.Map{
		"total_users":               totalUsers,
		"total_students":            totalStudents,
		"total_companies":           totalCompanies,
		"total_jobs":                totalJobs,
		"total_applications":        totalApplications,
		"total_messages":            totalMessages,
		"application_status_counts": statusCounts,
		"recent_users":              recentUsers,
		"recent_jobs":               recentJobs,
	})
}

func GetAllUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := strings.TrimSpace(c.Query("search"))
	offset := (page - 1) * limit

	var users []models.User
	var totalUsers int64

	query := database.DB.Model(&models.User{})
	countQuery := database.DB.Model(&models.User{})

	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", searchTerm, searchTerm)
		countQuery = countQuery.Where("username ILIKE ? OR email ILIKE ?", searchTerm, searchTerm)
	}

	countQuery.Count(&totalUsers)
	query.Order("username asc").Offset(offset).Limit(limit).Find(&users)

	return c.JSON(fiber.Map{
		"data": users,
		"meta": fiber.Map{
			"total_users":  totalUsers,
			"total_pages":  int(math.Ceil(float64(totalUsers) / float64(limit))),
			"current_page": page,
		},
	})
}

func ToggleUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsActive = !user.IsActive
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
	}

	return c.JSON(user)
}

func AdminDeleteUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return errors.New("user not found")
		}

		switch user.Role {
		case "student":
			var student models.Student
			if err := tx.Where("user_id = ?", userID).First(&student).Error; err == nil {
				if err := tx.Where("student_id = ?", student.ID).Delete(&models.Skill{}).Error; err != nil {
					return err
				}
				if err := tx.Where("student_id = ?", student.ID).Delete(&models.Application{}).Error; err != nil {
					return err
				}
				if err := tx.Delete(&student).Error; err != nil {
					return err
				}
			}
		case "company":
			var company models.Company
			if err := tx.Where("user_id = ?", userID).First(&company).Error; err == nil {
				var jobIDs []uuid.UUID
				if err := tx.Model(&models.JobPost{}).Where("company_id = ?", company.ID).Pluck("id", &jobIDs).Error; err != nil {
					return err
				}
				if len(jobIDs) > 0 {
					if err := tx.Where("job_post_id IN ?", jobIDs).Delete(&models.Application{}).Error; err != nil {
						return err
					}
					if err := tx.Where("company_id = ?", company.ID).Delete(&models.JobPost{}).Error; err != nil {
						return err
					}
				}
				if err := tx.Delete(&company).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Where("sender_id = ? OR recipient_id = ?", userID, userID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_a_id = ? OR user_b_id = ?", userID, userID).Delete(&models.Conversation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})

	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func GenerateApplicationsReport(c *fiber.Ctx) error {
	startDateStr := c.Query("start_date", time.Now().AddDate(0, -1, 0).Format("2006-01-02"))
	endDateStr := c.Query("end_date", time.Now().Format("2006-01-02"))

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date format. Use YYYY-MM-DD."})
	}
	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_date format. Use YYYY-MM-DD."})
	}
	endDate = endDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	var applications []models.Application
	database.DB.
		Preload("Student").
		Preload("JobPost.Company").
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Order("created_at desc").
		Find(&applications)

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	headers := []string{"Application ID", "Date", "Student", "Job Title", "Company", "Status"}
	if err := w.Write(headers); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV header"})
	}

	for _, a := range applications {
		row := []string{
			a.ID.String(),
			a.CreatedAt.Format("2006-01-02 15:04"),
			a.Student.FirstName + " " + a.Student.LastName,
			a.JobPost.Title,
			a.JobPost.Company.Name,
			a.Status,
		}
		if err := w.Write(row); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV row"})
		}
	}
	w.Flush()

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"applications_%s_to_%s.csv\"", startDate.Format("2006-01-02"), endDate.Format("2006-01-02")))

	return c.Send(b.Bytes())
}
