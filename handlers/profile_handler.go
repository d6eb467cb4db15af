package handlers

import (
	"github.com/amelbk/stagelink/database"
	"github.com/amelbk/stagelink/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func GetProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	response := fiber.Map{"user": user}

	switch user.Role {
	case "student":
		var student models.Student
		if err := database.DB.Preload("Skills").Where("user_id = ?", userID).First(&student).Error; err == nil {
			response["student"] = student
		}
	case "company":
		var company models.Company
		if err := database.DB.Where("user_id = ?", userID).First(&company).Error; err == nil {
			response["company"] = company
		}
	}

	return c.JSON(response)
}
