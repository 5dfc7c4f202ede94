package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/devansh1234523/whole-sale/internal/middleware"
	"github.com/devansh1234523/whole-sale/internal/models"
)

// UserResponse defines the structure for user data sent to the client
type UserResponse struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

func toUserResponse(u models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Role: u.Role, CreatedAt: u.CreatedAt}
}

// UpdateUserRequest defines the structure for updating a user
type UpdateUserRequest struct {
	Username string      `json:"username" validate:"required"`
	Password string      `json:"password,omitempty" validate:"omitempty,min=6"` // Password is optional
	Role     models.Role `json:"role" validate:"required,oneof=admin manager staff"`
}

// GetUsers handles fetching all users
func GetUsers(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := db.Order("id").Find(&users).Error; err != nil {
			return serverError(c, "Failed to fetch users", err)
		}

		response := make([]UserResponse, 0, len(users))
		for _, user := range users {
			response = append(response, toUserResponse(user))
		}
		return c.JSON(response)
	}
}

// UpdateUser handles updating a user's details
func UpdateUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, err)
		}

		var req UpdateUserRequest
		if err := bind(c, &req); err != nil {
			return badRequest(c, err)
		}

		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(c, "User")
			}
			return serverError(c, "Failed to update user", err)
		}

		user.Username = req.Username
		user.Role = req.Role

		// If a new password is provided, hash and update it
		if req.Password != "" {
			hashedPassword, err := middleware.HashPassword(req.Password)
			if err != nil {
				return serverError(c, "Error processing password", err)
			}
			user.Password = hashedPassword
		}

		if err := db.Save(&user).Error; err != nil {
			return serverError(c, "Failed to update user", err)
		}

		return c.JSON(fiber.Map{"message": "User updated successfully", "user": toUserResponse(user)})
	}
}

// DeleteUser handles deleting a user. Admins cannot delete themselves.
func DeleteUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, err)
		}

		if p := middleware.CurrentUser(c); p != nil && p.UserID == uint(id) {
			return badRequest(c, errors.New("You cannot delete your own account"))
		}

		result := db.Delete(&models.User{}, id)
		if result.Error != nil {
			return serverError(c, "Failed to delete user", result.Error)
		}
		if result.RowsAffected == 0 {
			return notFound(c, "User")
		}

		return c.JSON(fiber.Map{"message": "User deleted successfully"})
	}
}
