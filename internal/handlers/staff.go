package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/devansh1234523/whole-sale/internal/filters"
	"github.com/devansh1234523/whole-sale/internal/models"
	"github.com/devansh1234523/whole-sale/internal/services"
)

type StaffRequest struct {
	FirstName   string             `json:"firstName" validate:"required"`
	LastName    string             `json:"lastName" validate:"required"`
	Email       string             `json:"email" validate:"required,email"`
	Phone       string             `json:"phone"`
	Position    string             `json:"position" validate:"required"`
	Department  string             `json:"department" validate:"required"`
	HireDate    string             `json:"hireDate"`
	Salary      decimal.Decimal    `json:"salary"`
	Status      models.StaffStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	Performance int                `json:"performance" validate:"gte=0,lte=100"`
	Notes       string             `json:"notes"`
}

func GetStaff(staff *services.StaffMembers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(filters.Staff(staff.All(), filters.StaffFilter{
			Department: c.Query("department"),
			Status:     c.Query("status"),
			Search:     c.Query("search"),
		}))
	}
}

func GetStaffMember(staff *services.StaffMembers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, err)
		}

		member, ok := staff.GetByID(id)
		if !ok {
			return notFound(c, "Staff member")
		}
		return c.JSON(member)
	}
}

// CreateStaffMember adds a staff member; status defaults to active.
func CreateStaffMember(staff *services.StaffMembers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req StaffRequest
		if err := bind(c, &req); err != nil {
			return badRequest(c, err)
		}
		if err := nonNegative(map[string]*decimal.Decimal{"salary": &req.Salary}); err != nil {
			return badRequest(c, err)
		}

		status := req.Status
		if status == "" {
			status = models.StaffActive
		}

		member, err := staff.Add(c.UserContext(), models.StaffMember{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			Phone:       req.Phone,
			Position:    req.Position,
			Department:  req.Department,
			HireDate:    req.HireDate,
			Salary:      req.Salary,
			Status:      status,
			Performance: req.Performance,
			Notes:       req.Notes,
		})
		if err != nil {
			return serverError(c, "Failed to create staff member", err)
		}
		return c.Status(fiber.StatusCreated).JSON(member)
	}
}

func UpdateStaffMember(staff *services.StaffMembers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, err)
		}

		var patch models.StaffPatch
		if err := bind(c, &patch); err != nil {
			return badRequest(c, err)
		}
		if err := nonNegative(map[string]*decimal.Decimal{"salary": patch.Salary}); err != nil {
			return badRequest(c, err)
		}

		member, ok, err := staff.Update(c.UserContext(), id, func(dst *models.StaffMember) error {
			patch.Apply(dst)
			return nil
		})
		if !ok {
			return notFound(c, "Staff member")
		}
		if err != nil {
			return serverError(c, "Failed to update staff member", err)
		}
		return c.JSON(member)
	}
}

// ToggleStaffStatus switches a member between active and inactive.
func ToggleStaffStatus(staff *services.StaffMembers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, err)
		}

		member, ok, err := services.ToggleStaffStatus(c.UserContext(), staff, id)
		if !ok {
			return notFound(c, "Staff member")
		}
		if err != nil {
			return serverError(c, "Failed to update staff status", err)
		}
		return c.JSON(member)
	}
}

func DeleteStaffMember(staff *services.StaffMembers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, err)
		}

		if _, ok := staff.GetByID(id); !ok {
			return notFound(c, "Staff member")
		}
		if err := staff.Remove(c.UserContext(), id); err != nil {
			return serverError(c, "Failed to delete staff member", err)
		}
		return c.JSON(fiber.Map{"message": "Staff member deleted successfully"})
	}
}
