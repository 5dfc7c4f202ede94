package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devansh1234523/whole-sale/internal/filters"
	"github.com/devansh1234523/whole-sale/internal/models"
	"github.com/devansh1234523/whole-sale/internal/services"
)

type CustomerRequest struct {
	Name     string         `json:"name" validate:"required"`
	Email    string         `json:"email" validate:"required,email"`
	Phone    string         `json:"phone"`
	Company  string         `json:"company"`
	Segment  string         `json:"segment"`
	Industry string         `json:"industry"`
	Address  models.Address `json:"address"`
	Notes    string         `json:"notes"`
}

func GetCustomers(customers *services.Customers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(filters.Customers(customers.All(), filters.CustomerFilter{
			Segment: c.Query("segment"),
			Search:  c.Query("search"),
		}))
	}
}

func GetCustomer(customers *services.Customers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, err)
		}

		customer, ok := customers.GetByID(id)
		if !ok {
			return notFound(c, "Customer")
		}
		return c.JSON(customer)
	}
}

// CreateCustomer adds a customer with no purchase history.
func CreateCustomer(customers *services.Customers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CustomerRequest
		if err := bind(c, &req); err != nil {
			return badRequest(c, err)
		}

		customer, err := customers.Add(c.UserContext(), models.Customer{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Company:  req.Company,
			Segment:  req.Segment,
			Industry: req.Industry,
			Address:  req.Address,
			Notes:    req.Notes,
		})
		if err != nil {
			return serverError(c, "Failed to create customer", err)
		}
		return c.Status(fiber.StatusCreated).JSON(customer)
	}
}

func UpdateCustomer(customers *services.Customers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, err)
		}

		var patch models.CustomerPatch
		if err := bind(c, &patch); err != nil {
			return badRequest(c, err)
		}

		customer, ok, err := customers.Update(c.UserContext(), id, func(dst *models.Customer) error {
			patch.Apply(dst)
			return nil
		})
		if !ok {
			return notFound(c, "Customer")
		}
		if err != nil {
			return serverError(c, "Failed to update customer", err)
		}
		return c.JSON(customer)
	}
}

func DeleteCustomer(customers *services.Customers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, err)
		}

		if _, ok := customers.GetByID(id); !ok {
			return notFound(c, "Customer")
		}
		if err := customers.Remove(c.UserContext(), id); err != nil {
			return serverError(c, "Failed to delete customer", err)
		}
		return c.JSON(fiber.Map{"message": "Customer deleted successfully"})
	}
}
