package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devansh1234523/whole-sale/internal/config"
	"github.com/devansh1234523/whole-sale/internal/database"
	"github.com/devansh1234523/whole-sale/internal/handlers"
	"github.com/devansh1234523/whole-sale/internal/middleware"
	"github.com/devansh1234523/whole-sale/internal/models"
	"github.com/devansh1234523/whole-sale/internal/services"
	"github.com/devansh1234523/whole-sale/internal/storage"
)

var secret = []byte("server-test-secret")

type harness struct {
	app    *fiber.App
	svc    *services.Services
	tokens map[models.Role]string
	ids    map[models.Role]uint
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := database.Connect(config.DBConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "accounts.db"),
	}, true)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc, err := services.Open(context.Background(), storage.NewMemoryStore(), true)
	require.NoError(t, err)

	h := &harness{
		svc:    svc,
		tokens: map[models.Role]string{},
		ids:    map[models.Role]uint{},
	}
	for _, role := range []models.Role{models.RoleAdmin, models.RoleManager, models.RoleStaff} {
		hash, err := middleware.HashPassword("password-" + string(role))
		require.NoError(t, err)
		user := models.User{Username: string(role) + "-user", Password: hash, Role: role}
		require.NoError(t, db.Create(&user).Error)

		token, err := middleware.GenerateJWT(secret, time.Hour, user)
		require.NoError(t, err)
		h.tokens[role] = token
		h.ids[role] = user.ID
	}

	h.app = New(Deps{
		Services:  svc,
		DB:        db,
		JWTSecret: secret,
		Auth:      handlers.NewAuthHandler(db, secret, time.Hour),
	})
	return h
}

// do sends a request as role (empty for anonymous) and decodes the JSON reply into out.
func (h *harness) do(t *testing.T, role models.Role, method, path string, body interface{}, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if role != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+h.tokens[role])
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
	}
	return resp.StatusCode
}

func TestHealthIsPublic(t *testing.T) {
	h := newHarness(t)

	var body map[string]string
	status := h.do(t, "", fiber.MethodGet, "/api/v1/health", nil, &body)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Running", body["status"])
}

func TestRoleGate(t *testing.T) {
	h := newHarness(t)

	var body map[string]string
	status := h.do(t, "", fiber.MethodGet, "/api/v1/products", nil, &body)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Not authenticated", body["msg"])

	body = nil
	status = h.do(t, models.RoleStaff, fiber.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Blocked", "category": "Toys", "sku": "NO-1",
	}, &body)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Access denied. Not authorized.", body["msg"])

	body = nil
	status = h.do(t, models.RoleManager, fiber.MethodGet, "/api/v1/staff", nil, &body)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Access denied. Not authorized.", body["msg"])

	status = h.do(t, models.RoleAdmin, fiber.MethodGet, "/api/v1/staff", nil, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	h := newHarness(t)

	status := h.do(t, "", fiber.MethodGet, "/api/v1/no-such-route", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status = h.do(t, models.RoleStaff, fiber.MethodGet, "/api/v1/no-such-route", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestProductReads(t *testing.T) {
	h := newHarness(t)

	var products []models.Product
	status := h.do(t, models.RoleStaff, fiber.MethodGet, "/api/v1/products?category=Toys", nil, &products)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, products, 1)
	assert.Equal(t, "SKU-002", products[0].SKU)

	var errBody map[string]string
	status = h.do(t, models.RoleStaff, fiber.MethodGet, "/api/v1/products/abc", nil, &errBody)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.NotEmpty(t, errBody["error"])

	status = h.do(t, models.RoleStaff, fiber.MethodGet, "/api/v1/products/99", nil, &errBody)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCreateProductOpensInventory(t *testing.T) {
	h := newHarness(t)

	var created struct {
		Product   models.Product       `json:"product"`
		Inventory models.InventoryItem `json:"inventory"`
	}
	status := h.do(t, models.RoleManager, fiber.MethodPost, "/api/v1/products", map[string]interface{}{
		"name":          "Massage Gun",
		"category":      "Massager",
		"sku":           "MAS-777",
		"price":         "149.00",
		"stockQuantity": 12,
	}, &created)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, 3, created.Product.ID)
	assert.Equal(t, 12, created.Inventory.Quantity)
	assert.Equal(t, created.Product.ID, created.Inventory.Product.ID)

	var errBody map[string]string
	status = h.do(t, models.RoleManager, fiber.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Free Money", "category": "Toys", "sku": "NEG-1", "price": "-1",
	}, &errBody)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status = h.do(t, models.RoleManager, fiber.MethodPost, "/api/v1/products", map[string]interface{}{
		"category": "Toys",
	}, &errBody)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, errBody["error"], "Name is required")
}

func TestUpdateProductSyncsInventory(t *testing.T) {
	h := newHarness(t)

	var product models.Product
	status := h.do(t, models.RoleManager, fiber.MethodPut, "/api/v1/products/1", map[string]interface{}{
		"name":  "Premium Massager",
		"price": 120,
	}, &product)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Premium Massager", product.Name)

	var item models.InventoryItem
	status = h.do(t, models.RoleStaff, fiber.MethodGet, "/api/v1/inventory/1", nil, &item)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Premium Massager", item.Product.Name)
	assert.Equal(t, "120", item.Product.Price.String())
	assert.Equal(t, 25, item.Quantity)

	status = h.do(t, models.RoleManager, fiber.MethodPut, "/api/v1/products/404", map[string]interface{}{"name": "x"}, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDeleteProductIsAdminOnly(t *testing.T) {
	h := newHarness(t)

	status := h.do(t, models.RoleManager, fiber.MethodDelete, "/api/v1/products/1", nil, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status = h.do(t, models.RoleAdmin, fiber.MethodDelete, "/api/v1/products/1", nil, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status = h.do(t, models.RoleAdmin, fiber.MethodDelete, "/api/v1/products/1", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	// the inventory item outlives its product
	status = h.do(t, models.RoleStaff, fiber.MethodGet, "/api/v1/inventory/1", nil, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestTransactions(t *testing.T) {
	h := newHarness(t)

	var errBody map[string]string
	status := h.do(t, models.RoleStaff, fiber.MethodPost, "/api/v1/inventory/1/transactions", map[string]interface{}{
		"type": "out", "quantity": 30, "reason": "Order #99",
	}, &errBody)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Not enough stock available", errBody["error"])

	var item models.InventoryItem
	status = h.do(t, models.RoleStaff, fiber.MethodGet, "/api/v1/inventory/1", nil, &item)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 25, item.Quantity)
	assert.Len(t, item.Transactions, 2)

	status = h.do(t, models.RoleStaff, fiber.MethodPost, "/api/v1/inventory/2/transactions", map[string]interface{}{
		"type": "in", "quantity": 15, "reason": "Restock",
	}, &item)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, 18, item.Quantity)
	last := item.Transactions[len(item.Transactions)-1]
	assert.Equal(t, 4, last.ID)
	assert.Equal(t, "staff-user", last.PerformedBy)

	status = h.do(t, models.RoleStaff, fiber.MethodPost, "/api/v1/inventory/2/transactions", map[string]interface{}{
		"type": "adjustment", "quantity": 0,
	}, &item)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, 0, item.Quantity)

	var history []models.Transaction
	status = h.do(t, models.RoleStaff, fiber.MethodGet, "/api/v1/inventory/2/transactions", nil, &history)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, history, 5)

	status = h.do(t, models.RoleStaff, fiber.MethodPost, "/api/v1/inventory/2/transactions", map[string]interface{}{
		"type": "transfer", "quantity": 1,
	}, &errBody)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status = h.do(t, models.RoleStaff, fiber.MethodPost, "/api/v1/inventory/2/transactions", map[string]interface{}{
		"type": "in",
	}, &errBody)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status = h.do(t, models.RoleStaff, fiber.MethodPost, "/api/v1/inventory/42/transactions", map[string]interface{}{
		"type": "in", "quantity": 1,
	}, &errBody)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestTransactionCannotOverflowStock(t *testing.T) {
	h := newHarness(t)

	var errBody map[string]string
	status := h.do(t, models.RoleStaff, fiber.MethodPost, "/api/v1/inventory/1/transactions", map[string]interface{}{
		"type": "in", "quantity": math.MaxInt,
	}, &errBody)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.NotEmpty(t, errBody["error"])

	var item models.InventoryItem
	status = h.do(t, models.RoleStaff, fiber.MethodGet, "/api/v1/inventory/1", nil, &item)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 25, item.Quantity)
	assert.Len(t, item.Transactions, 2)
}

func TestInventoryFilters(t *testing.T) {
	h := newHarness(t)

	var items []models.InventoryItem
	status := h.do(t, models.RoleStaff, fiber.MethodGet, "/api/v1/inventory?status=lowStock", nil, &items)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ID)

	status = h.do(t, models.RoleStaff, fiber.MethodGet, "/api/v1/inventory?status=lowStock&search=sku-001", nil, &items)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ID)

	status = h.do(t, models.RoleStaff, fiber.MethodGet, "/api/v1/inventory?status=lowStock&search=sku-001&combine=true", nil, &items)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, items)
}

func TestDirectInventoryUpdates(t *testing.T) {
	h := newHarness(t)

	status := h.do(t, models.RoleStaff, fiber.MethodPut, "/api/v1/inventory/1", map[string]interface{}{"quantity": 3}, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	var item models.InventoryItem
	status = h.do(t, models.RoleManager, fiber.MethodPut, "/api/v1/inventory/1", map[string]interface{}{
		"quantity": 3,
		"location": map[string]string{"warehouse": "Overflow", "section": "Z", "shelf": "9"},
	}, &item)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, "Overflow", item.Location.Warehouse)
	assert.Len(t, item.Transactions, 2)

	status = h.do(t, models.RoleManager, fiber.MethodPut, "/api/v1/inventory/1", map[string]interface{}{"quantity": -2}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var result map[string]int
	status = h.do(t, models.RoleManager, fiber.MethodPost, "/api/v1/inventory/bulk-update", map[string]interface{}{
		"ids":      []int{1, 2, 77},
		"quantity": 50,
	}, &result)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 2, result["updated"])

	status = h.do(t, models.RoleManager, fiber.MethodPost, "/api/v1/inventory/bulk-update", map[string]interface{}{
		"ids": []int{1},
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCustomers(t *testing.T) {
	h := newHarness(t)

	var customer models.Customer
	status := h.do(t, models.RoleManager, fiber.MethodPost, "/api/v1/customers", map[string]interface{}{
		"name": "Lena Ortiz", "email": "lena@ortiz.test", "company": "Ortiz Trading", "segment": "Wholesale",
		"totalSpent": 1000,
	}, &customer)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, 3, customer.ID)
	assert.True(t, customer.TotalSpent.IsZero())
	assert.Nil(t, customer.LastPurchase)

	status = h.do(t, models.RoleManager, fiber.MethodPost, "/api/v1/customers", map[string]interface{}{
		"name": "Bad Mail", "email": "not-an-email",
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var customers []models.Customer
	status = h.do(t, models.RoleStaff, fiber.MethodGet, "/api/v1/customers?search=ortiz", nil, &customers)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, customers, 1)

	status = h.do(t, models.RoleManager, fiber.MethodPut, "/api/v1/customers/3", map[string]interface{}{"segment": "Retail"}, &customer)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Retail", customer.Segment)
	assert.Equal(t, "Lena Ortiz", customer.Name)

	status = h.do(t, models.RoleManager, fiber.MethodDelete, "/api/v1/customers/3", nil, nil)
	assert.Equal(t, fiber.StatusOK, status)
	status = h.do(t, models.RoleStaff, fiber.MethodGet, "/api/v1/customers/3", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestStaffManagement(t *testing.T) {
	h := newHarness(t)

	var member models.StaffMember
	status := h.do(t, models.RoleAdmin, fiber.MethodPost, "/api/v1/staff", map[string]interface{}{
		"firstName": "Nina", "lastName": "Holt", "email": "nina@example.com",
		"position": "Picker", "department": "Inventory", "performance": 70,
	}, &member)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, models.StaffActive, member.Status)

	status = h.do(t, models.RoleAdmin, fiber.MethodPatch, "/api/v1/staff/4/status", nil, &member)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.StaffInactive, member.Status)

	status = h.do(t, models.RoleAdmin, fiber.MethodPut, "/api/v1/staff/4", map[string]interface{}{"performance": 101}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var staff []models.StaffMember
	status = h.do(t, models.RoleAdmin, fiber.MethodGet, "/api/v1/staff?status=inactive", nil, &staff)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, staff, 2)

	status = h.do(t, models.RoleAdmin, fiber.MethodDelete, "/api/v1/staff/4", nil, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestDashboard(t *testing.T) {
	h := newHarness(t)

	var stats services.DashboardStats
	status := h.do(t, models.RoleStaff, fiber.MethodGet, "/api/v1/dashboard", nil, &stats)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 1, stats.LowStockProducts)
	assert.Equal(t, 2, stats.TotalCustomers)
	assert.Equal(t, 3, stats.TotalStaff)
}

func TestLoginAndProfile(t *testing.T) {
	h := newHarness(t)

	var login models.LoginResponse
	status := h.do(t, "", fiber.MethodPost, "/api/v1/login", map[string]string{
		"username": "manager-user", "password": "password-manager",
	}, &login)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.RoleManager, login.Role)
	assert.NotEmpty(t, login.Token)

	claims, err := middleware.ParseJWT(secret, login.Token)
	require.NoError(t, err)
	assert.Equal(t, h.ids[models.RoleManager], claims.UserID)

	status = h.do(t, "", fiber.MethodPost, "/api/v1/login", map[string]string{
		"username": "manager-user", "password": "wrong",
	}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status = h.do(t, "", fiber.MethodPost, "/api/v1/login", map[string]string{"username": "ghost", "password": "x"}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	var me map[string]interface{}
	status = h.do(t, models.RoleStaff, fiber.MethodGet, "/api/v1/me", nil, &me)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "staff-user", me["username"])
	assert.NotContains(t, me, "password")
}

func TestUserAdministration(t *testing.T) {
	h := newHarness(t)

	status := h.do(t, models.RoleAdmin, fiber.MethodPost, "/api/v1/admin/register", map[string]string{
		"username": "new-clerk", "password": "clerk-pass", "role": "staff",
	}, nil)
	assert.Equal(t, fiber.StatusCreated, status)

	status = h.do(t, models.RoleAdmin, fiber.MethodPost, "/api/v1/admin/register", map[string]string{
		"username": "new-clerk", "password": "clerk-pass", "role": "staff",
	}, nil)
	assert.Equal(t, fiber.StatusConflict, status)

	status = h.do(t, models.RoleAdmin, fiber.MethodPost, "/api/v1/admin/register", map[string]string{
		"username": "kasir", "password": "kasir-pass", "role": "kasir",
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var users []handlers.UserResponse
	status = h.do(t, models.RoleAdmin, fiber.MethodGet, "/api/v1/admin/users", nil, &users)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, users, 4)

	status = h.do(t, models.RoleManager, fiber.MethodGet, "/api/v1/admin/users", nil, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status = h.do(t, models.RoleAdmin, fiber.MethodPut, "/api/v1/admin/users/4", map[string]string{
		"username": "senior-clerk", "role": "manager",
	}, nil)
	assert.Equal(t, fiber.StatusOK, status)

	adminPath := "/api/v1/admin/users/" + strconv.FormatUint(uint64(h.ids[models.RoleAdmin]), 10)
	status = h.do(t, models.RoleAdmin, fiber.MethodDelete, adminPath, nil, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status = h.do(t, models.RoleAdmin, fiber.MethodDelete, "/api/v1/admin/users/4", nil, nil)
	assert.Equal(t, fiber.StatusOK, status)
	status = h.do(t, models.RoleAdmin, fiber.MethodDelete, "/api/v1/admin/users/4", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}
