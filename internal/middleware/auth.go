package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/devansh1234523/whole-sale/internal/models"
)

const principalKey = "user"

var (
	ErrNotAuthenticated = errors.New("Not authenticated")
	ErrForbidden        = errors.New("Access denied. Not authorized.")
)

// Principal is the authenticated caller.
type Principal struct {
	UserID   uint        `json:"userId"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

type Claims struct {
	UserID   uint        `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// HashPassword hashes the password using bcrypt
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CheckPassword checks if the provided password is correct
func CheckPassword(password, hashedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// GenerateJWT signs a token for user that expires after ttl.
func GenerateJWT(secret []byte, ttl time.Duration, user models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseJWT validates tokenString and returns its claims.
func ParseJWT(secret []byte, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Authenticate reads an optional bearer token. Requests without one pass through
// anonymously; a token that does not verify is rejected.
func Authenticate(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Bearer token not found",
			})
		}

		claims, err := ParseJWT(secret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(principalKey, &Principal{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		return c.Next()
	}
}

// Authorize checks p against the allowed roles.
func Authorize(p *Principal, roles ...models.Role) error {
	if p == nil {
		return ErrNotAuthenticated
	}
	for _, role := range roles {
		if p.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// RoleProtected only lets callers holding one of roles through.
func RoleProtected(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch err := Authorize(CurrentUser(c), roles...); {
		case errors.Is(err, ErrNotAuthenticated):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": err.Error()})
		case errors.Is(err, ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"msg": err.Error()})
		}
		return c.Next()
	}
}

// AnyRole lets every authenticated caller through.
func AnyRole() fiber.Handler {
	return RoleProtected(models.RoleAdmin, models.RoleManager, models.RoleStaff)
}

// CurrentUser returns the authenticated caller, or nil.
func CurrentUser(c *fiber.Ctx) *Principal {
	p, _ := c.Locals(principalKey).(*Principal)
	return p
}
