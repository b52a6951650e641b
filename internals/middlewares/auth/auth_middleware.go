// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	employeeModel "sekolahku_backend/internals/features/people/employees/model"
)

// Path publik yang di-skip auth (login, webhook dsb.)
var skipPaths = map[string]struct{}{
	"/api/auth/login":            {},
	"/api/payments/notification": {},
}

func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Skip path tertentu (webhook dsb.)
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		// 2) Ambil Authorization (atau cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// 3) Parse & verifikasi JWT
		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 4) Validasi exp (toleransi skew 30 detik)
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// 5) Ambil employee_id & validasi masih aktif
		employeeID, err := extractEmployeeID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing employee ID")
		}
		c.Locals("employee_id", employeeID.String())

		if err := ensureEmployeeActive(db, employeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Employee not found")
			}
			return fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
		}

		// 6) Simpan klaim dasar ke context
		if role, ok := claims["role"].(string); ok {
			c.Locals("role", role)
		}
		if name, ok := claims["employee_name"].(string); ok {
			c.Locals("employee_name", name)
		}

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return "", errors.New("Unauthorized - Invalid Authorization header")
		}
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}
	if cookie := c.Cookies("access_token"); cookie != "" {
		return cookie, nil
	}
	return "", errors.New("Unauthorized - Missing token")
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("missing exp claim")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return errors.New("invalid exp claim")
	}
	expTime := time.Unix(int64(expFloat), 0)
	if time.Now().After(expTime.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}

func extractEmployeeID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["employee_id"].(string)
	if !ok || raw == "" {
		return uuid.Nil, errors.New("missing employee_id claim")
	}
	return uuid.Parse(raw)
}

func ensureEmployeeActive(db *gorm.DB, id uuid.UUID) error {
	var emp employeeModel.EmployeeModel
	if err := db.Select("employee_id", "employee_is_active", "employee_is_fired").
		First(&emp, "employee_id = ?", id).Error; err != nil {
		return err
	}
	if !emp.EmployeeIsActive || emp.EmployeeIsFired {
		return errors.New("employee inactive")
	}
	return nil
}
