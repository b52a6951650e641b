// internals/features/people/employees/controller/auth_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/people/employees/dto"
	model "sekolahku_backend/internals/features/people/employees/model"
	helper "sekolahku_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

const accessTokenTTL = 12 * time.Hour

// Login menukar email+password dengan JWT. Role diambil dari
// employee_work_role dan dibawa di klaim token.
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var emp model.EmployeeModel
	if err := ctl.DB.First(&emp, "employee_email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.EmployeePasswordHash), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if !emp.EmployeeIsActive || emp.EmployeeIsFired {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	expiresAt := time.Now().Add(accessTokenTTL)
	claims := jwt.MapClaims{
		"employee_id":   emp.EmployeeID.String(),
		"employee_name": emp.EmployeeName,
		"role":          emp.EmployeeWorkRole,
		"exp":           expiresAt.Unix(),
		"iat":           time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		Employee:    &emp,
	})
}
