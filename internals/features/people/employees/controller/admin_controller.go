// internals/features/people/employees/controller/admin_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/people/employees/model"
	helper "sekolahku_backend/internals/helpers"
)

type AdminController struct {
	DB *gorm.DB
}

// =======================================================
// ADMIN MANAGEMENT
// Baris admins terpisah dari work_role supaya guru/staff
// bisa dirangkap jadi admin tanpa kehilangan role kerjanya.
// =======================================================

func (ctl *AdminController) GetAdmins(c *fiber.Ctx) error {
	var admins []model.AdminModel
	if err := ctl.DB.Preload("Employee").Find(&admins).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar admin")
	}
	return helper.JsonOK(c, "OK", admins)
}

func (ctl *AdminController) MakeAdmin(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pegawai tidak valid")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var emp model.EmployeeModel
		if err := tx.Select("employee_id", "employee_is_active", "employee_is_fired").
			First(&emp, "employee_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Pegawai tidak ditemukan")
			}
			return err
		}
		if !emp.EmployeeIsActive || emp.EmployeeIsFired {
			return fiber.NewError(fiber.StatusBadRequest, "Pegawai sudah tidak aktif")
		}

		if err := tx.Create(&model.AdminModel{AdminEmployeeID: id}).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Pegawai sudah menjadi admin")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Pegawai berhasil dijadikan admin", fiber.Map{"employee_id": id})
}

func (ctl *AdminController) RemoveAdmin(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pegawai tidak valid")
	}

	// Admin tidak bisa mencabut dirinya sendiri.
	if caller, _ := c.Locals("employee_id").(string); caller == id.String() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak bisa mencabut akses admin sendiri")
	}

	res := ctl.DB.Delete(&model.AdminModel{}, "admin_employee_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mencabut akses admin")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Pegawai bukan admin")
	}
	return helper.JsonDeleted(c, "Akses admin dicabut", fiber.Map{"employee_id": id})
}
