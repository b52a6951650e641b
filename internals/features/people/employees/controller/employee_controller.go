// internals/features/people/employees/controller/employee_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/people/employees/dto"
	model "sekolahku_backend/internals/features/people/employees/model"
	helper "sekolahku_backend/internals/helpers"
)

type EmployeeController struct {
	DB *gorm.DB
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "UNIQUE constraint") ||
			strings.Contains(err.Error(), "unique constraint"))
}

// =======================================================
// CREATE
// Sekalian membuat baris role (teachers/admins/drivers)
// sesuai work_role, dalam satu transaksi.
// =======================================================

func (ctl *EmployeeController) CreateEmployee(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.EmployeePassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	emp := req.ToModel()
	emp.EmployeePasswordHash = string(hash)

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(emp).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Email sudah terdaftar")
			}
			return err
		}
		switch emp.EmployeeWorkRole {
		case "admin":
			return tx.Create(&model.AdminModel{AdminEmployeeID: emp.EmployeeID}).Error
		case "teacher":
			return tx.Create(&model.TeacherModel{TeacherEmployeeID: emp.EmployeeID}).Error
		case "driver":
			return tx.Create(&model.DriverModel{DriverEmployeeID: emp.EmployeeID}).Error
		}
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Pegawai berhasil dibuat", emp)
}

// =======================================================
// LIST + SEARCH
// =======================================================

func (ctl *EmployeeController) GetEmployees(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.EmployeeModel{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("employee_search_name LIKE ?", "%"+helper.FoldSearchName(search)+"%")
	}
	if role := strings.TrimSpace(c.Query("work_role")); role != "" {
		q = q.Where("employee_work_role = ?", role)
	}
	switch c.Query("is_active") {
	case "true":
		q = q.Where("employee_is_active = ? AND employee_is_fired = ?", true, false)
	case "false":
		q = q.Where("employee_is_active = ? OR employee_is_fired = ?", false, true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung pegawai")
	}

	var employees []model.EmployeeModel
	if err := q.Order("employee_search_name ASC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&employees).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar pegawai")
	}

	return helper.JsonList(c, "OK", employees, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// =======================================================
// DETAIL
// =======================================================

func (ctl *EmployeeController) GetEmployeeByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pegawai tidak valid")
	}

	var emp model.EmployeeModel
	if err := ctl.DB.
		Preload("Admin").Preload("Teacher").Preload("Driver").
		First(&emp, "employee_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Pegawai tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pegawai")
	}
	return helper.JsonOK(c, "OK", emp)
}

// =======================================================
// UPDATE
// Ganti work_role juga memindahkan baris role-nya.
// =======================================================

func (ctl *EmployeeController) UpdateEmployee(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pegawai tidak valid")
	}

	var req dto.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var emp model.EmployeeModel
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&emp, "employee_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Pegawai tidak ditemukan")
			}
			return err
		}

		oldRole := emp.EmployeeWorkRole
		req.ApplyTo(&emp)

		if err := tx.Save(&emp).Error; err != nil {
			return err
		}

		if emp.EmployeeWorkRole != oldRole {
			switch oldRole {
			case "admin":
				if err := tx.Delete(&model.AdminModel{}, "admin_employee_id = ?", id).Error; err != nil {
					return err
				}
			case "teacher":
				if err := tx.Delete(&model.TeacherModel{}, "teacher_employee_id = ?", id).Error; err != nil {
					return err
				}
			case "driver":
				if err := tx.Delete(&model.DriverModel{}, "driver_employee_id = ?", id).Error; err != nil {
					return err
				}
			}
			switch emp.EmployeeWorkRole {
			case "admin":
				return tx.Create(&model.AdminModel{AdminEmployeeID: id}).Error
			case "teacher":
				return tx.Create(&model.TeacherModel{TeacherEmployeeID: id}).Error
			case "driver":
				return tx.Create(&model.DriverModel{DriverEmployeeID: id}).Error
			}
		}
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Pegawai berhasil diperbarui", emp)
}

// =======================================================
// DELETE
// Pegawai tidak dihapus keras: is_fired + nonaktif.
// =======================================================

func (ctl *EmployeeController) FireEmployee(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pegawai tidak valid")
	}

	res := ctl.DB.Model(&model.EmployeeModel{}).
		Where("employee_id = ?", id).
		Updates(map[string]any{
			"employee_is_fired":  true,
			"employee_is_active": false,
		})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memberhentikan pegawai")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Pegawai tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Pegawai diberhentikan", fiber.Map{"employee_id": id})
}

// =======================================================
// FOTO PROFIL
// =======================================================

func (ctl *EmployeeController) UploadEmployeeImage(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pegawai tidak valid")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File image wajib dikirim (field: image)")
	}

	normalized, err := helper.NormalizeProfileImage(fileHeader)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res := ctl.DB.Model(&model.EmployeeModel{}).
		Where("employee_id = ?", id).
		Update("employee_profile_image", normalized)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan foto profil")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Pegawai tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Foto profil berhasil diunggah", fiber.Map{
		"employee_id": id,
		"size_bytes":  len(normalized),
	})
}

func (ctl *EmployeeController) GetEmployeeImage(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pegawai tidak valid")
	}

	var emp model.EmployeeModel
	if err := ctl.DB.Select("employee_id", "employee_profile_image").
		First(&emp, "employee_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Pegawai tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil foto profil")
	}
	if len(emp.EmployeeProfileImage) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Pegawai belum punya foto profil")
	}

	c.Set(fiber.HeaderContentType, "image/webp")
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.Send(emp.EmployeeProfileImage)
}

func (ctl *EmployeeController) DeleteEmployeeImage(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pegawai tidak valid")
	}

	res := ctl.DB.Model(&model.EmployeeModel{}).
		Where("employee_id = ?", id).
		Update("employee_profile_image", nil)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus foto profil")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Pegawai tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Foto profil berhasil dihapus", fiber.Map{"employee_id": id})
}
