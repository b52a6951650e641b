// internals/features/school/classrooms/controller/classroom_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/classrooms/dto"
	model "sekolahku_backend/internals/features/school/classrooms/model"
	enrollmentModel "sekolahku_backend/internals/features/school/enrollments/model"
	helper "sekolahku_backend/internals/helpers"
)

type ClassroomController struct {
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
// CLASSROOM CRUD
// =======================================================

func (ctl *ClassroomController) CreateClassroom(c *fiber.Ctx) error {
	var req dto.CreateClassroomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	m := req.ToModel()
	if err := ctl.DB.Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nama kelas sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan kelas")
	}
	return helper.JsonCreated(c, "Kelas berhasil dibuat", m)
}

func (ctl *ClassroomController) GetClassrooms(c *fiber.Ctx) error {
	q := ctl.DB.Model(&model.ClassroomModel{})
	if c.Query("is_active") == "true" {
		q = q.Where("classroom_is_active = ?", true)
	}

	var rooms []model.ClassroomModel
	if err := q.Preload("Sections").
		Order("classroom_name ASC").
		Find(&rooms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar kelas")
	}
	return helper.JsonOK(c, "OK", rooms)
}

func (ctl *ClassroomController) GetClassroomByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	var room model.ClassroomModel
	if err := ctl.DB.Preload("Sections").
		First(&room, "classroom_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}
	return helper.JsonOK(c, "OK", room)
}

func (ctl *ClassroomController) UpdateClassroom(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	var req dto.UpdateClassroomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var room model.ClassroomModel
	if err := ctl.DB.First(&room, "classroom_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}

	req.ApplyTo(&room)
	if err := ctl.DB.Save(&room).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nama kelas sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui kelas")
	}
	return helper.JsonUpdated(c, "Kelas berhasil diperbarui", room)
}

// DeleteClassroom: kelas dengan enrollment aktif diblokir tanpa force.
func (ctl *ClassroomController) DeleteClassroom(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	force := c.Query("force") == "true"

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var room model.ClassroomModel
		if err := tx.First(&room, "classroom_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Kelas tidak ditemukan")
			}
			return err
		}

		var activeEnrollments int64
		if err := tx.Model(&enrollmentModel.EnrollmentModel{}).
			Where("enrollment_classroom_id = ? AND enrollment_is_active = ?", id, true).
			Count(&activeEnrollments).Error; err != nil {
			return err
		}
		if activeEnrollments > 0 && !force {
			return fiber.NewError(fiber.StatusConflict, "Kelas masih punya enrollment aktif; gunakan force untuk menghapus")
		}

		if err := tx.Where("section_classroom_id = ?", id).
			Delete(&model.ClassSectionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&room).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Kelas berhasil dihapus", fiber.Map{"classroom_id": id})
}
