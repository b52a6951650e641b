// internals/features/people/students/controller/student_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
	"sekolahku_backend/internals/features/people/students/dto"
	model "sekolahku_backend/internals/features/people/students/model"
	enrollmentModel "sekolahku_backend/internals/features/school/enrollments/model"
	helper "sekolahku_backend/internals/helpers"
)

type StudentController struct {
	DB *gorm.DB
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// =======================================================
// CREATE
// =======================================================

func (ctl *StudentController) CreateStudent(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	m := req.ToModel()
	if err := ctl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan siswa")
	}
	return helper.JsonCreated(c, "Siswa berhasil dibuat", m)
}

// =======================================================
// LIST + SEARCH
// =======================================================

func (ctl *StudentController) GetStudents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.StudentModel{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("student_search_name LIKE ?", "%"+helper.FoldSearchName(search)+"%")
	}
	switch c.Query("is_active") {
	case "true":
		q = q.Where("student_is_active = ?", true)
	case "false":
		q = q.Where("student_is_active = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung siswa")
	}

	var students []model.StudentModel
	if err := q.Order("student_search_name ASC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar siswa")
	}

	return helper.JsonList(c, "OK", students, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// =======================================================
// DETAIL
// =======================================================

func (ctl *StudentController) GetStudentByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	var st model.StudentModel
	if err := ctl.DB.First(&st, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}

	var enrollments []enrollmentModel.EnrollmentModel
	if err := ctl.DB.Where("enrollment_student_id = ?", id).
		Order("enrollment_session_start DESC").
		Find(&enrollments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil enrollment siswa")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"student":     st,
		"enrollments": enrollments,
	})
}

// =======================================================
// UPDATE
// =======================================================

func (ctl *StudentController) UpdateStudent(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var st model.StudentModel
	if err := ctl.DB.First(&st, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}

	req.ApplyTo(&st)
	if err := ctl.DB.Save(&st).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui siswa")
	}
	return helper.JsonUpdated(c, "Siswa berhasil diperbarui", st)
}

// =======================================================
// DELETE
// Siswa dengan enrollment tidak boleh dihapus tanpa force.
// =======================================================

func (ctl *StudentController) DeleteStudent(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}
	force := c.Query("force") == "true"

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var st model.StudentModel
		if err := tx.First(&st, "student_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
			}
			return err
		}

		var enrollments int64
		if err := tx.Model(&enrollmentModel.EnrollmentModel{}).
			Where("enrollment_student_id = ?", id).
			Count(&enrollments).Error; err != nil {
			return err
		}
		if enrollments > 0 && !force {
			return fiber.NewError(fiber.StatusConflict, "Siswa masih punya enrollment; gunakan force untuk menghapus")
		}

		if force {
			if err := tx.Where("fee_payment_student_id = ?", id).
				Delete(&feeModel.FeePaymentModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("monthly_fee_enrollment_id IN (?)",
				tx.Model(&enrollmentModel.EnrollmentModel{}).
					Select("enrollment_id").
					Where("enrollment_student_id = ?", id)).
				Delete(&feeModel.MonthlyFeeModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("exam_entry_student_id = ?", id).
				Delete(&enrollmentModel.ExamEntryModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("enrollment_student_id = ?", id).
				Delete(&enrollmentModel.EnrollmentModel{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&st).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Siswa berhasil dihapus", fiber.Map{"student_id": id})
}

// =======================================================
// RIWAYAT PEMBAYARAN
// =======================================================

func (ctl *StudentController) GetStudentPayments(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	var st model.StudentModel
	if err := ctl.DB.Select("student_id").First(&st, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}

	var receipts []feeModel.FeePaymentModel
	if err := ctl.DB.Where("fee_payment_student_id = ?", id).
		Order("fee_payment_paid_on DESC").
		Find(&receipts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat pembayaran")
	}
	return helper.JsonOK(c, "OK", receipts)
}
