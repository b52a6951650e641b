// internals/features/school/classrooms/controller/section_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/classrooms/dto"
	model "sekolahku_backend/internals/features/school/classrooms/model"
	enrollmentModel "sekolahku_backend/internals/features/school/enrollments/model"
	helper "sekolahku_backend/internals/helpers"
)

type SectionController struct {
	DB *gorm.DB
}

// =======================================================
// SECTION CRUD (nested di bawah classroom)
// =======================================================

func (ctl *SectionController) CreateSection(c *fiber.Ctx) error {
	classroomID, err := parseUUIDParam(c, "classroomId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	var req dto.CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var room model.ClassroomModel
	if err := ctl.DB.First(&room, "classroom_id = ?", classroomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}

	m := req.ToModel(&room)
	if err := ctl.DB.Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nama section sudah dipakai di kelas ini")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan section")
	}
	return helper.JsonCreated(c, "Section berhasil dibuat", m)
}

func (ctl *SectionController) GetSections(c *fiber.Ctx) error {
	classroomID, err := parseUUIDParam(c, "classroomId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	q := ctl.DB.Where("section_classroom_id = ?", classroomID)

	// filter by kode mapel via mirror text[]
	if code := strings.TrimSpace(c.Query("subject_code")); code != "" {
		if ctl.DB.Dialector.Name() == "postgres" {
			q = q.Where("? = ANY(section_subject_codes)", strings.ToUpper(code))
		} else {
			q = q.Where("section_subject_codes LIKE ?", "%"+strings.ToUpper(code)+"%")
		}
	}

	var sections []model.ClassSectionModel
	if err := q.Order("section_name ASC").Find(&sections).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar section")
	}
	return helper.JsonOK(c, "OK", sections)
}

func (ctl *SectionController) UpdateSection(c *fiber.Ctx) error {
	sectionID, err := parseUUIDParam(c, "sectionId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID section tidak valid")
	}

	var req dto.UpdateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var section model.ClassSectionModel
	if err := ctl.DB.First(&section, "section_id = ?", sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Section tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil section")
	}

	req.ApplyTo(&section)
	if err := ctl.DB.Save(&section).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nama section sudah dipakai di kelas ini")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui section")
	}
	return helper.JsonUpdated(c, "Section berhasil diperbarui", section)
}

func (ctl *SectionController) DeleteSection(c *fiber.Ctx) error {
	sectionID, err := parseUUIDParam(c, "sectionId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID section tidak valid")
	}
	force := c.Query("force") == "true"

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var section model.ClassSectionModel
		if err := tx.First(&section, "section_id = ?", sectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Section tidak ditemukan")
			}
			return err
		}

		var activeEnrollments int64
		if err := tx.Model(&enrollmentModel.EnrollmentModel{}).
			Where("enrollment_section_id = ? AND enrollment_is_active = ?", sectionID, true).
			Count(&activeEnrollments).Error; err != nil {
			return err
		}
		if activeEnrollments > 0 && !force {
			return fiber.NewError(fiber.StatusConflict, "Section masih punya enrollment aktif; gunakan force untuk menghapus")
		}

		return tx.Delete(&section).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Section berhasil dihapus", fiber.Map{"section_id": sectionID})
}

// =======================================================
// ROSTER — daftar siswa ter-enroll di satu section
// =======================================================

func (ctl *SectionController) GetSectionRoster(c *fiber.Ctx) error {
	sectionID, err := parseUUIDParam(c, "sectionId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID section tidak valid")
	}

	var section model.ClassSectionModel
	if err := ctl.DB.Select("section_id", "section_name", "section_classroom_id").
		First(&section, "section_id = ?", sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Section tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil section")
	}

	type rosterRow struct {
		EnrollmentID           string  `json:"enrollment_id"`
		StudentID              string  `json:"student_id"`
		StudentName            string  `json:"student_name"`
		EnrollmentIsActive     bool    `json:"enrollment_is_active"`
		EnrollmentIsComplete   bool    `json:"enrollment_is_complete"`
		EnrollmentMonthlyFee   float64 `json:"enrollment_monthly_fee"`
		EnrollmentSessionStart string  `json:"enrollment_session_start"`
		EnrollmentSessionEnd   string  `json:"enrollment_session_end"`
		TotalPaid              float64 `json:"total_paid"`
		TotalBalance           float64 `json:"total_balance"`
	}

	q := ctl.DB.Table("student_enrollments").
		Select(`student_enrollments.enrollment_id,
			students.student_id,
			students.student_name,
			student_enrollments.enrollment_is_active,
			student_enrollments.enrollment_is_complete,
			student_enrollments.enrollment_monthly_fee,
			student_enrollments.enrollment_session_start,
			student_enrollments.enrollment_session_end,
			(SELECT COALESCE(SUM(f.monthly_fee_paid), 0) FROM student_monthly_fees f
				WHERE f.monthly_fee_enrollment_id = student_enrollments.enrollment_id) AS total_paid,
			(SELECT COALESCE(SUM(f.monthly_fee_balance), 0) FROM student_monthly_fees f
				WHERE f.monthly_fee_enrollment_id = student_enrollments.enrollment_id) AS total_balance`).
		Joins("JOIN students ON students.student_id = student_enrollments.enrollment_student_id").
		Where("student_enrollments.enrollment_section_id = ?", sectionID)

	// ?from=YYYY-MM&to=YYYY-MM membatasi ke enrollment yang overlap
	// dengan periode tsb (session disimpan half-open).
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse("2006-01", fromStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format from harus YYYY-MM")
		}
		q = q.Where("student_enrollments.enrollment_session_end > ?", from)
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse("2006-01", toStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format to harus YYYY-MM")
		}
		q = q.Where("student_enrollments.enrollment_session_start < ?", to.AddDate(0, 1, 0))
	}

	var rows []rosterRow
	if err := q.Order("students.student_search_name ASC").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil roster section")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"section": section,
		"roster":  rows,
	})
}
