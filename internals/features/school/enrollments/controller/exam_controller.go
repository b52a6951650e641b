// internals/features/school/enrollments/controller/exam_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	studentModel "sekolahku_backend/internals/features/people/students/model"
	"sekolahku_backend/internals/features/school/enrollments/dto"
	model "sekolahku_backend/internals/features/school/enrollments/model"
	helper "sekolahku_backend/internals/helpers"
)

type ExamController struct {
	DB *gorm.DB
}

// =======================================================
// EXAM ENTRIES — hasil ujian per enrollment
// =======================================================

// guardExamMutation: enrollment harus milik siswa tsb, masih aktif,
// belum complete, dan siswanya masih aktif. Enrollment complete itu
// arsip — nilai ujian tidak boleh ditulis ke sana.
func (ctl *ExamController) guardExamMutation(studentID, enrollmentID uuid.UUID) (*model.EnrollmentModel, error) {
	var enr model.EnrollmentModel
	if err := ctl.DB.First(&enr, "enrollment_id = ?", enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Enrollment tidak ditemukan")
		}
		return nil, err
	}
	if enr.EnrollmentStudentID != studentID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Enrollment bukan milik siswa ini")
	}
	if !enr.EnrollmentIsActive {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Enrollment sudah tidak aktif")
	}
	if enr.EnrollmentIsComplete {
		return nil, fiber.NewError(fiber.StatusConflict, "Enrollment sudah complete")
	}

	var st studentModel.StudentModel
	if err := ctl.DB.Select("student_id", "student_is_active").
		First(&st, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return nil, err
	}
	if !st.StudentIsActive {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Siswa sudah tidak aktif")
	}
	return &enr, nil
}

func (ctl *ExamController) CreateExamEntry(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}
	enrollmentID, err := parseUUIDParam(c, "enrollmentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID enrollment tidak valid")
	}

	var req dto.CreateExamEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}
	if err := dto.ValidateSubjectMarks(req.ExamEntrySubjects); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if _, err := ctl.guardExamMutation(studentID, enrollmentID); err != nil {
		return helper.FromFiberError(c, err)
	}

	m := req.ToModel(studentID, enrollmentID)
	if err := ctl.DB.Create(m).Error; err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "UNIQUE") ||
			strings.Contains(err.Error(), "duplicate key") {
			return helper.JsonError(c, fiber.StatusConflict, "Sudah ada ujian untuk siswa ini pada tanggal tersebut")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan hasil ujian")
	}
	return helper.JsonCreated(c, "Hasil ujian berhasil disimpan", m)
}

func (ctl *ExamController) GetExamEntries(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}
	enrollmentID, err := parseUUIDParam(c, "enrollmentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID enrollment tidak valid")
	}

	var entries []model.ExamEntryModel
	if err := ctl.DB.
		Where("exam_entry_student_id = ? AND exam_entry_enrollment_id = ?", studentID, enrollmentID).
		Order("exam_entry_date DESC").
		Find(&entries).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil hasil ujian")
	}
	return helper.JsonOK(c, "OK", entries)
}

func (ctl *ExamController) UpdateExamEntry(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}
	enrollmentID, err := parseUUIDParam(c, "enrollmentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID enrollment tidak valid")
	}
	examID, err := parseUUIDParam(c, "examId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID ujian tidak valid")
	}

	var req dto.UpdateExamEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if req.IsEmpty() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Minimal satu field harus diisi")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}
	if err := dto.ValidateSubjectMarks(req.ExamEntrySubjects); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	enr, err := ctl.guardExamMutation(studentID, enrollmentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// Kalau mapel dikirim, jumlahnya harus sama dengan snapshot mapel
	// di enrollment.
	if req.ExamEntrySubjects != nil && len(enr.EnrollmentSubjects) > 0 {
		var snapshot []json.RawMessage
		if err := json.Unmarshal(enr.EnrollmentSubjects, &snapshot); err == nil &&
			len(snapshot) != len(req.ExamEntrySubjects) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Jumlah mapel tidak sesuai dengan enrollment")
		}
	}

	var entry model.ExamEntryModel
	if err := ctl.DB.
		First(&entry, "exam_entry_id = ? AND exam_entry_student_id = ? AND exam_entry_enrollment_id = ?",
			examID, studentID, enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Hasil ujian tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil hasil ujian")
	}

	req.ApplyTo(&entry)
	if err := ctl.DB.Save(&entry).Error; err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "UNIQUE") ||
			strings.Contains(err.Error(), "duplicate key") {
			return helper.JsonError(c, fiber.StatusConflict, "Sudah ada ujian untuk siswa ini pada tanggal tersebut")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui hasil ujian")
	}
	return helper.JsonUpdated(c, "Hasil ujian berhasil diperbarui", entry)
}

func (ctl *ExamController) DeleteExamEntry(c *fiber.Ctx) error {
	examID, err := parseUUIDParam(c, "examId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID ujian tidak valid")
	}

	res := ctl.DB.Delete(&model.ExamEntryModel{}, "exam_entry_id = ?", examID)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus hasil ujian")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Hasil ujian tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Hasil ujian berhasil dihapus", fiber.Map{"exam_entry_id": examID})
}
