// internals/features/people/students/controller/student_image_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/people/students/model"
	helper "sekolahku_backend/internals/helpers"
)

// =======================================================
// FOTO PROFIL
// Upload multipart → dinormalkan ke webp 512px → disimpan
// langsung di kolom bytea, di-stream kembali via GET.
// =======================================================

func (ctl *StudentController) UploadStudentImage(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File image wajib dikirim (field: image)")
	}

	normalized, err := helper.NormalizeProfileImage(fileHeader)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res := ctl.DB.Model(&model.StudentModel{}).
		Where("student_id = ?", id).
		Update("student_profile_image", normalized)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan foto profil")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
	}

	return helper.JsonUpdated(c, "Foto profil berhasil diunggah", fiber.Map{
		"student_id": id,
		"size_bytes": len(normalized),
	})
}

func (ctl *StudentController) GetStudentImage(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	var st model.StudentModel
	if err := ctl.DB.Select("student_id", "student_profile_image").
		First(&st, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil foto profil")
	}
	if len(st.StudentProfileImage) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa belum punya foto profil")
	}

	c.Set(fiber.HeaderContentType, "image/webp")
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.Send(st.StudentProfileImage)
}

func (ctl *StudentController) DeleteStudentImage(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	res := ctl.DB.Model(&model.StudentModel{}).
		Where("student_id = ?", id).
		Update("student_profile_image", nil)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus foto profil")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Foto profil dihapus", fiber.Map{"student_id": id})
}
