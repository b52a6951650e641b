// internals/features/people/employees/controller/attendance_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/people/employees/dto"
	model "sekolahku_backend/internals/features/people/employees/model"
	scheduler "sekolahku_backend/internals/features/people/employees/scheduler"
	helper "sekolahku_backend/internals/helpers"
)

type AttendanceController struct {
	DB *gorm.DB
}

// =======================================================
// MARK — tandai hadir / cuti / invalid
// Baris (employee, tanggal) dibuat scheduler; kalau belum
// ada (scheduler mati), dibuat di sini.
// =======================================================

func (ctl *AttendanceController) MarkAttendance(c *fiber.Ctx) error {
	employeeID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pegawai tidak valid")
	}

	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	date := helper.ZeroTimeOfDay(time.Now().UTC())
	if req.Date != "" {
		date, _ = time.Parse("2006-01-02", req.Date)
	}

	var att model.EmployeeAttendanceModel
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var emp model.EmployeeModel
		if err := tx.Select("employee_id", "employee_is_active", "employee_is_fired").
			First(&emp, "employee_id = ?", employeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Pegawai tidak ditemukan")
			}
			return err
		}
		if !emp.EmployeeIsActive || emp.EmployeeIsFired {
			return fiber.NewError(fiber.StatusBadRequest, "Pegawai sudah tidak aktif")
		}

		err := tx.Where("attendance_employee_id = ? AND attendance_date = ?", employeeID, date).
			First(&att).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			att = model.EmployeeAttendanceModel{
				AttendanceEmployeeID: employeeID,
				AttendanceDate:       date,
			}
			if err := tx.Create(&att).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if req.IsPresent != nil {
			att.AttendanceIsPresent = *req.IsPresent
			if *req.IsPresent && att.AttendanceClockInTime == nil {
				now := time.Now()
				att.AttendanceClockInTime = &now
			}
			if !*req.IsPresent {
				att.AttendanceClockInTime = nil
			}
		}
		if req.IsLeave != nil {
			att.AttendanceIsLeave = *req.IsLeave
		}
		if req.IsInvalid != nil {
			att.AttendanceIsInvalid = *req.IsInvalid
		}

		return tx.Save(&att).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "Kehadiran berhasil dicatat", att)
}

// =======================================================
// LIST — rekap per pegawai atau per tanggal
// =======================================================

func (ctl *AttendanceController) GetEmployeeAttendance(c *fiber.Ctx) error {
	employeeID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pegawai tidak valid")
	}

	q := ctl.DB.Where("attendance_employee_id = ?", employeeID)

	// ?month=2025-06 membatasi ke satu bulan kalender
	if monthStr := c.Query("month"); monthStr != "" {
		first, err := time.Parse("2006-01", monthStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format month harus YYYY-MM")
		}
		q = q.Where("attendance_date >= ? AND attendance_date < ?", first, first.AddDate(0, 1, 0))
	}

	var rows []model.EmployeeAttendanceModel
	if err := q.Order("attendance_date DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kehadiran")
	}

	present, leave := 0, 0
	for _, r := range rows {
		if r.AttendanceIsInvalid {
			continue
		}
		if r.AttendanceIsPresent {
			present++
		}
		if r.AttendanceIsLeave {
			leave++
		}
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"attendances":   rows,
		"total_days":    len(rows),
		"total_present": present,
		"total_leave":   leave,
	})
}

// =======================================================
// OPS — generate harian manual & tandai hari libur
// =======================================================

// GenerateDailyAttendance memicu pembuatan baris kehadiran untuk satu
// tanggal tanpa menunggu scheduler (misal setelah restore data).
func (ctl *AttendanceController) GenerateDailyAttendance(c *fiber.Ctx) error {
	date := helper.ZeroTimeOfDay(time.Now().UTC())
	if dateStr := c.Query("date"); dateStr != "" {
		var err error
		if date, err = time.Parse("2006-01-02", dateStr); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format date harus YYYY-MM-DD")
		}
	}

	created, err := scheduler.SeedDailyAttendance(ctl.DB, date, date.Weekday() == time.Sunday)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal generate kehadiran harian")
	}
	return helper.JsonOK(c, "Kehadiran harian berhasil digenerate", fiber.Map{
		"date":         date.Format("2006-01-02"),
		"rows_created": created,
	})
}

// MarkDayHoliday menandai satu tanggal sebagai hari libur untuk semua
// pegawai. Baris yang belum ada dibuat dulu.
func (ctl *AttendanceController) MarkDayHoliday(c *fiber.Ctx) error {
	dateStr := c.Query("date")
	if dateStr == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query date wajib diisi (YYYY-MM-DD)")
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format date harus YYYY-MM-DD")
	}

	if _, err := scheduler.SeedDailyAttendance(ctl.DB, date, true); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyiapkan baris kehadiran")
	}
	res := ctl.DB.Model(&model.EmployeeAttendanceModel{}).
		Where("attendance_date = ?", date).
		Updates(map[string]interface{}{
			"attendance_is_holiday": true,
			"attendance_is_present": false,
			"attendance_clock_in_time": nil,
		})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menandai hari libur")
	}

	return helper.JsonUpdated(c, "Hari libur berhasil ditandai", fiber.Map{
		"date":         date.Format("2006-01-02"),
		"rows_updated": res.RowsAffected,
	})
}

func (ctl *AttendanceController) GetAttendanceByDate(c *fiber.Ctx) error {
	dateStr := c.Query("date")
	date := helper.ZeroTimeOfDay(time.Now().UTC())
	if dateStr != "" {
		var err error
		if date, err = time.Parse("2006-01-02", dateStr); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format date harus YYYY-MM-DD")
		}
	}

	var rows []model.EmployeeAttendanceModel
	if err := ctl.DB.Preload("Employee").
		Where("attendance_date = ?", date).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kehadiran")
	}
	return helper.JsonOK(c, "OK", rows)
}
