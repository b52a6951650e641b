// internals/features/people/employees/scheduler/attendance_scheduler.go
package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "sekolahku_backend/internals/features/people/employees/model"
	helper "sekolahku_backend/internals/helpers"
)

// StartAttendanceScheduler menjalankan cron yang memastikan setiap
// pegawai aktif punya baris kehadiran untuk hari ini. Jalan tiap 10
// menit supaya pegawai baru di tengah hari tetap kebagian baris.
// Idempoten lewat unique (employee, tanggal).
func StartAttendanceScheduler(db *gorm.DB) *cron.Cron {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		log.Println("⚠️ Gagal load timezone Asia/Kolkata, fallback UTC:", err)
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc("*/10 * * * *", func() {
		now := time.Now().In(loc)
		today := helper.ZeroTimeOfDay(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
		if _, err := SeedDailyAttendance(db, today, now.Weekday() == time.Sunday); err != nil {
			log.Println("❌ Attendance scheduler:", err)
		}
	})
	if err != nil {
		log.Println("❌ Gagal mendaftarkan attendance cron:", err)
		return c
	}

	c.Start()
	log.Println("⏱ Attendance scheduler aktif (tiap 10 menit,", loc.String()+")")
	return c
}

// SeedDailyAttendance membuat baris kehadiran untuk semua pegawai aktif
// pada tanggal tertentu. Baris yang sudah ada tidak tersentuh (ON
// CONFLICT DO NOTHING). Mengembalikan jumlah baris baru.
func SeedDailyAttendance(db *gorm.DB, date time.Time, isHoliday bool) (int64, error) {
	var employees []model.EmployeeModel
	if err := db.Select("employee_id").
		Where("employee_is_active = ? AND employee_is_fired = ?", true, false).
		Find(&employees).Error; err != nil {
		return 0, err
	}
	if len(employees) == 0 {
		return 0, nil
	}

	rows := make([]model.EmployeeAttendanceModel, 0, len(employees))
	for _, emp := range employees {
		rows = append(rows, model.EmployeeAttendanceModel{
			AttendanceEmployeeID: emp.EmployeeID,
			AttendanceDate:       date,
			AttendanceIsHoliday:  isHoliday,
		})
	}

	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	return res.RowsAffected, res.Error
}
