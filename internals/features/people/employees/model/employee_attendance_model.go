package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — employee_attendances
// Satu baris per (employee, tanggal). Baris dibuat oleh
// scheduler harian atau manual oleh admin.
// =========================================================

type EmployeeAttendanceModel struct {
	AttendanceID uuid.UUID `gorm:"column:attendance_id;type:uuid;primaryKey" json:"attendance_id"`

	AttendanceEmployeeID uuid.UUID `gorm:"column:attendance_employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date,priority:1" json:"attendance_employee_id"`
	AttendanceDate       time.Time `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2" json:"attendance_date"`

	AttendanceIsPresent   bool       `gorm:"column:attendance_is_present;not null;default:false" json:"attendance_is_present"`
	AttendanceClockInTime *time.Time `gorm:"column:attendance_clock_in_time" json:"attendance_clock_in_time,omitempty"`
	AttendanceIsHoliday   bool       `gorm:"column:attendance_is_holiday;not null;default:false" json:"attendance_is_holiday"`
	AttendanceIsLeave     bool       `gorm:"column:attendance_is_leave;not null;default:false" json:"attendance_is_leave"`

	// Entry disable-able, bukan delete-able
	AttendanceIsInvalid bool `gorm:"column:attendance_is_invalid;not null;default:false" json:"attendance_is_invalid"`

	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;not null" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time `gorm:"column:attendance_updated_at;not null" json:"attendance_updated_at"`

	Employee *EmployeeModel `gorm:"foreignKey:AttendanceEmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

func (EmployeeAttendanceModel) TableName() string { return "employee_attendances" }

func (m *EmployeeAttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	now := time.Now()
	if m.AttendanceCreatedAt.IsZero() {
		m.AttendanceCreatedAt = now
	}
	m.AttendanceUpdatedAt = now
	return nil
}

func (m *EmployeeAttendanceModel) BeforeUpdate(tx *gorm.DB) error {
	m.AttendanceUpdatedAt = time.Now()
	return nil
}
