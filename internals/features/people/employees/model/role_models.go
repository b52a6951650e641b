package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ROLE LINKS — admins / teachers / drivers
// PK = employee_id; keberadaan baris = punya role tsb.
// =========================================================

type AdminModel struct {
	AdminEmployeeID uuid.UUID `gorm:"column:admin_employee_id;type:uuid;primaryKey" json:"admin_employee_id"`
	AdminCreatedAt  time.Time `gorm:"column:admin_created_at;not null" json:"admin_created_at"`

	Employee *EmployeeModel `gorm:"foreignKey:AdminEmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

func (AdminModel) TableName() string { return "admins" }

func (m *AdminModel) BeforeCreate(tx *gorm.DB) error {
	if m.AdminCreatedAt.IsZero() {
		m.AdminCreatedAt = time.Now()
	}
	return nil
}

type TeacherModel struct {
	TeacherEmployeeID uuid.UUID `gorm:"column:teacher_employee_id;type:uuid;primaryKey" json:"teacher_employee_id"`
	TeacherCreatedAt  time.Time `gorm:"column:teacher_created_at;not null" json:"teacher_created_at"`
}

func (TeacherModel) TableName() string { return "teachers" }

func (m *TeacherModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeacherCreatedAt.IsZero() {
		m.TeacherCreatedAt = time.Now()
	}
	return nil
}

// DriverModel memegang tautan 1:1 ke vehicles (nullable).
type DriverModel struct {
	DriverEmployeeID uuid.UUID  `gorm:"column:driver_employee_id;type:uuid;primaryKey" json:"driver_employee_id"`
	DriverVehicleID  *uuid.UUID `gorm:"column:driver_vehicle_id;type:uuid;index:ix_driver_vehicle" json:"driver_vehicle_id,omitempty"`
	DriverCreatedAt  time.Time  `gorm:"column:driver_created_at;not null" json:"driver_created_at"`
}

func (DriverModel) TableName() string { return "drivers" }

func (m *DriverModel) BeforeCreate(tx *gorm.DB) error {
	if m.DriverCreatedAt.IsZero() {
		m.DriverCreatedAt = time.Now()
	}
	return nil
}
