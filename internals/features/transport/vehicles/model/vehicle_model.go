package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — vehicles
// Kendaraan antar-jemput. Relasi driver↔vehicle 1:1 dan
// ditautkan dua arah (vehicle_driver_id di sini,
// driver_vehicle_id di tabel drivers).
// =========================================================

type VehicleModel struct {
	VehicleID uuid.UUID `gorm:"column:vehicle_id;type:uuid;primaryKey" json:"vehicle_id"`

	VehicleNumber string `gorm:"column:vehicle_number;type:varchar(20);not null;uniqueIndex:uq_vehicle_number" json:"vehicle_number"`

	// FK → drivers (nullable; kendaraan boleh tanpa sopir)
	VehicleDriverID *uuid.UUID `gorm:"column:vehicle_driver_id;type:uuid;index:ix_vehicle_driver" json:"vehicle_driver_id,omitempty"`

	// Ping lokasi terakhir dari perangkat di kendaraan
	VehicleLatestLat  float64 `gorm:"column:vehicle_latest_lat;not null;default:0" json:"vehicle_latest_lat"`
	VehicleLatestLong float64 `gorm:"column:vehicle_latest_long;not null;default:0" json:"vehicle_latest_long"`

	VehicleCreatedAt time.Time `gorm:"column:vehicle_created_at;not null" json:"vehicle_created_at"`
	VehicleUpdatedAt time.Time `gorm:"column:vehicle_updated_at;not null" json:"vehicle_updated_at"`
}

func (VehicleModel) TableName() string { return "vehicles" }

func (m *VehicleModel) BeforeCreate(tx *gorm.DB) error {
	if m.VehicleID == uuid.Nil {
		m.VehicleID = uuid.New()
	}
	now := time.Now()
	if m.VehicleCreatedAt.IsZero() {
		m.VehicleCreatedAt = now
	}
	m.VehicleUpdatedAt = now
	return nil
}

func (m *VehicleModel) BeforeUpdate(tx *gorm.DB) error {
	m.VehicleUpdatedAt = time.Now()
	return nil
}
