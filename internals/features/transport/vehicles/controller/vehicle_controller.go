// internals/features/transport/vehicles/controller/vehicle_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	employeeModel "sekolahku_backend/internals/features/people/employees/model"
	"sekolahku_backend/internals/features/transport/vehicles/dto"
	model "sekolahku_backend/internals/features/transport/vehicles/model"
	helper "sekolahku_backend/internals/helpers"
)

type VehicleController struct {
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
// CRUD
// =======================================================

func (ctl *VehicleController) CreateVehicle(c *fiber.Ctx) error {
	var req dto.CreateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	m := req.ToModel()
	if err := ctl.DB.Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nomor kendaraan sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan kendaraan")
	}
	return helper.JsonCreated(c, "Kendaraan berhasil dibuat", m)
}

func (ctl *VehicleController) GetVehicles(c *fiber.Ctx) error {
	var vehicles []model.VehicleModel
	if err := ctl.DB.Order("vehicle_number ASC").Find(&vehicles).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar kendaraan")
	}
	return helper.JsonOK(c, "OK", vehicles)
}

func (ctl *VehicleController) GetVehicleByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kendaraan tidak valid")
	}

	var v model.VehicleModel
	if err := ctl.DB.First(&v, "vehicle_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kendaraan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kendaraan")
	}

	// sopir (kalau ada) ikut dikirim
	var driver *employeeModel.EmployeeModel
	if v.VehicleDriverID != nil {
		var emp employeeModel.EmployeeModel
		if err := ctl.DB.First(&emp, "employee_id = ?", *v.VehicleDriverID).Error; err == nil {
			driver = &emp
		}
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"vehicle": v,
		"driver":  driver,
	})
}

func (ctl *VehicleController) UpdateVehicle(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kendaraan tidak valid")
	}

	var req dto.UpdateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var v model.VehicleModel
	if err := ctl.DB.First(&v, "vehicle_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kendaraan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kendaraan")
	}

	req.ApplyTo(&v)
	if err := ctl.DB.Save(&v).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nomor kendaraan sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui kendaraan")
	}
	return helper.JsonUpdated(c, "Kendaraan berhasil diperbarui", v)
}

func (ctl *VehicleController) DeleteVehicle(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kendaraan tidak valid")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var v model.VehicleModel
		if err := tx.First(&v, "vehicle_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Kendaraan tidak ditemukan")
			}
			return err
		}

		// lepas tautan dua arah sebelum hapus
		if err := tx.Model(&employeeModel.DriverModel{}).
			Where("driver_vehicle_id = ?", id).
			Update("driver_vehicle_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&v).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Kendaraan berhasil dihapus", fiber.Map{"vehicle_id": id})
}

// =======================================================
// ASSIGN DRIVER — tautan 1:1 dua arah dalam satu tx
// =======================================================

func (ctl *VehicleController) AssignDriver(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kendaraan tidak valid")
	}

	var req dto.AssignDriverRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var v model.VehicleModel
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&v, "vehicle_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Kendaraan tidak ditemukan")
			}
			return err
		}

		// lepas sopir lama dari kendaraan ini
		if v.VehicleDriverID != nil {
			if err := tx.Model(&employeeModel.DriverModel{}).
				Where("driver_employee_id = ?", *v.VehicleDriverID).
				Update("driver_vehicle_id", nil).Error; err != nil {
				return err
			}
			v.VehicleDriverID = nil
		}

		if req.DriverEmployeeID != nil {
			driverID, err := uuid.Parse(*req.DriverEmployeeID)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "ID sopir tidak valid")
			}

			var driver employeeModel.DriverModel
			if err := tx.First(&driver, "driver_employee_id = ?", driverID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Sopir tidak ditemukan")
				}
				return err
			}
			if driver.DriverVehicleID != nil && *driver.DriverVehicleID != id {
				return fiber.NewError(fiber.StatusConflict, "Sopir sudah ditugaskan ke kendaraan lain")
			}

			if err := tx.Model(&employeeModel.DriverModel{}).
				Where("driver_employee_id = ?", driverID).
				Update("driver_vehicle_id", id).Error; err != nil {
				return err
			}
			v.VehicleDriverID = &driverID
		}

		return tx.Save(&v).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Penugasan sopir berhasil diperbarui", v)
}

// =======================================================
// LOCATION PING — dari perangkat di kendaraan
// =======================================================

func (ctl *VehicleController) UpdateLocation(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kendaraan tidak valid")
	}

	var req dto.UpdateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	res := ctl.DB.Model(&model.VehicleModel{}).
		Where("vehicle_id = ?", id).
		Updates(map[string]any{
			"vehicle_latest_lat":  req.Lat,
			"vehicle_latest_long": req.Long,
		})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan lokasi")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Kendaraan tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Lokasi kendaraan diperbarui", fiber.Map{
		"vehicle_id": id,
		"lat":        req.Lat,
		"long":       req.Long,
	})
}
