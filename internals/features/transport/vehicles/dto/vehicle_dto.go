// internals/features/transport/vehicles/dto/vehicle_dto.go
package dto

import (
	"strings"

	model "sekolahku_backend/internals/features/transport/vehicles/model"
)

type CreateVehicleRequest struct {
	VehicleNumber string `json:"vehicle_number" validate:"required,min=3,max=20"`
}

func (r CreateVehicleRequest) ToModel() *model.VehicleModel {
	return &model.VehicleModel{
		VehicleNumber: strings.ToUpper(strings.TrimSpace(r.VehicleNumber)),
	}
}

type UpdateVehicleRequest struct {
	VehicleNumber *string `json:"vehicle_number" validate:"omitempty,min=3,max=20"`
}

func (r UpdateVehicleRequest) ApplyTo(m *model.VehicleModel) {
	if r.VehicleNumber != nil {
		m.VehicleNumber = strings.ToUpper(strings.TrimSpace(*r.VehicleNumber))
	}
}

// AssignDriverRequest: driver_employee_id null melepas sopir.
type AssignDriverRequest struct {
	DriverEmployeeID *string `json:"driver_employee_id" validate:"omitempty,uuid4"`
}

type UpdateLocationRequest struct {
	Lat  float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Long float64 `json:"long" validate:"required,gte=-180,lte=180"`
}
