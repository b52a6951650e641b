// internals/features/transport/vehicles/route/vehicle_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	vehicleController "sekolahku_backend/internals/features/transport/vehicles/controller"
)

func VehicleRoutes(api fiber.Router, db *gorm.DB) {
	ctl := &vehicleController.VehicleController{DB: db}

	vehicles := api.Group("/vehicles")
	vehicles.Post("/", ctl.CreateVehicle)
	vehicles.Get("/", ctl.GetVehicles)
	vehicles.Get("/:id", ctl.GetVehicleByID)
	vehicles.Patch("/:id", ctl.UpdateVehicle)
	vehicles.Delete("/:id", ctl.DeleteVehicle)

	vehicles.Put("/:id/driver", ctl.AssignDriver)
	vehicles.Post("/:id/location", ctl.UpdateLocation)
}
