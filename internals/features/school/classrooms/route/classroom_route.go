// internals/features/school/classrooms/route/classroom_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classController "sekolahku_backend/internals/features/school/classrooms/controller"
)

func ClassroomRoutes(api fiber.Router, db *gorm.DB) {
	roomCtl := &classController.ClassroomController{DB: db}
	sectionCtl := &classController.SectionController{DB: db}

	classrooms := api.Group("/classrooms")
	classrooms.Post("/", roomCtl.CreateClassroom)
	classrooms.Get("/", roomCtl.GetClassrooms)
	classrooms.Get("/:id", roomCtl.GetClassroomByID)
	classrooms.Patch("/:id", roomCtl.UpdateClassroom)
	classrooms.Delete("/:id", roomCtl.DeleteClassroom)

	classrooms.Post("/:classroomId/sections", sectionCtl.CreateSection)
	classrooms.Get("/:classroomId/sections", sectionCtl.GetSections)

	sections := api.Group("/sections")
	sections.Patch("/:sectionId", sectionCtl.UpdateSection)
	sections.Delete("/:sectionId", sectionCtl.DeleteSection)
	sections.Get("/:sectionId/roster", sectionCtl.GetSectionRoster)
}
