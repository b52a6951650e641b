// internals/features/people/students/route/student_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "sekolahku_backend/internals/features/people/students/controller"
)

// StudentRoutes mendaftarkan seluruh endpoint siswa di bawah /students.
func StudentRoutes(api fiber.Router, db *gorm.DB) {
	ctl := &studentController.StudentController{DB: db}

	students := api.Group("/students")
	students.Post("/", ctl.CreateStudent)
	students.Get("/", ctl.GetStudents)
	students.Get("/:id", ctl.GetStudentByID)
	students.Patch("/:id", ctl.UpdateStudent)
	students.Delete("/:id", ctl.DeleteStudent)

	students.Get("/:id/payments", ctl.GetStudentPayments)

	students.Post("/:id/image", ctl.UploadStudentImage)
	students.Get("/:id/image", ctl.GetStudentImage)
	students.Delete("/:id/image", ctl.DeleteStudentImage)
}
