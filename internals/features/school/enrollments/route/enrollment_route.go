// internals/features/school/enrollments/route/enrollment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	enrollmentController "sekolahku_backend/internals/features/school/enrollments/controller"
)

// EnrollmentRoutes: seluruh endpoint enrollment nested di bawah siswa.
func EnrollmentRoutes(api fiber.Router, db *gorm.DB) {
	ctl := &enrollmentController.EnrollmentController{DB: db}
	examCtl := &enrollmentController.ExamController{DB: db}

	enrollments := api.Group("/students/:studentId/enrollments")
	enrollments.Post("/", ctl.CreateEnrollment)
	enrollments.Get("/", ctl.GetEnrollments)
	enrollments.Get("/:enrollmentId", ctl.GetEnrollmentDetails)
	enrollments.Patch("/:enrollmentId", ctl.UpdateEnrollment)
	enrollments.Delete("/:enrollmentId", ctl.DeleteEnrollment)

	enrollments.Post("/:enrollmentId/pay", ctl.PayFee)
	enrollments.Post("/:enrollmentId/reset-fees", ctl.ResetFees)
	enrollments.Post("/:enrollmentId/regenerate-fees", ctl.RegenerateFees)

	enrollments.Post("/:enrollmentId/exams", examCtl.CreateExamEntry)
	enrollments.Get("/:enrollmentId/exams", examCtl.GetExamEntries)
	enrollments.Patch("/:enrollmentId/exams/:examId", examCtl.UpdateExamEntry)

	api.Delete("/exams/:examId", examCtl.DeleteExamEntry)
}
