package database

import (
	"log"

	"gorm.io/gorm"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
	gatewayModel "sekolahku_backend/internals/features/finance/gateway/model"
	employeeModel "sekolahku_backend/internals/features/people/employees/model"
	studentModel "sekolahku_backend/internals/features/people/students/model"
	classModel "sekolahku_backend/internals/features/school/classrooms/model"
	enrollmentModel "sekolahku_backend/internals/features/school/enrollments/model"
	vehicleModel "sekolahku_backend/internals/features/transport/vehicles/model"
)

// MigrateAll menjalankan AutoMigrate untuk semua model.
// Urutan mengikuti dependensi foreign key.
func MigrateAll(db *gorm.DB) {
	log.Println("🛠️ Menjalankan AutoMigrate...")

	if err := db.AutoMigrate(
		// people
		&studentModel.StudentModel{},
		&employeeModel.EmployeeModel{},
		&employeeModel.AdminModel{},
		&employeeModel.TeacherModel{},
		&employeeModel.DriverModel{},
		&employeeModel.EmployeeAttendanceModel{},

		// school
		&classModel.ClassroomModel{},
		&classModel.ClassSectionModel{},
		&enrollmentModel.EnrollmentModel{},
		&enrollmentModel.ExamEntryModel{},

		// finance
		&feeModel.MonthlyFeeModel{},
		&feeModel.FeePaymentModel{},
		&gatewayModel.PaymentOrderModel{},

		// transport
		&vehicleModel.VehicleModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}

	log.Println("✅ AutoMigrate selesai.")
}
