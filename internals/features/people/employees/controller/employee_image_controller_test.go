package controller

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glebarez/sqlite"

	model "sekolahku_backend/internals/features/people/employees/model"
)

func newEmployeeApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.EmployeeModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctl := &EmployeeController{DB: db}
	app := fiber.New()
	app.Get("/employees/:id/image", ctl.GetEmployeeImage)
	app.Delete("/employees/:id/image", ctl.DeleteEmployeeImage)
	return app, db
}

func TestDeleteEmployeeImage(t *testing.T) {
	app, db := newEmployeeApp(t)

	emp := model.EmployeeModel{
		EmployeeEmail:        "guru@sekolahku.id",
		EmployeePasswordHash: "x",
		EmployeeName:         "Budi Santoso",
		EmployeeSearchName:   "budi santoso",
		EmployeeDateOfBirth:  time.Date(1988, 5, 20, 0, 0, 0, 0, time.UTC),
		EmployeeWorkRole:     "teacher",
		EmployeeIsActive:     true,
		EmployeeProfileImage: []byte{0x52, 0x49, 0x46, 0x46},
	}
	if err := db.Create(&emp).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	path := "/employees/" + emp.EmployeeID.String() + "/image"

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, path, nil), -1)
	if err != nil {
		t.Fatalf("DELETE %s: %v", path, err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var re model.EmployeeModel
	if err := db.First(&re, "employee_id = ?", emp.EmployeeID).Error; err != nil {
		t.Fatalf("reload employee: %v", err)
	}
	if len(re.EmployeeProfileImage) != 0 {
		t.Errorf("profile image masih tersimpan setelah dihapus (%d bytes)", len(re.EmployeeProfileImage))
	}

	// Setelah dihapus, GET foto = 404.
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("GET setelah delete: status = %d, want 404", resp.StatusCode)
	}

	// Pegawai tidak ada.
	resp, err = app.Test(httptest.NewRequest(fiber.MethodDelete, "/employees/"+uuid.NewString()+"/image", nil), -1)
	if err != nil {
		t.Fatalf("DELETE unknown: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("unknown employee: status = %d, want 404", resp.StatusCode)
	}
}
