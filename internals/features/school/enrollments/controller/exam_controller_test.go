package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glebarez/sqlite"

	studentModel "sekolahku_backend/internals/features/people/students/model"
	enrollmentModel "sekolahku_backend/internals/features/school/enrollments/model"
)

func newExamApp(t *testing.T) (*fiber.App, *gorm.DB) {
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

	if err := db.AutoMigrate(
		&studentModel.StudentModel{},
		&enrollmentModel.EnrollmentModel{},
		&enrollmentModel.ExamEntryModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctl := &ExamController{DB: db}
	app := fiber.New()
	exams := app.Group("/students/:studentId/enrollments/:enrollmentId/exams")
	exams.Post("/", ctl.CreateExamEntry)
	exams.Patch("/:examId", ctl.UpdateExamEntry)
	return app, db
}

func seedExamStudent(t *testing.T, db *gorm.DB, active bool) studentModel.StudentModel {
	t.Helper()
	st := studentModel.StudentModel{
		StudentName:        "Rafi Hidayat",
		StudentSearchName:  "rafi hidayat",
		StudentDateOfBirth: time.Date(2012, 4, 19, 0, 0, 0, 0, time.UTC),
		StudentIsActive:    active,
	}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return st
}

func seedExamEnrollment(t *testing.T, db *gorm.DB, studentID uuid.UUID, active, complete bool) enrollmentModel.EnrollmentModel {
	t.Helper()
	enr := enrollmentModel.EnrollmentModel{
		EnrollmentStudentID:    studentID,
		EnrollmentClassroomID:  uuid.New(),
		EnrollmentSectionID:    uuid.New(),
		EnrollmentSessionStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EnrollmentSessionEnd:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EnrollmentMonthlyFee:   150,
		EnrollmentSubjects:     []byte(`[{"code":"MTK"},{"code":"IPA"}]`),
		EnrollmentIsActive:     active,
		EnrollmentIsComplete:   complete,
	}
	if err := db.Create(&enr).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	return enr
}

func examJSONRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func validExamBody() map[string]interface{} {
	return map[string]interface{}{
		"exam_entry_name": "CT 1",
		"exam_entry_type": "CT",
		"exam_entry_date": "2025-02-10",
		"exam_entry_subjects": []map[string]interface{}{
			{"code": "MTK", "theory_marks": 70, "theory_total": 100, "passed": true},
			{"code": "IPA", "theory_marks": 55, "theory_total": 100, "passed": true},
		},
		"exam_entry_student_passed": true,
	}
}

// Enrollment complete itu arsip; enrollment/siswa nonaktif juga
// tertutup untuk input nilai.
func TestCreateExamEntryGuards(t *testing.T) {
	app, db := newExamApp(t)

	active := seedExamStudent(t, db, true)
	inactive := seedExamStudent(t, db, false)
	other := seedExamStudent(t, db, true)

	open := seedExamEnrollment(t, db, active.StudentID, true, false)
	completed := seedExamEnrollment(t, db, active.StudentID, true, true)
	suspended := seedExamEnrollment(t, db, active.StudentID, false, false)
	inactiveOwn := seedExamEnrollment(t, db, inactive.StudentID, true, false)

	tests := []struct {
		name         string
		studentID    uuid.UUID
		enrollmentID uuid.UUID
		wantStatus   int
	}{
		{"enrollment tidak ada", active.StudentID, uuid.New(), fiber.StatusNotFound},
		{"enrollment milik siswa lain", other.StudentID, open.EnrollmentID, fiber.StatusForbidden},
		{"enrollment nonaktif", active.StudentID, suspended.EnrollmentID, fiber.StatusBadRequest},
		{"enrollment complete", active.StudentID, completed.EnrollmentID, fiber.StatusConflict},
		{"siswa nonaktif", inactive.StudentID, inactiveOwn.EnrollmentID, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/students/" + tt.studentID.String() + "/enrollments/" + tt.enrollmentID.String() + "/exams/"
			resp := examJSONRequest(t, app, fiber.MethodPost, path, validExamBody())
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}

	var count int64
	db.Model(&enrollmentModel.ExamEntryModel{}).Count(&count)
	if count != 0 {
		t.Errorf("exam entries after rejected requests = %d, want 0", count)
	}
}

func TestCreateExamEntry(t *testing.T) {
	app, db := newExamApp(t)
	st := seedExamStudent(t, db, true)
	enr := seedExamEnrollment(t, db, st.StudentID, true, false)
	path := "/students/" + st.StudentID.String() + "/enrollments/" + enr.EnrollmentID.String() + "/exams/"

	resp := examJSONRequest(t, app, fiber.MethodPost, path, validExamBody())
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var entry enrollmentModel.ExamEntryModel
	if err := db.First(&entry, "exam_entry_enrollment_id = ?", enr.EnrollmentID).Error; err != nil {
		t.Fatalf("load exam entry: %v", err)
	}
	if entry.ExamEntryName != "CT 1" || !entry.ExamEntryStudentPassed {
		t.Errorf("entry = %q/passed=%v, want CT 1/true", entry.ExamEntryName, entry.ExamEntryStudentPassed)
	}

	// Nilai perolehan > maksimal: tolak.
	bad := validExamBody()
	bad["exam_entry_date"] = "2025-03-10"
	bad["exam_entry_subjects"] = []map[string]interface{}{
		{"code": "MTK", "theory_marks": 120, "theory_total": 100},
	}
	resp = examJSONRequest(t, app, fiber.MethodPost, path, bad)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("marks > total: status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateExamEntry(t *testing.T) {
	app, db := newExamApp(t)
	st := seedExamStudent(t, db, true)
	enr := seedExamEnrollment(t, db, st.StudentID, true, false)
	base := "/students/" + st.StudentID.String() + "/enrollments/" + enr.EnrollmentID.String() + "/exams/"

	if resp := examJSONRequest(t, app, fiber.MethodPost, base, validExamBody()); resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("seed exam: status = %d", resp.StatusCode)
	}
	var entry enrollmentModel.ExamEntryModel
	if err := db.First(&entry, "exam_entry_enrollment_id = ?", enr.EnrollmentID).Error; err != nil {
		t.Fatalf("load exam entry: %v", err)
	}
	path := base + entry.ExamEntryID.String()

	// Body kosong: minimal satu field.
	resp := examJSONRequest(t, app, fiber.MethodPatch, path, map[string]interface{}{})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("empty body: status = %d, want 400", resp.StatusCode)
	}

	// Jumlah mapel harus cocok dengan snapshot enrollment (2 mapel).
	resp = examJSONRequest(t, app, fiber.MethodPatch, path, map[string]interface{}{
		"exam_entry_subjects": []map[string]interface{}{
			{"code": "MTK", "theory_marks": 80, "theory_total": 100},
		},
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("subject count mismatch: status = %d, want 400", resp.StatusCode)
	}

	// Partial update.
	resp = examJSONRequest(t, app, fiber.MethodPatch, path, map[string]interface{}{
		"exam_entry_name":           "CT 1 (revisi)",
		"exam_entry_student_passed": false,
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("partial update: status = %d, want 200", resp.StatusCode)
	}
	if err := db.First(&entry, "exam_entry_id = ?", entry.ExamEntryID).Error; err != nil {
		t.Fatalf("reload exam entry: %v", err)
	}
	if entry.ExamEntryName != "CT 1 (revisi)" || entry.ExamEntryStudentPassed {
		t.Errorf("after update = %q/passed=%v, want CT 1 (revisi)/false", entry.ExamEntryName, entry.ExamEntryStudentPassed)
	}
	if entry.ExamEntryType != "CT" {
		t.Errorf("type = %q, field yang tidak dikirim harus utuh", entry.ExamEntryType)
	}

	// Ujian tidak ada.
	resp = examJSONRequest(t, app, fiber.MethodPatch, base+uuid.NewString(), map[string]interface{}{
		"exam_entry_name": "XX",
	})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("unknown exam: status = %d, want 404", resp.StatusCode)
	}

	// Setelah enrollment complete, nilai terkunci.
	if err := db.Model(&enrollmentModel.EnrollmentModel{}).
		Where("enrollment_id = ?", enr.EnrollmentID).
		Update("enrollment_is_complete", true).Error; err != nil {
		t.Fatalf("complete enrollment: %v", err)
	}
	resp = examJSONRequest(t, app, fiber.MethodPatch, path, map[string]interface{}{
		"exam_entry_name": "CT 1 (final)",
	})
	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("completed enrollment: status = %d, want 409", resp.StatusCode)
	}
}
