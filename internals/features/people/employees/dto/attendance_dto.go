// internals/features/people/employees/dto/attendance_dto.go
package dto

// MarkAttendanceRequest menandai kehadiran hari ini (atau tanggal lain)
// untuk satu pegawai. Flag bersifat saling eksklusif di sisi service.
type MarkAttendanceRequest struct {
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	IsPresent *bool  `json:"is_present" validate:"omitempty"`
	IsLeave   *bool  `json:"is_leave" validate:"omitempty"`
	IsInvalid *bool  `json:"is_invalid" validate:"omitempty"`
}
