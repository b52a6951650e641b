package helper

import "time"

// =========================================================
// Kalender bulanan untuk sesi enrollment & tagihan SPP.
// Semua tanggal periode dinormalkan ke tanggal 1, 00:00 UTC.
// =========================================================

// FirstOfMonth memotong tanggal ke hari pertama bulannya.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween menghitung selisih bulan kalender end − start
// (granularitas bulan; hari diabaikan). Bisa negatif.
func MonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// MonthsOverlap menghitung panjang irisan dua interval
// [aStart,aEnd) dan [bStart,bEnd) dalam bulan penuh.
// 0 berarti tidak beririsan (atau hanya menyentuh batas).
func MonthsOverlap(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	n := MonthsBetween(start, end)
	if n < 0 {
		return 0
	}
	return n
}

// ZeroTimeOfDay membuang komponen jam dari tanggal (untuk
// perbandingan kolom date-only).
func ZeroTimeOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfMonth mengembalikan hari terakhir bulan dari t.
func EndOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}
