package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

var bulan = [...]string{"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli",
	"Agustus", "September", "Oktober", "November", "Desember"}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatTanggal renders "2 Januari 2026" for documents.
func FormatTanggal(t time.Time) string {
	t = t.In(time.Local)
	return t.Format("2") + " " + bulan[t.Month()-1] + " " + t.Format("2006")
}
