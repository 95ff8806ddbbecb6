package utils

import (
	"testing"
	"time"
)

func TestFormatSalaryRange(t *testing.T) {
	cases := []struct {
		min, max int64
		want     string
	}{
		{5_000_000, 8_000_000, "Rp5.000.000 - Rp8.000.000"},
		{5_000_000, 5_000_000, "Rp5.000.000"},
		{7_500_000, 0, "Mulai Rp7.500.000"},
		{0, 12_000_000, "Hingga Rp12.000.000"},
		{0, 0, "Gaji dirahasiakan"},
	}
	for _, tc := range cases {
		if got := FormatSalaryRange(tc.min, tc.max); got != tc.want {
			t.Fatalf("FormatSalaryRange(%d,%d) = %q, want %q", tc.min, tc.max, got, tc.want)
		}
	}
}

func TestParseRupiahToInt(t *testing.T) {
	got, err := ParseRupiahToInt("Rp 4.500.000")
	if err != nil || got != 4_500_000 {
		t.Fatalf("got %d, %v", got, err)
	}
	if _, err := ParseRupiahToInt("Rp"); err == nil {
		t.Fatalf("expected error for empty amount")
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Senior Backend Engineer (Go)": "senior-backend-engineer-go",
		"  UI/UX   Designer ":          "ui-ux-designer",
		"Kasir & Admin Toko!":          "kasir-admin-toko",
		"":                             "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
	if got := SlugWithID("", 12); got != "12" {
		t.Fatalf("SlugWithID empty title = %q", got)
	}
	if got := SlugWithID("Data Analyst", 7); got != "data-analyst-7" {
		t.Fatalf("SlugWithID = %q", got)
	}
}

func TestFormatTanggal(t *testing.T) {
	d := time.Date(2026, time.August, 17, 10, 0, 0, 0, time.Local)
	if got := FormatTanggal(d); got != "17 Agustus 2026" {
		t.Fatalf("FormatTanggal = %q", got)
	}
}
