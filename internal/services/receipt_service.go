package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"jenjangkarir/internal/domain/models"
	"jenjangkarir/internal/repositories"
	"jenjangkarir/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService menghasilkan PDF bukti lamaran untuk pelamar.
type ReceiptService struct {
	Applications repositories.ApplicationRepository
	RequestID    string
	Loader       func(ctx context.Context, id, userID int64) (models.Application, error)
}

func (s ReceiptService) load(ctx context.Context, id, userID int64) (models.Application, error) {
	if s.Loader != nil {
		return s.Loader(ctx, id, userID)
	}
	a, err := s.Applications.GetForUser(ctx, id, userID)
	return a, notFound("lamaran", err)
}

// Generate returns the PDF bytes and a download filename.
func (s ReceiptService) Generate(ctx context.Context, id, userID int64) ([]byte, string, error) {
	a, err := s.load(ctx, id, userID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("application_id=%d", id))
	return buildReceiptPDF(a)
}

func buildReceiptPDF(a models.Application) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bukti Lamaran", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUKTI LAMARAN")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("No Lamaran  : APP-%06d", a.ID),
		fmt.Sprintf("Tanggal     : %s", utils.FormatTanggal(a.CreatedAt)),
		fmt.Sprintf("Posisi      : %s", safe(a.JobTitle, "-")),
		fmt.Sprintf("Perusahaan  : %s", safe(a.CompanyName, "-")),
		fmt.Sprintf("Nama        : %s", safe(a.FullName, "-")),
		fmt.Sprintf("Email       : %s", safe(a.Email, "-")),
		fmt.Sprintf("No HP       : %s", safe(a.Phone, "-")),
		fmt.Sprintf("Status      : %s", safe(statusLabel(a.Status), "-")),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	if strings.TrimSpace(a.CoverLetter) != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Surat lamaran:")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, a.CoverLetter, "", "", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Dokumen ini dibuat otomatis oleh JenjangKarir sebagai bukti lamaran terkirim.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("BUKTI_LAMARAN_%d_%s.pdf", a.ID, safeFilenamePart(a.JobTitle))
	return buf.Bytes(), filename, nil
}

func statusLabel(s string) string {
	switch s {
	case "submitted":
		return "Terkirim"
	case "reviewed":
		return "Ditinjau"
	case "interview":
		return "Wawancara"
	case "accepted":
		return "Diterima"
	case "rejected":
		return "Ditolak"
	}
	return s
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
