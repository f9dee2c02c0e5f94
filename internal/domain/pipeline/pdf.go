package pipeline

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// ProfilePDF renders a one-page candidate summary for sharing with
// interview panels.
func ProfilePDF(candidate Candidate) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Candidate Profile")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Name: %s %s", candidate.PersonalInfo.FirstName, candidate.PersonalInfo.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", candidate.PersonalInfo.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Phone: %s", candidate.PersonalInfo.Phone))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Position: %s", candidate.ApplicationInfo.Position))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Applied: %s", candidate.ApplicationInfo.AppliedDate))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Stage: %s", StageLabel(candidate.InterviewStage)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", StatusLabel(candidate.Status)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Experience: %.1f years", candidate.TotalExperience))
	pdf.Ln(10)

	if len(candidate.Skills.Technical) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Technical Skills")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, strings.Join(candidate.Skills.Technical, ", "), "", "L", false)
		pdf.Ln(4)
	}

	if len(candidate.WorkExperience) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Work Experience")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		for _, exp := range candidate.WorkExperience {
			pdf.Cell(0, 6, fmt.Sprintf("%s at %s (%s - %s)", exp.Position, exp.Company, exp.StartDate, exp.EndDate))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	if len(candidate.Qualifications.Education) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Education")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		for _, edu := range candidate.Qualifications.Education {
			pdf.Cell(0, 6, fmt.Sprintf("%s, %s (%s)", edu.Degree, edu.Institution, edu.GraduationYear))
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
