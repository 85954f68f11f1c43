package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"railpass/internal/domain"
	"railpass/internal/engine"
	"railpass/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// TripPackService renders a printable pack: the compliance overview plus a
// reservation task sheet, so travelers can carry the verdict offline.
type TripPackService struct {
	Compliance engine.ComplianceValidator
	Executable engine.ExecutabilityCheckService
	RequestID  string
}

// GenerateTripPack builds the PDF for one itinerary.
func (s TripPackService) GenerateTripPack(
	itineraryID string,
	segments []domain.RailSegment,
	profile domain.PassProfile,
	tasks []domain.ReservationTask,
) ([]byte, string, error) {
	compliance, err := s.Compliance.Validate(segments, profile, tasks)
	if err != nil {
		return nil, "", err
	}
	report, err := s.Executable.CheckItinerary(segments, profile, tasks)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "trippack", "generate",
		fmt.Sprintf("itinerary=%s segments=%d valid=%t", itineraryID, len(segments), compliance.Valid))
	return buildTripPackPDF(itineraryID, profile, segments, tasks, compliance, report)
}

func buildTripPackPDF(
	itineraryID string,
	profile domain.PassProfile,
	segments []domain.RailSegment,
	tasks []domain.ReservationTask,
	compliance engine.ComplianceResult,
	report engine.ItineraryReport,
) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Pack", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RAIL PASS TRIP PACK")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Itinerary    : %s", itineraryID),
		fmt.Sprintf("Pass         : %s / %s / %s class", profile.Family, profile.Scope, profile.Class),
		fmt.Sprintf("Validity     : %s .. %s (%s)", profile.ValidityStart, profile.ValidityEnd, profile.ValidityMode),
		fmt.Sprintf("Generated    : %s", time.Now().Format("2006-01-02 15:04")),
		fmt.Sprintf("Verdict      : %s", verdict(compliance.Valid)),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Compliance")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, compliance.Explanation, "", "", false)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Segments")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
	for i, seg := range segments {
		card := cardFor(report, seg.ID)
		desc := fmt.Sprintf("%d) %s %s -> %s  coverage=%s reservation=%s risk=%s",
			i+1, seg.DepartureDate, seg.FromPlace, seg.ToPlace,
			card.CoverageStatus, yesNo(card.ReservationNeeded), card.RiskLevel)
		pdf.MultiCell(0, 5, desc, "", "", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Reservation tasks")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
	if len(tasks) == 0 {
		pdf.Cell(0, 5, "No mandatory reservations on this itinerary.")
		pdf.Ln(5)
	}
	for _, t := range tasks {
		fee := ""
		if t.Requirement.FeeEstimate != nil {
			fee = utils.FormatFeeRange(t.Requirement.FeeEstimate.Min, t.Requirement.FeeEstimate.Max, t.Requirement.FeeEstimate.Currency)
		}
		line := fmt.Sprintf("[%s] %s on %s  reason=%s fee=%s", t.Status, t.SegmentID, t.TravelDate, t.Requirement.Reason, fee)
		if t.BookingRef != "" {
			line += " ref=" + t.BookingRef
		}
		pdf.MultiCell(0, 5, line, "", "", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "All fees and risk levels are estimates from static heuristics, not live availability.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("TRIPPACK_%s.pdf", safeFilenamePart(itineraryID))
	return buf.Bytes(), filename, nil
}

func cardFor(report engine.ItineraryReport, segmentID string) engine.SegmentCard {
	for _, c := range report.Cards {
		if c.SegmentID == segmentID {
			return c
		}
	}
	return engine.SegmentCard{SegmentID: segmentID, CoverageStatus: domain.CoverageUnknown}
}

func verdict(valid bool) string {
	if valid {
		return "COMPLIANT"
	}
	return "VIOLATIONS FOUND"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "_", ":", "-")
	s = replacer.Replace(s)
	if s == "" {
		return "itinerary"
	}
	return s
}
