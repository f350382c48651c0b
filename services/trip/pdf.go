package trip

import (
	"bytes"
	"context"
	"fmt"

	"innroutes/models"

	"github.com/jung-kurt/gofpdf"
)

// ExportItineraryPDF renders a trip's day-by-day itinerary as a PDF document.
func (s *DefaultTripService) ExportItineraryPDF(ctx context.Context, userID, tripID string) ([]byte, error) {
	t, err := s.GetTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, t.Destination, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 7, fmt.Sprintf("%s to %s", t.StartDate, t.EndDate), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.SetTextColor(0, 0, 0)

	writeFactsSection(pdf, t)

	for _, day := range t.Data.Itinerary {
		writeDaySection(pdf, day)
	}

	if t.Budget > 0 {
		writeBudgetSection(pdf, t)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render itinerary pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFactsSection(pdf *gofpdf.Fpdf, t *models.UserTrip) {
	d := t.Data
	sectionTitle(pdf, "At a glance")
	factRow(pdf, "Currency", fmt.Sprintf("%s (1 %s = %.2f %s)",
		d.Economics.LocalCurrency, d.Economics.HomeCurrency, d.Economics.ExchangeRate, d.Economics.LocalCurrency))
	factRow(pdf, "Daily cost", fmt.Sprintf("%.0f %s (%s than home)",
		d.Economics.DailyCostHome, d.Economics.HomeCurrency, string(d.Economics.BudgetComparison)))
	factRow(pdf, "Visa", fmt.Sprintf("%s, processing %s", string(d.Visa.Type), d.Visa.ProcessingTime))
	factRow(pdf, "Weather", fmt.Sprintf("%s, %s", d.WeatherInfo.Season, d.WeatherInfo.Temperature))
	pdf.Ln(3)
}

func writeDaySection(pdf *gofpdf.Fpdf, day models.DayPlan) {
	title := fmt.Sprintf("Day %d", day.Day)
	if day.Date != "" {
		title = fmt.Sprintf("%s - %s", title, day.Date)
	}
	sectionTitle(pdf, title)
	for _, a := range day.Activities {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(18, 6, a.Time, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, fmt.Sprintf("%s (%s)", a.Title, string(a.Type)), "", "L", false)
		if a.Description != "" {
			pdf.SetX(pdf.GetX() + 18)
			pdf.SetTextColor(90, 90, 90)
			pdf.MultiCell(0, 5, a.Description, "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}
	}
	pdf.Ln(2)
}

func writeBudgetSection(pdf *gofpdf.Fpdf, t *models.UserTrip) {
	var spent float64
	for _, e := range t.Expenses {
		spent += e.Amount
	}
	sectionTitle(pdf, "Budget")
	factRow(pdf, "Planned", fmt.Sprintf("%.2f", t.Budget))
	factRow(pdf, "Spent", fmt.Sprintf("%.2f", spent))
	factRow(pdf, "Remaining", fmt.Sprintf("%.2f", t.Budget-spent))
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 9, title, "", 1, "L", true, 0, "")
	pdf.Ln(1)
}

func factRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(35, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, value, "", "L", false)
}
