package reports

import (
	"bytes"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/phpdave11/gofpdf"

	"github.com/AryaKS01/Personal-Finance-Tracker/internal/auth"
	"github.com/AryaKS01/Personal-Finance-Tracker/internal/money"
)

// StatementPDF renders the transactions of a date range as a downloadable
// PDF with period totals.
func (h *Handler) StatementPDF(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := parseRange(c)
	if err != nil {
		return err
	}

	items, err := h.Store.Statement(c.UserContext(), userID, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build statement")
	}

	var totalIncome, totalExpense int64
	for _, it := range items {
		switch it.Type {
		case "income":
			totalIncome += it.Amount
		case "expense":
			totalExpense += it.Amount
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Account Statement")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "Period: "+from+" to "+to)
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)

	sumW := []float64{62, 62, 62}
	pdf.CellFormat(sumW[0], 10, "Income", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 10, "Expense", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 10, "Net", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW[0], 10, money.Format(totalIncome), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 10, money.Format(totalExpense), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 10, money.Format(totalIncome-totalExpense), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	colW := []float64{22, 26, 60, 30, 48}
	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(colW[0], 8, "TYPE", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[1], 8, "DATE", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[2], 8, "CATEGORY", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[3], 8, "AMOUNT", "1", 0, "R", true, 0, "")
		pdf.CellFormat(colW[4], 8, "DESCRIPTION", "1", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	pdf.SetTextColor(30, 30, 30)

	const maxRows = 200
	for i, it := range items {
		if i >= maxRows {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 8, "truncated (too many rows)", "1", 1, "C", false, 0, "")
			break
		}

		if pdf.GetY() > 270 {
			pdf.AddPage()
			header()
		}

		amt := money.Format(it.Amount)
		if it.Type == "expense" {
			amt = "-" + amt
		}

		pdf.CellFormat(colW[0], 8, strings.ToUpper(it.Type), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 8, it.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[2], 8, trimTo(it.Category, 40), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], 8, amt, "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[4], 8, trimTo(it.Description, 44), "1", 1, "L", false, 0, "")
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated "+time.Now().Format(time.RFC3339), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "pdf build failed")
	}

	filename := "statement-" + from + "-to-" + to + ".pdf"
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// trimTo shortens s to at most max characters, cutting on rune boundaries
// so multibyte text never ends up as broken UTF-8.
func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "~"
}
