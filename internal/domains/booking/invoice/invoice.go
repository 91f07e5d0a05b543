// Package invoice renders booking invoices as single document PDFs.
package invoice

import (
	"bytes"
	"fmt"
	"hotelpms/internal/domains/booking/model/dto"
	"hotelpms/shared/constant"
	"hotelpms/shared/timezone"
	"strings"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	pageLeft   = 15.0
	pageRight  = 195.0
	lineHeight = 6.0
	qrSize     = 256
	qrImage    = "booking-qr"
	fontFamily = "Helvetica"
)

// Hotel is the letterhead printed on top of every invoice.
type Hotel struct {
	Name      string
	Address   string
	Phone     string
	GSTNumber string
	Currency  string
}

type Renderer interface {
	Render(data dto.InvoiceData) ([]byte, error)
}

type rendererImpl struct {
	hotel Hotel
}

func New(hotel Hotel) Renderer {
	if hotel.Currency == constant.Empty {
		hotel.Currency = "INR"
	}

	return &rendererImpl{hotel: hotel}
}

func (r *rendererImpl) Render(data dto.InvoiceData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageLeft, pageLeft, pageLeft)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	r.header(pdf, data)
	r.guest(pdf, data)
	r.rooms(pdf, data.Booking)
	r.food(pdf, data.FoodOrders)
	r.payments(pdf, data.Transactions)
	r.totals(pdf, data)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *rendererImpl) header(pdf *gofpdf.Fpdf, data dto.InvoiceData) {
	top := pdf.GetY()

	pdf.SetFont(fontFamily, "B", 20)
	pdf.Cell(0, 10, r.hotel.Name)
	pdf.Ln(10)

	pdf.SetFont(fontFamily, "", 10)

	for _, line := range []string{r.hotel.Address, r.hotel.Phone} {
		if line == constant.Empty {
			continue
		}

		pdf.Cell(0, 5, line)
		pdf.Ln(5)
	}

	if r.hotel.GSTNumber != constant.Empty {
		pdf.Cell(0, 5, "GSTIN: "+r.hotel.GSTNumber)
		pdf.Ln(5)
	}

	if png, err := qrcode.Encode(data.Booking.ID, qrcode.Medium, qrSize); err == nil {
		pdf.RegisterImageOptionsReader(qrImage, gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(png))
		pdf.ImageOptions(qrImage, pageRight-32, top, 32, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")
	}

	pdf.SetY(max(pdf.GetY(), top+34))

	pdf.SetFont(fontFamily, "B", 14)
	pdf.Cell(0, 8, "INVOICE")
	pdf.Ln(8)

	pdf.SetFont(fontFamily, "", 10)
	pdf.Cell(0, 5, "Booking: "+data.Booking.ID)
	pdf.Ln(5)
	pdf.Cell(0, 5, "Date: "+timezone.Format(data.GeneratedAt, "02 Jan 2006 15:04"))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Status: %s / %s", data.Booking.Status, data.Booking.PaymentStatus))
	pdf.Ln(8)

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(pageLeft, pdf.GetY(), pageRight, pdf.GetY())
	pdf.Ln(4)
}

func (r *rendererImpl) guest(pdf *gofpdf.Fpdf, data dto.InvoiceData) {
	section(pdf, "BILLED TO")

	customer := data.Customer
	pdf.SetFont(fontFamily, "", 10)
	pdf.Cell(0, 5, customer.Name)
	pdf.Ln(5)
	pdf.Cell(0, 5, customer.Phone)
	pdf.Ln(5)

	address := strings.Join(nonEmpty(customer.Address, customer.City, customer.State, customer.Pincode, customer.Country), ", ")
	if address != constant.Empty {
		pdf.MultiCell(0, 5, address, "", "L", false)
	}

	if customer.GSTNumber != constant.Empty {
		pdf.Cell(0, 5, "GSTIN: "+customer.GSTNumber)
		pdf.Ln(5)
	}

	booking := data.Booking
	pdf.Cell(0, 5, fmt.Sprintf("Stay: %s to %s (%d nights), %d adults, %d children",
		booking.CheckinDate, booking.CheckoutDate, booking.Nights, booking.Adults, booking.Children))
	pdf.Ln(8)
}

func (r *rendererImpl) rooms(pdf *gofpdf.Fpdf, booking dto.BookingResponse) {
	section(pdf, "ROOMS")

	widths := []float64{30, 40, 40, 30, 40}
	tableHeader(pdf, widths, "Room", "Check-in", "Check-out", "Rate", "Amount")

	for _, room := range booking.Rooms {
		tableRow(pdf, widths, room.RoomNumber, room.CheckinDate, room.CheckoutDate, r.money(room.PricePerNight), r.money(room.Amount))
	}

	pdf.Ln(4)
}

func (r *rendererImpl) food(pdf *gofpdf.Fpdf, orders []dto.FoodOrderLine) {
	if len(orders) == 0 {
		return
	}

	section(pdf, "FOOD & SERVICES")

	widths := []float64{80, 20, 40, 40}
	tableHeader(pdf, widths, "Item", "Qty", "Price", "Amount")

	for _, line := range orders {
		tableRow(pdf, widths, line.Name, fmt.Sprint(line.Quantity), r.money(line.UnitPrice), r.money(line.Amount))
	}

	pdf.Ln(4)
}

func (r *rendererImpl) payments(pdf *gofpdf.Fpdf, transactions []dto.TransactionResponse) {
	if len(transactions) == 0 {
		return
	}

	section(pdf, "PAYMENTS")

	widths := []float64{50, 40, 50, 40}
	tableHeader(pdf, widths, "Date", "Mode", "Type", "Amount")

	for _, trx := range transactions {
		kind := "Room"
		if trx.FoodOrderID != constant.Empty {
			kind = "Food"
		}

		amount := r.money(trx.Amount)
		if trx.IsRefund {
			kind = "Refund"
			amount = "-" + amount
		}

		tableRow(pdf, widths, trx.CreatedAt[:min(len(trx.CreatedAt), len(constant.DateOnlyFormat))], trx.PaymentMode.String(), kind, amount)
	}

	pdf.Ln(4)
}

func (r *rendererImpl) totals(pdf *gofpdf.Fpdf, data dto.InvoiceData) {
	booking := data.Booking

	var foodTotal, foodPaid float64
	for _, order := range data.FoodOrders {
		foodTotal += order.Amount
	}

	for _, trx := range data.Transactions {
		if trx.FoodOrderID != constant.Empty && !trx.IsRefund {
			foodPaid += trx.Amount
		}
	}

	rows := [][2]string{
		{"Room charges", r.money(booking.TotalAmount)},
		{"Food & services", r.money(foodTotal)},
		{"Paid", r.money(booking.AmountPaid + foodPaid)},
	}

	if booking.RefundAmount > 0 {
		rows = append(rows, [2]string{"Refunded", r.money(booking.RefundAmount)})
	}

	rows = append(rows, [2]string{"Balance due", r.money(booking.AmountDue + max(0, foodTotal-foodPaid))})

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(110, pdf.GetY(), pageRight, pdf.GetY())
	pdf.Ln(2)

	for idx, row := range rows {
		style := ""
		if idx == len(rows)-1 {
			style = "B"
		}

		pdf.SetFont(fontFamily, style, 11)
		pdf.SetX(110)
		pdf.CellFormat(45, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, row[1], "", 1, "R", false, 0, "")
	}
}

func (r *rendererImpl) money(amount float64) string {
	return fmt.Sprintf("%s %.2f", r.hotel.Currency, amount)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(fontFamily, "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	pdf.Ln(2)
}

func tableHeader(pdf *gofpdf.Fpdf, widths []float64, cells ...string) {
	pdf.SetFont(fontFamily, "B", 10)

	for idx, cell := range cells {
		pdf.CellFormat(widths[idx], lineHeight, cell, "B", 0, align(idx, len(cells)), false, 0, "")
	}

	pdf.Ln(lineHeight)
}

func tableRow(pdf *gofpdf.Fpdf, widths []float64, cells ...string) {
	pdf.SetFont(fontFamily, "", 10)

	for idx, cell := range cells {
		pdf.CellFormat(widths[idx], lineHeight, cell, "", 0, align(idx, len(cells)), false, 0, "")
	}

	pdf.Ln(lineHeight)
}

// align right-justifies the amount column.
func align(idx, count int) string {
	if idx == count-1 {
		return "R"
	}

	return "L"
}

func nonEmpty(values ...string) []string {
	res := make([]string, 0, len(values))

	for _, value := range values {
		if strings.TrimSpace(value) != constant.Empty {
			res = append(res, value)
		}
	}

	return res
}
