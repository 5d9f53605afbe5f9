package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"daycare_backend/internal/models"
	"daycare_backend/internal/repositories"
	"daycare_backend/internal/services/payment"
	"daycare_backend/pkg/apperrors"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ExportService interface {
	// AttendanceXLSX builds a spreadsheet of attendance records for a
	// group over a date range.
	AttendanceXLSX(db *gorm.DB, groupName string, from, to time.Time) ([]byte, error)

	// PaymentsCSV builds a CSV of payment orders filtered by status.
	PaymentsCSV(db *gorm.DB, status models.OrderStatus, from, to time.Time) ([]byte, error)

	// PaymentsXLSX builds the same ledger as a spreadsheet.
	PaymentsXLSX(db *gorm.DB, status models.OrderStatus, from, to time.Time) ([]byte, error)

	// ReceiptPDF renders a payment receipt for a paid order.
	ReceiptPDF(db *gorm.DB, orderID string) ([]byte, error)
}

type exportService struct {
	attendanceRepo repositories.AttendanceRepository
	orderRepo      repositories.OrderRepository
	childRepo      repositories.ChildRepository
}

func NewExportService(
	attendanceRepo repositories.AttendanceRepository,
	orderRepo repositories.OrderRepository,
	childRepo repositories.ChildRepository,
) ExportService {
	return &exportService{
		attendanceRepo: attendanceRepo,
		orderRepo:      orderRepo,
		childRepo:      childRepo,
	}
}

func (s *exportService) AttendanceXLSX(db *gorm.DB, groupName string, from, to time.Time) ([]byte, error) {
	records, err := s.attendanceRepo.FindByGroupRange(db, groupName, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Day", "Child", "Group", "Status", "Check-in", "Check-out", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, rec := range records {
		childName := rec.ChildID
		if rec.Child != nil {
			childName = rec.Child.FirstName + " " + rec.Child.LastName
		}
		values := []interface{}{
			rec.Day.Format("2006-01-02"),
			childName,
			groupName,
			string(rec.Status),
			formatClock(rec.CheckInTime),
			formatClock(rec.CheckOutTime),
			rec.Notes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *exportService) PaymentsCSV(db *gorm.DB, status models.OrderStatus, from, to time.Time) ([]byte, error) {
	orders, err := s.orderRepo.FindAll(db, status, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"order_id", "child_id", "payer_email", "amount", "currency", "status", "created_at", "paid_at"}); err != nil {
		return nil, err
	}
	for _, order := range orders {
		paidAt := ""
		if order.PaidAt != nil {
			paidAt = order.PaidAt.Format(time.RFC3339)
		}
		record := []string{
			order.OrderID,
			order.ChildID,
			order.PayerEmail,
			payment.FormatAmount(order.Amount),
			order.Currency,
			string(order.Status),
			order.CreatedAt.Format(time.RFC3339),
			paidAt,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *exportService) PaymentsXLSX(db *gorm.DB, status models.OrderStatus, from, to time.Time) ([]byte, error) {
	orders, err := s.orderRepo.FindAll(db, status, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payments"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Order ID", "Child ID", "Payer", "Amount", "Currency", "Status", "Created", "Paid"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, order := range orders {
		paidAt := ""
		if order.PaidAt != nil {
			paidAt = order.PaidAt.Format(time.RFC3339)
		}
		values := []interface{}{
			order.OrderID,
			order.ChildID,
			order.PayerEmail,
			payment.FormatAmount(order.Amount),
			order.Currency,
			string(order.Status),
			order.CreatedAt.Format(time.RFC3339),
			paidAt,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *exportService) ReceiptPDF(db *gorm.DB, orderID string) ([]byte, error) {
	order, err := s.orderRepo.FindByOrderID(db, orderID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}
	if order.Status != models.OrderStatusPaid {
		return nil, apperrors.ErrOrderNotPaid
	}

	childName := order.ChildID
	if child, err := s.childRepo.FindByID(db, order.ChildID); err == nil {
		childName = child.FirstName + " " + child.LastName
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Payment Receipt")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 11)
	lines := [][2]string{
		{"Order", order.OrderID},
		{"Child", childName},
		{"Payer", order.PayerEmail},
		{"Amount", fmt.Sprintf("%s %s", payment.FormatAmount(order.Amount), order.Currency)},
		{"Paid at", order.PaidAt.Format("2006-01-02 15:04:05")},
	}
	for _, line := range lines {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 8, line[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, line[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Thank you for your payment.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}
