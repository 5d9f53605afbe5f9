package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"daycare_backend/internal/models"
	"daycare_backend/internal/repositories"
	"daycare_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type fakeAttendanceRepo struct {
	repositories.AttendanceRepository
	records []models.Attendance
}

func (f *fakeAttendanceRepo) FindByGroupRange(_ *gorm.DB, groupName string, from, to time.Time) ([]models.Attendance, error) {
	return f.records, nil
}

func newTestExportService(orders *fakeOrderRepo, attendance *fakeAttendanceRepo) ExportService {
	children := &fakeChildRepo{children: map[string]*models.Child{
		"child-1": {
			BaseModel: models.BaseModel{ID: "child-1"},
			FirstName: "Amara",
			LastName:  "Silva",
			ParentID:  "parent-1",
		},
	}}
	return NewExportService(attendance, orders, children)
}

func seedLedgerOrder(repo *fakeOrderRepo, orderID, amount string, status models.OrderStatus) {
	order := &models.Order{
		OrderID:    orderID,
		ChildID:    "child-1",
		PayerEmail: "parent@example.com",
		Amount:     decimal.RequireFromString(amount),
		Currency:   "LKR",
		Status:     status,
	}
	if status == models.OrderStatusPaid {
		now := time.Now()
		order.PaidAt = &now
	}
	_ = repo.Create(nil, order)
}

func TestPaymentsCSVFormatsAmounts(t *testing.T) {
	orders := newFakeOrderRepo()
	seedLedgerOrder(orders, "ORD-1", "1500", models.OrderStatusPaid)
	seedLedgerOrder(orders, "ORD-2", "249.9", models.OrderStatusPending)

	svc := newTestExportService(orders, &fakeAttendanceRepo{})

	data, err := svc.PaymentsCSV(nil, "", time.Time{}, time.Now())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "order_id", rows[0][0])

	amounts := map[string]string{}
	for _, row := range rows[1:] {
		amounts[row[0]] = row[3]
	}
	assert.Equal(t, "1500.00", amounts["ORD-1"])
	assert.Equal(t, "249.90", amounts["ORD-2"])
}

func TestPaymentsCSVFiltersByStatus(t *testing.T) {
	orders := newFakeOrderRepo()
	seedLedgerOrder(orders, "ORD-1", "100", models.OrderStatusPaid)
	seedLedgerOrder(orders, "ORD-2", "200", models.OrderStatusFailed)

	svc := newTestExportService(orders, &fakeAttendanceRepo{})

	data, err := svc.PaymentsCSV(nil, models.OrderStatusFailed, time.Time{}, time.Now())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ORD-2", rows[1][0])
}

func TestPaymentsXLSXIncludesOrders(t *testing.T) {
	orders := newFakeOrderRepo()
	seedLedgerOrder(orders, "ORD-1", "1500", models.OrderStatusPaid)

	svc := newTestExportService(orders, &fakeAttendanceRepo{})

	data, err := svc.PaymentsXLSX(nil, "", time.Time{}, time.Now())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Payments")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Order ID", rows[0][0])
	assert.Equal(t, "ORD-1", rows[1][0])
	assert.Equal(t, "1500.00", rows[1][3])
}

func TestAttendanceXLSXRows(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(8 * time.Hour)
	attendance := &fakeAttendanceRepo{records: []models.Attendance{
		{
			ChildID:     "child-1",
			Day:         day,
			Status:      models.AttendanceStatusPresent,
			CheckInTime: &checkIn,
		},
	}}

	svc := newTestExportService(newFakeOrderRepo(), attendance)

	data, err := svc.AttendanceXLSX(nil, "sunflowers", day, day.AddDate(0, 1, 0))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-03-02", rows[1][0])
	assert.Equal(t, "present", rows[1][3])
	assert.Equal(t, "08:00", rows[1][4])
}

func TestReceiptPDFRequiresPaidOrder(t *testing.T) {
	orders := newFakeOrderRepo()
	seedLedgerOrder(orders, "ORD-PAID", "1500", models.OrderStatusPaid)
	seedLedgerOrder(orders, "ORD-PENDING", "1500", models.OrderStatusPending)

	svc := newTestExportService(orders, &fakeAttendanceRepo{})

	_, err := svc.ReceiptPDF(nil, "ORD-PENDING")
	assert.True(t, apperrors.Is(err, apperrors.ErrOrderNotPaid))

	_, err = svc.ReceiptPDF(nil, "missing")
	assert.True(t, apperrors.Is(err, apperrors.ErrOrderNotFound))

	data, err := svc.ReceiptPDF(nil, "ORD-PAID")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
