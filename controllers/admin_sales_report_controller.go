package controllers

import (
	"fmt"
	"time"

	"github.com/Priyam-804/WearNest/config"
	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// reportRange parses from/to query params, defaulting to the last 30 days.
func reportRange(c *gin.Context) (time.Time, time.Time, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if s := c.Query("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return from, to, fmt.Errorf("from must be in YYYY-MM-DD format")
		}
		from = parsed
	}
	if s := c.Query("to"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return from, to, fmt.Errorf("to must be in YYYY-MM-DD format")
		}
		to = parsed.Add(24*time.Hour - time.Second)
	}
	if from.After(to) {
		return from, to, fmt.Errorf("from must be before to")
	}
	return from, to, nil
}

// GetSalesReport summarises settlement activity for a date range.
func GetSalesReport(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	from, to, err := reportRange(c)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	var orders []models.Order
	if err := config.DB.Where("created_at BETWEEN ? AND ?", from, to).
		Order("created_at asc").Find(&orders).Error; err != nil {
		utils.LogError("Failed to load orders for sales report: %v", err)
		utils.InternalServerError(c, "Failed to generate sales report", nil)
		return
	}

	var gross, discount, refunds float64
	statusCounts := map[string]int{}
	for _, o := range orders {
		statusCounts[o.Status]++
		if o.Status != models.OrderStatusCancelled {
			gross += o.TotalPrice
			discount += o.Discount
		}
		if o.RefundStatus == models.RefundStatusCompleted {
			refunds += o.RefundAmount
		}
	}

	utils.Success(c, "Sales report generated", gin.H{
		"from":           from.Format("2006-01-02"),
		"to":             to.Format("2006-01-02"),
		"order_count":    len(orders),
		"status_counts":  statusCounts,
		"gross_sales":    fmt.Sprintf("%.2f", gross),
		"total_discount": fmt.Sprintf("%.2f", discount),
		"total_refunds":  fmt.Sprintf("%.2f", refunds),
		"net_sales":      fmt.Sprintf("%.2f", gross-refunds),
	})
}

// ExportSalesReport downloads the same range as a spreadsheet, one row per
// order plus a summary block.
func ExportSalesReport(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	from, to, err := reportRange(c)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	var orders []models.Order
	if err := config.DB.Preload("User").
		Where("created_at BETWEEN ? AND ?", from, to).
		Order("created_at asc").Find(&orders).Error; err != nil {
		utils.LogError("Failed to load orders for export: %v", err)
		utils.InternalServerError(c, "Failed to export sales report", nil)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales")
	if err != nil {
		utils.LogError("Failed to create sheet: %v", err)
		utils.InternalServerError(c, "Failed to export sales report", nil)
		return
	}

	header := sheet.AddRow()
	for _, h := range []string{"Order ID", "Date", "Customer", "Payment", "Status",
		"Subtotal", "Shipping", "Tax", "Discount", "Coupon", "Total", "Refunded"} {
		header.AddCell().Value = h
	}

	var gross, refunds float64
	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(o.ID))
		row.AddCell().Value = o.CreatedAt.Format("2006-01-02 15:04")
		row.AddCell().Value = o.User.Email
		row.AddCell().Value = o.PaymentMethod
		row.AddCell().Value = o.Status
		row.AddCell().SetFloat(o.Subtotal)
		row.AddCell().SetFloat(o.Shipping)
		row.AddCell().SetFloat(o.Tax)
		row.AddCell().SetFloat(o.Discount)
		row.AddCell().Value = o.CouponCode
		row.AddCell().SetFloat(o.TotalPrice)
		if o.RefundStatus == models.RefundStatusCompleted {
			row.AddCell().SetFloat(o.RefundAmount)
			refunds += o.RefundAmount
		} else {
			row.AddCell().SetFloat(0)
		}
		if o.Status != models.OrderStatusCancelled {
			gross += o.TotalPrice
		}
	}

	sheet.AddRow()
	summaryRow := func(label string, value float64) {
		row := sheet.AddRow()
		row.AddCell().Value = label
		row.AddCell().SetFloat(value)
	}
	summaryRow("Gross sales", gross)
	summaryRow("Total refunds", refunds)
	summaryRow("Net sales", gross-refunds)

	filename := fmt.Sprintf("sales-%s-to-%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write sales export: %v", err)
		utils.InternalServerError(c, "Failed to export sales report", nil)
		return
	}
	utils.LogInfo("Sales report exported for %s to %s (%d orders)", from.Format("2006-01-02"), to.Format("2006-01-02"), len(orders))
}
