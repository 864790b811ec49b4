package controllers

import (
	"fmt"

	"github.com/Priyam-804/WearNest/config"
	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadInvoice renders a PDF invoice for one of the user's paid orders.
func DownloadInvoice(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").Preload("Address").
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if !order.IsPaid {
		utils.Conflict(c, utils.KindStateConflict, "Invoices are only available for paid orders")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(95, 10, utils.AppName)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 10, fmt.Sprintf("Invoice #INV-%06d", order.ID), "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.Cell(95, 5, fmt.Sprintf("Order date: %s", order.CreatedAt.Format("02 Jan 2006")))
	pdf.CellFormat(95, 5, fmt.Sprintf("Payment: %s", order.PaymentMethod), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(40, 6, "Ship to")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(95, 5, fmt.Sprintf("%s %s", user.FirstName, user.LastName))
	pdf.Ln(5)
	pdf.Cell(95, 5, order.Address.Line1)
	pdf.Ln(5)
	pdf.Cell(95, 5, fmt.Sprintf("%s, %s %s", order.Address.City, order.Address.State, order.Address.PostalCode))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(80, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Size", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, item := range order.OrderItems {
		pdf.CellFormat(80, 7, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, item.Size, "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", item.Total), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	summary := func(label, value string, bold bool) {
		if bold {
			pdf.SetFont("Arial", "B", 10)
		} else {
			pdf.SetFont("Arial", "", 9)
		}
		pdf.CellFormat(155, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, value, "", 1, "R", false, 0, "")
	}
	summary("Subtotal", fmt.Sprintf("%.2f", order.Subtotal), false)
	summary("Shipping", fmt.Sprintf("%.2f", order.Shipping), false)
	if order.Discount > 0 {
		label := "Discount"
		if order.CouponCode != "" {
			label = fmt.Sprintf("Discount (%s)", order.CouponCode)
		}
		summary(label, fmt.Sprintf("-%.2f", order.Discount), false)
	}
	summary("Tax", fmt.Sprintf("%.2f", order.Tax), false)
	summary("Grand Total (INR)", fmt.Sprintf("%.2f", order.TotalPrice), true)

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(190, 5, "This is a computer generated invoice and does not require a signature.")

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%d.pdf", order.ID))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to render invoice for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to generate invoice", nil)
		return
	}
	utils.LogInfo("Invoice for order %d downloaded by user %d", order.ID, user.ID)
}
