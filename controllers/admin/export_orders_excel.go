package adminController

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/sanjaysagar12/EcoFinds/models"
)

// GET /api/admin/orders/export
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Preload("Buyer").
			Order("created_at desc").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{
			"OrderID", "Buyer", "BuyerEmail", "Status", "Total",
			"Items", "ShippingInfo", "CreatedAt", "DeliveredAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows, one per order item
		for _, o := range orders {
			buyerName, buyerEmail := "", ""
			if o.Buyer != nil {
				buyerName, buyerEmail = o.Buyer.Name, o.Buyer.Email
			}
			deliveredAt := ""
			if o.DeliveredAt != nil {
				deliveredAt = o.DeliveredAt.Format("2006-01-02 15:04:05")
			}

			for _, item := range o.Items {
				row := sheet.AddRow()
				row.AddCell().SetValue(o.ID)
				row.AddCell().SetValue(buyerName)
				row.AddCell().SetValue(buyerEmail)
				row.AddCell().SetValue(string(o.Status))
				row.AddCell().SetValue(o.Total.String())
				row.AddCell().SetValue(item.ProductName + " x" + strconv.Itoa(item.Quantity) + " @ " + item.Price.String())
				row.AddCell().SetValue(o.ShippingInfo)
				row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
				row.AddCell().SetValue(deliveredAt)
			}
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
