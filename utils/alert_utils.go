package utils

import (
	"fmt"
	"strings"

	"smartstock/models"
)

// BuildLowStockMessage renders the low-stock alert body. Dispatch (mail,
// chat) is left to the operator; the backend only logs the rendered message.
func BuildLowStockMessage(items []models.LowStockAlert) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("The following items are low in stock:\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "Product: %s\nSKU: %s\nStore: %s\nQuantity: %d\n--------------------------\n",
			item.Product, item.SKU, item.Store, item.Quantity)
	}
	return b.String()
}
