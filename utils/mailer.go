package utils

import (
	"fmt"

	"inventory-app/config"
	"inventory-app/models"

	"gopkg.in/gomail.v2"
)

// NotifyIfLowStock sends an alert email when an item has dropped to or
// below its minimum threshold. Delivery is best-effort and runs in the
// background; a failed mail never fails the stock operation.
func NotifyIfLowStock(item *models.StockItem) {
	if !config.LowStockAlerts || len(config.AlertRecipients) == 0 {
		return
	}

	status := item.StockStatus()
	if status != models.StockStatusLowStock && status != models.StockStatusOutOfStock {
		return
	}

	go func(item models.StockItem) {
		if err := sendLowStockMail(&item); err != nil {
			config.GetLogger().WithField("part_number", item.PartNumber).
				WithError(err).Warn("failed to send low stock alert")
		}
	}(*item)
}

func sendLowStockMail(item *models.StockItem) error {
	subject := fmt.Sprintf("Low stock: %s (%s)", item.Name, item.PartNumber)
	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Stock level alert</h3>
				<p>Item: <strong>%s</strong> (%s)</p>
				<p>Current stock: <strong>%d</strong>, minimum: %d</p>
				<p>This is an auto-generated email. Please do not reply.</p>
			</body>
		</html>
	`, item.Name, item.PartNumber, item.CurrentStock, item.MinimumStock)

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", config.AlertRecipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	return dialer.DialAndSend(msg)
}
