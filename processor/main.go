package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"erp-app/config"
	"erp-app/database"
	"erp-app/models"

	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// Standalone end-of-day job: mails each tenant a summary of the day's
// reconciliations so managers see pending sessions and cash gaps without
// opening the app.
func main() {
	config.LoadConfig()

	db, err := database.Open()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var tenants []models.Tenant
	if err := db.Where("is_active = ?", true).Find(&tenants).Error; err != nil {
		log.Fatalf("Failed to load tenants: %v", err)
	}

	for _, tenant := range tenants {
		if tenant.ContactEmail == "" {
			continue
		}
		if err := sendDailySummary(db, tenant); err != nil {
			log.Printf("Warning: summary for tenant %s not sent: %v", tenant.Code, err)
		}
	}
}

func sendDailySummary(db *gorm.DB, tenant models.Tenant) error {
	since := time.Now().AddDate(0, 0, -1)

	var recs []models.ServerReconciliation
	if err := db.Where("tenant_id = ? AND updated_at >= ?", tenant.ID, since).
		Order("updated_at desc").Find(&recs).Error; err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}

	var pending, disputed int
	var sb strings.Builder
	sb.WriteString("<html><body>")
	sb.WriteString(fmt.Sprintf("<h3>Daily reconciliation summary - %s</h3>", tenant.Name))
	sb.WriteString("<table border='1' cellpadding='4'><tr><th>Reference</th><th>Status</th><th>Total Sales</th><th>Collected</th><th>Difference</th></tr>")
	for _, rec := range recs {
		switch rec.Status {
		case models.ReconciliationPending:
			pending++
		case models.ReconciliationDisputed:
			disputed++
		}
		sb.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			rec.Reference, rec.Status, rec.TotalSales.StringFixed(2),
			rec.CashCollected.StringFixed(2), rec.CashDifference.StringFixed(2)))
	}
	sb.WriteString("</table>")
	sb.WriteString(fmt.Sprintf("<p>%d pending validation, %d disputed.</p>", pending, disputed))
	sb.WriteString("<p>This is an auto-generated email.</p></body></html>")

	m := gomail.NewMessage()
	m.SetHeader("From", config.SMTPSender)
	m.SetHeader("To", tenant.ContactEmail)
	m.SetHeader("Subject", fmt.Sprintf("Reconciliation summary %s - %s", time.Now().Format("2006-01-02"), tenant.Name))
	m.SetBody("text/html", sb.String())

	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)
	return d.DialAndSend(m)
}
