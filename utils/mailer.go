package utils

import (
	"fmt"

	"erp-app/config"

	"gopkg.in/gomail.v2"
)

// SendMail delivers an HTML notification. Callers treat failures as
// best-effort: log and continue, never abort the primary mutation.
func SendMail(to []string, subject, body string) error {
	if config.SMTPHost == "" || len(to) == 0 {
		return fmt.Errorf("smtp not configured or no recipients")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)
	return dialer.DialAndSend(msg)
}
