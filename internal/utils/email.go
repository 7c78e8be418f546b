package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"
)

// SendWelcomeEmail greets a newly registered customer. Callers run it in a
// goroutine; a missing SMTP configuration turns it into a no-op.
func SendWelcomeEmail(to, name string) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	msg := mail.NewMsg()
	if err := msg.From(os.Getenv("SMTP_FROM")); err != nil {
		log.Println("❌ Invalid SMTP_FROM address:", err)
		return
	}
	if err := msg.To(to); err != nil {
		log.Println("❌ Invalid recipient address:", err)
		return
	}
	msg.Subject("Welcome to the store")
	msg.SetBodyString(mail.TypeTextHTML, welcomeHTML(name))

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		log.Println("❌ SMTP client creation failed:", err)
		return
	}

	log.Println("📤 Sending welcome email to", to)
	if err := client.DialAndSend(msg); err != nil {
		log.Println("⚠️ Welcome email not sent:", err)
	}
}

func welcomeHTML(name string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Welcome!</h2>
		<p>Hi %s,</p>
		<p>Your account has been created. Happy shopping!</p>
	</div>
</body>
</html>`, name)
}
