package services

import (
	"fmt"
	"log"

	"storefront/internal/models"

	"gopkg.in/gomail.v2"
)

// SMTPConfig, e-posta gönderimi için bağlantı ayarları
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// EmailService, e-posta gönderimi için kullanılır. SMTP ayarlanmamışsa
// e-postalar yalnızca loglanır.
type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService, yeni bir EmailService örneği oluşturur
func NewEmailService(cfg SMTPConfig) *EmailService {
	from := cfg.From
	if from == "" {
		from = "noreply@storefront.local"
	}
	if cfg.Host == "" || cfg.User == "" || cfg.Password == "" {
		log.Println("EmailService - SMTP not configured, emails will only be logged")
		return &EmailService{from: from}
	}
	return &EmailService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
	}
}

func (es *EmailService) send(to, subject, body string) error {
	if es == nil {
		return nil
	}
	if es.dialer == nil {
		log.Printf("EmailService - Delivery disabled, to=%s subject=%q", to, subject)
		return nil
	}
	m := gomail.NewMessage()
	m.SetHeader("From", es.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return es.dialer.DialAndSend(m)
}

// SendWelcomeEmail, yeni kayıt olan kullanıcıya hoş geldin e-postası gönderir
func (es *EmailService) SendWelcomeEmail(to, username string) error {
	body := fmt.Sprintf(`<h2>Welcome, %s!</h2>
<p>Your account has been created. Happy shopping.</p>`, username)
	return es.send(to, "Welcome to the store", body)
}

// SendOrderConfirmation, müşteriye sipariş onayı gönderir
func (es *EmailService) SendOrderConfirmation(order *models.Order, totals models.Totals) error {
	body := fmt.Sprintf(`<h2>Thank you for your order, %s!</h2>
<p>Order #%d</p>
<p>Subtotal: %.2f<br>Shipping: %.2f<br><strong>Total: %.2f</strong></p>
<p>Shipping to: %s, %s, %s %s</p>`,
		order.FirstName, order.ID,
		totals.Subtotal, totals.Shipping, totals.Total,
		order.Address, order.City, order.State, order.Zipcode)
	return es.send(order.Email, fmt.Sprintf("Order #%d confirmation", order.ID), body)
}
