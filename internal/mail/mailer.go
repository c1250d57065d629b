// Package mail sends the order confirmation receipt. Delivery is strictly
// best-effort: every failure path logs and reports false, and nothing here
// runs while a store lock is held.
package mail

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"github.com/grocymate/core/internal/config"
	"github.com/grocymate/core/internal/orders"
)

type Mailer struct {
	Server   string
	Port     int
	Sender   string
	Password string
	Name     string
}

func New(cfg config.Config) *Mailer {
	return &Mailer{
		Server:   cfg.SMTPServer,
		Port:     cfg.SMTPPort,
		Sender:   cfg.SenderEmail,
		Password: cfg.SenderPassword,
		Name:     cfg.SenderName,
	}
}

// configured reports whether we have enough settings to attempt a send.
func (m *Mailer) configured() bool {
	return m.Server != "" && m.Sender != "" && m.Password != ""
}

// SendConfirmation mails a multipart/alternative receipt (plaintext + HTML)
// for a confirmed order. Returns whether the mail went out.
func (m *Mailer) SendConfirmation(o orders.Order, customerName string) bool {
	if m == nil || !m.configured() {
		slog.Warn("smtp configuration incomplete; skipping confirmation mail")
		return false
	}

	msg, err := m.buildMessage(o, customerName)
	if err != nil {
		slog.Error("build confirmation mail", "order_id", o.OrderID, "err", err)
		return false
	}

	addr := fmt.Sprintf("%s:%d", m.Server, m.Port)
	auth := smtp.PlainAuth("", m.Sender, m.Password, m.Server)
	if err := smtp.SendMail(addr, auth, m.Sender, []string{o.CustomerEmail}, msg); err != nil {
		slog.Error("send confirmation mail", "order_id", o.OrderID, "err", err)
		return false
	}
	slog.Info("confirmation mail sent", "order_id", o.OrderID, "to", o.CustomerEmail)
	return true
}

func (m *Mailer) buildMessage(o orders.Order, customerName string) ([]byte, error) {
	if customerName == "" {
		customerName = "Customer"
	}

	var body strings.Builder
	w := multipart.NewWriter(&body)

	headers := fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: Order Confirmation - %s\r\nMIME-Version: 1.0\r\nContent-Type: multipart/alternative; boundary=%q\r\n\r\n",
		m.Name, m.Sender, o.CustomerEmail, o.OrderID, w.Boundary(),
	)

	plain, err := w.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain; charset=utf-8"}})
	if err != nil {
		return nil, err
	}
	fmt.Fprint(plain, plainBody(o, customerName))

	html, err := w.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/html; charset=utf-8"}})
	if err != nil {
		return nil, err
	}
	fmt.Fprint(html, htmlBody(o, customerName))

	if err := w.Close(); err != nil {
		return nil, err
	}
	return []byte(headers + body.String()), nil
}

func deliveryLabel(charge int) string {
	if charge == 0 {
		return "FREE"
	}
	return fmt.Sprintf("Rs.%d", charge)
}

func plainBody(o orders.Order, customerName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "GrocyMate - Order Confirmation\r\n\r\n")
	fmt.Fprintf(&b, "Order ID: %s\r\nCustomer: %s\r\nItems:\r\n", o.OrderID, customerName)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %dx %s @ Rs.%d each = Rs.%d\r\n", it.Quantity, it.Name, it.Price, it.Quantity*it.Price)
	}
	fmt.Fprintf(&b, "\r\nSubtotal: Rs.%d\r\nDelivery: %s\r\n", o.Subtotal, deliveryLabel(o.DeliveryCharge))
	if o.Discount > 0 {
		fmt.Fprintf(&b, "Discount: -Rs.%d\r\n", o.Discount)
	}
	fmt.Fprintf(&b, "Total: Rs.%d\r\nDelivery Address: %s\r\n\r\nThank you for shopping with GrocyMate!\r\n", o.Total, o.DeliveryAddress)
	return b.String()
}

func htmlBody(o orders.Order, customerName string) string {
	var b strings.Builder
	b.WriteString("<html><body><h2>GrocyMate - Order Confirmation</h2>")
	fmt.Fprintf(&b, "<p>Hi %s,</p><p>Thanks for your order. Order ID: <strong>%s</strong></p><h3>Items</h3><ul>", customerName, o.OrderID)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "<li>%dx %s &mdash; Rs.%d each = Rs.%d</li>", it.Quantity, it.Name, it.Price, it.Quantity*it.Price)
	}
	fmt.Fprintf(&b, "</ul><hr><p>Subtotal: Rs.%d</p><p>Delivery: %s</p>", o.Subtotal, deliveryLabel(o.DeliveryCharge))
	if o.Discount > 0 {
		fmt.Fprintf(&b, "<p>Discount: -Rs.%d</p>", o.Discount)
	}
	fmt.Fprintf(&b, "<p><strong>Total: Rs.%d</strong></p><p>Delivery Address: %s</p><p>Thanks! &mdash; GrocyMate</p></body></html>", o.Total, o.DeliveryAddress)
	return b.String()
}
