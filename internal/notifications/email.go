package notifications

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aurenecom/storefront-backend/internal/orders"
	"github.com/aurenecom/storefront-backend/pkg/config"
	"github.com/aurenecom/storefront-backend/pkg/logger"
	"github.com/aurenecom/storefront-backend/pkg/mailer"
)

// EmailNotifier sends order emails through the configured transactional
// provider. It satisfies the checkout post-create hooks.
type EmailNotifier struct {
	sender mailer.Sender
	cfg    config.ResendConfig
	logg   *logger.Logger
}

// NewEmailNotifier builds the order email notifier.
func NewEmailNotifier(sender mailer.Sender, cfg config.ResendConfig, logg *logger.Logger) (*EmailNotifier, error) {
	if sender == nil {
		return nil, fmt.Errorf("email sender is required")
	}
	if strings.TrimSpace(cfg.SenderEmail) == "" {
		return nil, fmt.Errorf("sender email is required")
	}
	return &EmailNotifier{sender: sender, cfg: cfg, logg: logg}, nil
}

// SendOrderConfirmation emails the customer who placed the order.
func (n *EmailNotifier) SendOrderConfirmation(ctx context.Context, order *orders.OrderDTO) error {
	if order == nil {
		return fmt.Errorf("order is required")
	}

	email := mailer.Email{
		From:    n.cfg.SenderEmail,
		To:      []string{order.CustomerEmail},
		Subject: fmt.Sprintf("Order %s confirmed", order.OrderNumber),
		HTML:    ComposeOrderConfirmation(order),
	}

	id, err := n.sender.Send(ctx, email)
	if err != nil {
		return fmt.Errorf("send order confirmation: %w", err)
	}
	if n.logg != nil {
		n.logg.Info(n.logg.WithFields(ctx, map[string]any{
			"order_number": order.OrderNumber,
			"message_id":   id,
		}), "order confirmation sent")
	}
	return nil
}

// SendCompanyAlert emails the back-office address about a new order. It is a
// noop when no company address is configured.
func (n *EmailNotifier) SendCompanyAlert(ctx context.Context, order *orders.OrderDTO) error {
	if order == nil {
		return fmt.Errorf("order is required")
	}
	recipient := strings.TrimSpace(n.cfg.CompanyOrderEmail)
	if recipient == "" {
		return nil
	}

	email := mailer.Email{
		From:    n.cfg.SenderEmail,
		To:      []string{recipient},
		Subject: fmt.Sprintf("New order %s from %s", order.OrderNumber, order.CustomerName),
		HTML:    ComposeCompanyAlert(order),
	}

	if _, err := n.sender.Send(ctx, email); err != nil {
		return fmt.Errorf("send company alert: %w", err)
	}
	return nil
}

// ComposeOrderConfirmation renders the customer-facing confirmation email.
// Every order-supplied string is escaped before interpolation.
func ComposeOrderConfirmation(order *orders.OrderDTO) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">`)
	b.WriteString(fmt.Sprintf("<h2>Thank you for your order, %s!</h2>", html.EscapeString(order.CustomerName)))
	b.WriteString(fmt.Sprintf("<p>Your order <strong>%s</strong> was received on %s.</p>",
		html.EscapeString(order.OrderNumber),
		order.CreatedAt.Format("2 January 2006 at 15:04")))

	writeItemsTable(&b, order)

	if order.Notes != nil && strings.TrimSpace(*order.Notes) != "" {
		b.WriteString(fmt.Sprintf("<p><strong>Notes:</strong> %s</p>", html.EscapeString(*order.Notes)))
	}
	b.WriteString("<p>We will contact you to arrange delivery and payment.</p>")
	b.WriteString("</div>")

	return b.String()
}

// ComposeCompanyAlert renders the back-office notification email.
func ComposeCompanyAlert(order *orders.OrderDTO) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">`)
	b.WriteString(fmt.Sprintf("<h2>New order %s</h2>", html.EscapeString(order.OrderNumber)))
	b.WriteString("<ul>")
	b.WriteString(fmt.Sprintf("<li>Customer: %s</li>", html.EscapeString(order.CustomerName)))
	b.WriteString(fmt.Sprintf("<li>Email: %s</li>", html.EscapeString(order.CustomerEmail)))
	if order.CustomerPhone != nil && *order.CustomerPhone != "" {
		b.WriteString(fmt.Sprintf("<li>Phone: %s</li>", html.EscapeString(*order.CustomerPhone)))
	}
	if order.CustomerAddress != nil && *order.CustomerAddress != "" {
		b.WriteString(fmt.Sprintf("<li>Address: %s</li>", html.EscapeString(*order.CustomerAddress)))
	}
	b.WriteString("</ul>")

	writeItemsTable(&b, order)

	if order.Notes != nil && strings.TrimSpace(*order.Notes) != "" {
		b.WriteString(fmt.Sprintf("<p><strong>Notes:</strong> %s</p>", html.EscapeString(*order.Notes)))
	}
	b.WriteString("</div>")

	return b.String()
}

func writeItemsTable(b *strings.Builder, order *orders.OrderDTO) {
	b.WriteString(`<table style="width:100%;border-collapse:collapse" border="1" cellpadding="6">`)
	b.WriteString("<tr><th>Product</th><th>Code</th><th>Qty</th><th>Unit price</th><th>Subtotal</th></tr>")
	for _, item := range order.Items {
		b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(item.ProductName),
			html.EscapeString(item.ProductCode),
			item.Quantity,
			item.PricePerUnit.StringFixed(2),
			item.Subtotal.StringFixed(2)))
	}
	b.WriteString("</table>")
	b.WriteString(fmt.Sprintf("<p><strong>Total: %s %s</strong></p>",
		order.TotalAmount.StringFixed(2),
		html.EscapeString(string(order.Currency))))
}
