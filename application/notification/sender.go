/*
Package notification holds the handlers that run after a use case commits, and
the dispatcher middlewares shared by both channels.

Handlers reach the outside world through a Sender and the database through the
fresh unit of work UnitOfWorkMiddleware puts in the data bag.
*/
package notification

import (
	"context"
	"fmt"
	"html"
	"strings"

	"tgorders/domain/order"
)

// Sender delivers bot messages. confirmOrderID attaches the confirm/cancel
// keyboard for that order when it is not empty.
type Sender interface {
	Send(ctx context.Context, chatID int64, text, confirmOrderID string) (order.OrderMessage, error)
	ClearKeyboard(ctx context.Context, chatID int64, messageID int) error
}

// FormatOrder renders an order as Telegram HTML.
func FormatOrder(o order.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Id: %s\n", html.EscapeString(o.ID))
	fmt.Fprintf(&b, "Created at: %s\n", o.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Creator: %s\n", html.EscapeString(o.Creator.Name))
	fmt.Fprintf(&b, "Market: %s\n", html.EscapeString(o.RecipientMarket.Name))
	fmt.Fprintf(&b, "Comments: %s\n\n", html.EscapeString(o.Commentary))
	fmt.Fprintf(&b, "Status: %s %s\n", o.Confirmed, statusIcon(o.Confirmed))
	b.WriteString("Goods:\n")
	for _, line := range o.Lines {
		sku := ""
		if line.Goods.SKU != nil {
			sku = *line.Goods.SKU
		}
		fmt.Fprintf(&b, "  Name: %s %s\n", html.EscapeString(line.Goods.Name), html.EscapeString(sku))
		fmt.Fprintf(&b, "  Quantity: %d\n\n", line.Quantity)
	}
	return b.String()
}

func statusIcon(s order.ConfirmedStatus) string {
	switch s {
	case order.StatusYes:
		return "✅"
	case order.StatusNo:
		return "❌"
	default:
		return "⏳"
	}
}

func pre(s string) string {
	return "<pre>" + html.EscapeString(s) + "</pre>"
}
