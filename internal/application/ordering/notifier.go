package ordering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Mdev98/fast-food-api/internal/domain/ordering"
)

// SMSSender delivers one SMS. Satisfied by sms.GatewayClient.
type SMSSender interface {
	Send(ctx context.Context, mobile, content string) error
}

// Notifier sends the order placement SMS pair: an alert to the brand
// manager and a confirmation to the customer. Failures are logged and
// never surface to the caller, a lost SMS must not lose the order.
type Notifier struct {
	sender        SMSSender
	managerMobile string
	logger        *zap.Logger
}

// NewNotifier creates a Notifier. A nil sender disables notifications.
func NewNotifier(sender SMSSender, managerMobile string, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		sender:        sender,
		managerMobile: managerMobile,
		logger:        logger,
	}
}

// NotifyOrderPlaced fires both messages for a freshly placed order.
func (n *Notifier) NotifyOrderPlaced(ctx context.Context, order *ordering.Order) {
	if n.sender == nil {
		return
	}

	if n.managerMobile != "" {
		if err := n.sender.Send(ctx, n.managerMobile, ManagerAlertMessage(order)); err != nil {
			n.logger.Error("Failed to send manager SMS",
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
		}
	}

	if err := n.sender.Send(ctx, order.CustomerMobile, CustomerConfirmationMessage(order)); err != nil {
		n.logger.Error("Failed to send customer SMS",
			zap.String("order_id", order.ID.String()),
			zap.String("mobile", order.CustomerMobile),
			zap.Error(err),
		)
	}
}

// CustomerConfirmationMessage renders the confirmation SMS sent to the
// customer.
func CustomerConfirmationMessage(order *ordering.Order) string {
	return fmt.Sprintf(
		"Commande #%s confirmee ! Total: %s. Livraison: %s. Merci pour votre commande !",
		shortOrderID(order),
		order.TotalMoney().Format(),
		order.Address,
	)
}

// ManagerAlertMessage renders the new order alert sent to the brand
// manager.
func ManagerAlertMessage(order *ordering.Order) string {
	msg := fmt.Sprintf(
		"Nouvelle commande #%s recue !\nClient: %s (%s)\nAdresse: %s\nArticles: %s\n",
		shortOrderID(order),
		order.CustomerName,
		order.CustomerMobile,
		order.Address,
		order.Items.Summary(),
	)
	if order.Details != "" {
		msg += fmt.Sprintf("Details: %s\n", order.Details)
	}
	msg += fmt.Sprintf("Total: %s", order.TotalMoney().Format())
	return msg
}

// shortOrderID keeps SMS bodies readable, the full UUID is only used
// in the API.
func shortOrderID(order *ordering.Order) string {
	return order.ID.String()[:8]
}
