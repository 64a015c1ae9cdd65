package services

import (
	"log/slog"
	"sync"

	"luxfur/internal/models"
)

// OrderGetter loads a persisted order for notification delivery.
type OrderGetter interface {
	GetByID(id int) (*models.Order, error)
}

// OrderMailer sends the order confirmation message.
type OrderMailer interface {
	SendOrderConfirmation(order *models.Order) error
}

// EmailNotifier delivers order-created notifications from a background
// worker. Enqueueing never blocks the checkout request: when the queue is
// full the notification is dropped with a warning. Delivery failures are
// logged and never retried or surfaced.
type EmailNotifier struct {
	orders OrderGetter
	mailer OrderMailer
	logger *slog.Logger

	queue chan int
	wg    sync.WaitGroup

	closeOnce sync.Once
}

// NewEmailNotifier creates the notifier and starts its worker.
func NewEmailNotifier(orders OrderGetter, mailer OrderMailer, logger *slog.Logger) *EmailNotifier {
	n := &EmailNotifier{
		orders: orders,
		mailer: mailer,
		logger: logger,
		queue:  make(chan int, 64),
	}
	n.wg.Add(1)
	go n.run()
	return n
}

// OrderCreated enqueues a confirmation for the given order.
func (n *EmailNotifier) OrderCreated(orderID int) {
	select {
	case n.queue <- orderID:
	default:
		n.logger.Warn("notification queue full, dropping order confirmation",
			"order_id", orderID)
	}
}

// Close stops accepting notifications and waits for the queue to drain.
func (n *EmailNotifier) Close() {
	n.closeOnce.Do(func() {
		close(n.queue)
	})
	n.wg.Wait()
}

func (n *EmailNotifier) run() {
	defer n.wg.Done()
	for orderID := range n.queue {
		n.deliver(orderID)
	}
}

func (n *EmailNotifier) deliver(orderID int) {
	order, err := n.orders.GetByID(orderID)
	if err != nil {
		n.logger.Error("failed to load order for confirmation email",
			"order_id", orderID, "error", err)
		return
	}

	if err := n.mailer.SendOrderConfirmation(order); err != nil {
		n.logger.Error("failed to send order confirmation email",
			"order_id", orderID, "email", order.Email, "error", err)
		return
	}

	n.logger.Info("order confirmation email sent",
		"order_id", orderID, "email", order.Email)
}
