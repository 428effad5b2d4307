package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"ticketing_recurrente/internal/domain/entities"
	"ticketing_recurrente/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// OrderService is the default host-side order workflow: quota decrement,
// payment state writes, order status derivation and audit logging. The state
// transition engine only ever sees it through IOrderService, so a real host
// platform can swap in its own implementation.

type OrderService struct {
	orders   interfaces.IOrderRepository
	payments interfaces.IPaymentRepository
	logs     interfaces.IOrderLogRepository
}

var _ interfaces.IOrderService = (*OrderService)(nil)

func NewOrderService(orders interfaces.IOrderRepository, payments interfaces.IPaymentRepository, logs interfaces.IOrderLogRepository) *OrderService {
	return &OrderService{orders: orders, payments: payments, logs: logs}
}

// ConfirmPayment decrements the event quota, flips the payment to Confirmed
// and marks the order paid. The quota decrement goes first: when capacity is
// exhausted nothing has been written and the payment keeps its prior state.
func (s *OrderService) ConfirmPayment(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	if err := s.orders.DecrementQuota(ctx, p.Organizer, p.Event); err != nil {
		return entities.Payment{}, fmt.Errorf("quota for %s/%s: %w", p.Organizer, p.Event, err)
	}

	confirmed, err := s.payments.UpdateState(ctx, p.ID, entities.PaymentStateConfirmed, p.Info)
	if err != nil {
		return entities.Payment{}, err
	}

	if _, err := s.orders.UpdateStatus(ctx, p.OrderCode, entities.OrderStatusPaid); err != nil {
		// The payment is confirmed; order status is recoverable and must not
		// fail the webhook into a gateway retry storm.
		log.Printf("[order][confirm] order status update failed order=%s err=%v", p.OrderCode, err)
	}
	return confirmed, nil
}

// FailPayment flips the payment to Failed. notifyCustomer is accepted for
// contract compatibility; customer email is the host platform's concern and
// this default implementation only records the intent.
func (s *OrderService) FailPayment(ctx context.Context, p entities.Payment, notifyCustomer bool) (entities.Payment, error) {
	p.SetInfo("notify_customer", notifyCustomer)
	return s.payments.UpdateState(ctx, p.ID, entities.PaymentStateFailed, p.Info)
}

func (s *OrderService) LogAction(ctx context.Context, orderCode, action string, data map[string]any) error {
	return s.logs.Append(ctx, interfaces.OrderLogEntry{
		ID:        uuid.NewString(),
		OrderCode: orderCode,
		Action:    action,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	})
}
