package usecase

import (
	"context"
	"errors"
	"testing"

	"ticketing_recurrente/internal/domain/entities"
	"ticketing_recurrente/internal/usecase/interfaces"
	mock_interfaces "ticketing_recurrente/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestOrderService_ConfirmPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("quota decrement precedes any write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		logs := mock_interfaces.NewMockIOrderLogRepository(ctrl)
		s := NewOrderService(orders, payments, logs)

		p := recurrentePayment("p1", entities.PaymentStatePending, nil)
		orders.EXPECT().DecrementQuota(gomock.Any(), "acme", "conf").Return(interfaces.ErrQuotaExceeded)

		_, err := s.ConfirmPayment(ctx, p)
		if !errors.Is(err, interfaces.ErrQuotaExceeded) {
			t.Fatalf("expected ErrQuotaExceeded, got %v", err)
		}
	})

	t.Run("confirms payment and marks order paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		logs := mock_interfaces.NewMockIOrderLogRepository(ctrl)
		s := NewOrderService(orders, payments, logs)

		p := recurrentePayment("p1", entities.PaymentStatePending, map[string]any{"checkout_id": "ch_1"})
		confirmed := p
		confirmed.State = entities.PaymentStateConfirmed

		orders.EXPECT().DecrementQuota(gomock.Any(), "acme", "conf").Return(nil)
		payments.EXPECT().UpdateState(gomock.Any(), "p1", entities.PaymentStateConfirmed, p.Info).Return(confirmed, nil)
		orders.EXPECT().UpdateStatus(gomock.Any(), "ABC12", entities.OrderStatusPaid).Return(entities.Order{}, nil)

		got, err := s.ConfirmPayment(ctx, p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.State != entities.PaymentStateConfirmed {
			t.Fatalf("expected confirmed, got %s", got.State)
		}
	})

	t.Run("order status failure does not fail the confirmation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		logs := mock_interfaces.NewMockIOrderLogRepository(ctrl)
		s := NewOrderService(orders, payments, logs)

		p := recurrentePayment("p1", entities.PaymentStatePending, nil)
		confirmed := p
		confirmed.State = entities.PaymentStateConfirmed

		orders.EXPECT().DecrementQuota(gomock.Any(), "acme", "conf").Return(nil)
		payments.EXPECT().UpdateState(gomock.Any(), "p1", entities.PaymentStateConfirmed, gomock.Any()).Return(confirmed, nil)
		orders.EXPECT().UpdateStatus(gomock.Any(), "ABC12", entities.OrderStatusPaid).Return(entities.Order{}, errors.New("dynamodb unavailable"))

		if _, err := s.ConfirmPayment(ctx, p); err != nil {
			t.Fatalf("expected confirmation to survive status failure, got %v", err)
		}
	})
}

func TestOrderService_FailPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	orders := mock_interfaces.NewMockIOrderRepository(ctrl)
	payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
	logs := mock_interfaces.NewMockIOrderLogRepository(ctrl)
	s := NewOrderService(orders, payments, logs)

	p := recurrentePayment("p1", entities.PaymentStatePending, nil)
	payments.EXPECT().UpdateState(gomock.Any(), "p1", entities.PaymentStateFailed, gomock.Any()).
		DoAndReturn(func(_ context.Context, id string, state entities.PaymentState, info map[string]any) (entities.Payment, error) {
			if info["notify_customer"] != true {
				t.Fatalf("expected notify intent recorded, got %v", info["notify_customer"])
			}
			p.State = state
			return p, nil
		})

	got, err := s.FailPayment(context.Background(), p, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.State != entities.PaymentStateFailed {
		t.Fatalf("expected failed, got %s", got.State)
	}
}

func TestOrderService_LogAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	logs := mock_interfaces.NewMockIOrderLogRepository(ctrl)
	s := NewOrderService(nil, nil, logs)

	logs.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e interfaces.OrderLogEntry) error {
			if e.ID == "" || e.OrderCode != "ABC12" || e.Action != actionPaymentConfirmed {
				t.Fatalf("unexpected entry: %+v", e)
			}
			if e.CreatedAt.IsZero() {
				t.Fatalf("expected timestamp set")
			}
			return nil
		})

	if err := s.LogAction(context.Background(), "ABC12", actionPaymentConfirmed, map[string]any{"payment_id": "p1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
