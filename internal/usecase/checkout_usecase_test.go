package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"ticketing_recurrente/internal/domain/entities"
	mock_interfaces "ticketing_recurrente/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type checkoutFixture struct {
	orders   *mock_interfaces.MockIOrderRepository
	payments *mock_interfaces.MockIPaymentRepository
	settings *mock_interfaces.MockISettingsRepository
	gateway  *mock_interfaces.MockICheckoutGateway
	cache    *mock_interfaces.MockICache
	host     *mock_interfaces.MockIOrderService
	uc       *CheckoutUseCase
}

func newCheckoutFixture(t *testing.T) checkoutFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	orders := mock_interfaces.NewMockIOrderRepository(ctrl)
	payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
	settings := mock_interfaces.NewMockISettingsRepository(ctrl)
	gateway := mock_interfaces.NewMockICheckoutGateway(ctrl)
	cache := mock_interfaces.NewMockICache(ctrl)
	host := mock_interfaces.NewMockIOrderService(ctrl)

	engine := NewPaymentConfirmer(payments, host, cache)
	engine.sleep = func(time.Duration) {}
	uc := NewCheckoutUseCase(orders, payments, settings, gateway, engine, host)
	return checkoutFixture{orders: orders, payments: payments, settings: settings, gateway: gateway, cache: cache, host: host, uc: uc}
}

var configuredSettings = entities.EventSettings{
	Organizer: "acme",
	Event:     "conf",
	APIKey:    "pk_test_1",
	APISecret: "sk_test_1",
}

func TestCheckoutUseCase_CreateCheckout(t *testing.T) {
	ctx := context.Background()
	urls := ReturnURLs{Success: "https://shop/ok", Cancel: "https://shop/cancel", Webhook: "https://shop/webhook"}
	order := entities.Order{
		Code:       "ABC12",
		Organizer:  "acme",
		Event:      "conf",
		Status:     entities.OrderStatusPending,
		Secret:     "s3cret",
		Email:      "jane.doe@example.com",
		TotalCents: 15000,
		Currency:   "GTQ",
	}

	t.Run("gateway not configured", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.settings.EXPECT().GetEventSettings(gomock.Any(), "acme", "conf").Return(entities.EventSettings{}, nil)

		_, err := f.uc.CreateCheckout(ctx, "acme", "conf", "ABC12", urls)
		if !errors.Is(err, ErrGatewayNotConfigured) {
			t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("order not found", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.settings.EXPECT().GetEventSettings(gomock.Any(), "acme", "conf").Return(configuredSettings, nil)
		f.orders.EXPECT().GetByCode(gomock.Any(), "acme", "conf", "NOPE1").Return(entities.Order{}, nil)

		_, err := f.uc.CreateCheckout(ctx, "acme", "conf", "NOPE1", urls)
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("creates session with correlation metadata", func(t *testing.T) {
		f := newCheckoutFixture(t)
		session := entities.CheckoutSession{ID: "ch_1", CheckoutURL: "https://pay/ch_1", Status: "pending"}

		f.settings.EXPECT().GetEventSettings(gomock.Any(), "acme", "conf").Return(configuredSettings, nil)
		f.orders.EXPECT().GetByCode(gomock.Any(), "acme", "conf", "ABC12").Return(order, nil)
		f.gateway.EXPECT().UpsertUser(gomock.Any(), configuredSettings, "jane.doe@example.com", "Jane Doe").Return("us_1", nil)
		f.gateway.EXPECT().CreateCheckout(gomock.Any(), configuredSettings, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ entities.EventSettings, req entities.CheckoutRequest) (entities.CheckoutSession, error) {
				if req.Metadata["order_code"] != "ABC12" || req.Metadata["payment_id"] == "" {
					t.Fatalf("correlation metadata incomplete: %v", req.Metadata)
				}
				if req.Metadata["organizer_slug"] != "acme" || req.Metadata["event_slug"] != "conf" {
					t.Fatalf("tenant metadata incomplete: %v", req.Metadata)
				}
				if req.UserID != "us_1" {
					t.Fatalf("expected prefilled user id, got %q", req.UserID)
				}
				if len(req.Items) != 1 || req.Items[0].AmountCents != 15000 || req.Items[0].Currency != "GTQ" {
					t.Fatalf("unexpected checkout items: %+v", req.Items)
				}
				return session, nil
			})
		f.payments.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.State != entities.PaymentStatePending || p.OrderCode != "ABC12" {
					t.Fatalf("unexpected payment record: %+v", p)
				}
				if p.Info["checkout_id"] != "ch_1" {
					t.Fatalf("expected checkout id stored, got %v", p.Info["checkout_id"])
				}
				return p, nil
			})
		f.host.EXPECT().LogAction(gomock.Any(), "ABC12", "recurrente.checkout.created", gomock.Any()).Return(nil)

		start, err := f.uc.CreateCheckout(ctx, "acme", "conf", "ABC12", urls)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if start.CheckoutID != "ch_1" || start.CheckoutURL != "https://pay/ch_1" || start.PaymentID == "" {
			t.Fatalf("unexpected start: %+v", start)
		}
	})

	t.Run("user upsert failure only loses the prefill", func(t *testing.T) {
		f := newCheckoutFixture(t)
		session := entities.CheckoutSession{ID: "ch_1", CheckoutURL: "https://pay/ch_1", Status: "pending"}

		f.settings.EXPECT().GetEventSettings(gomock.Any(), "acme", "conf").Return(configuredSettings, nil)
		f.orders.EXPECT().GetByCode(gomock.Any(), "acme", "conf", "ABC12").Return(order, nil)
		f.gateway.EXPECT().UpsertUser(gomock.Any(), configuredSettings, "jane.doe@example.com", "Jane Doe").
			Return("", errors.New("gateway 500"))
		f.gateway.EXPECT().CreateCheckout(gomock.Any(), configuredSettings, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ entities.EventSettings, req entities.CheckoutRequest) (entities.CheckoutSession, error) {
				if req.UserID != "" {
					t.Fatalf("expected no user id after failed upsert, got %q", req.UserID)
				}
				return session, nil
			})
		f.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) { return p, nil })
		f.host.EXPECT().LogAction(gomock.Any(), "ABC12", "recurrente.checkout.created", gomock.Any()).Return(nil)

		if _, err := f.uc.CreateCheckout(ctx, "acme", "conf", "ABC12", urls); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestCheckoutUseCase_UpdatePaymentStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed payment short-circuits", func(t *testing.T) {
		f := newCheckoutFixture(t)
		p := recurrentePayment("p1", entities.PaymentStateConfirmed, nil)
		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(p, nil)

		got, err := f.uc.UpdatePaymentStatus(ctx, "acme", "conf", "", "", "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.State != entities.PaymentStateConfirmed {
			t.Fatalf("expected confirmed, got %s", got.State)
		}
	})

	t.Run("no checkout id means nothing to poll", func(t *testing.T) {
		f := newCheckoutFixture(t)
		p := recurrentePayment("p1", entities.PaymentStatePending, nil)
		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(p, nil)

		got, err := f.uc.UpdatePaymentStatus(ctx, "acme", "conf", "", "", "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.State != entities.PaymentStatePending {
			t.Fatalf("expected pending untouched, got %s", got.State)
		}
	})

	t.Run("paid checkout confirms the payment", func(t *testing.T) {
		f := newCheckoutFixture(t)
		p := recurrentePayment("p1", entities.PaymentStatePending, map[string]any{"checkout_id": "ch_1"})
		lockKey := confirmLockPrefix + "p1"
		checkout := map[string]any{"id": "ch_1", "status": "paid", "metadata": map[string]any{"order_code": "ABC12", "payment_id": "p1"}}

		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(p, nil)
		f.settings.EXPECT().GetEventSettings(gomock.Any(), "acme", "conf").Return(configuredSettings, nil)
		f.gateway.EXPECT().GetCheckout(gomock.Any(), configuredSettings, "ch_1").Return(checkout, nil)
		f.payments.EXPECT().UpdateInfo(gomock.Any(), "p1", gomock.Any()).Return(p, nil)
		f.cache.EXPECT().SetIfAbsent(gomock.Any(), lockKey, "locked", confirmLockTTL).Return(true, nil)
		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(p, nil)
		f.payments.EXPECT().UpdateInfo(gomock.Any(), "p1", gomock.Any()).Return(p, nil)
		confirmed := p
		confirmed.State = entities.PaymentStateConfirmed
		f.host.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).Return(confirmed, nil)
		f.host.EXPECT().LogAction(gomock.Any(), "ABC12", actionPaymentConfirmed, gomock.Any()).Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), lockKey).Return(nil)
		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(confirmed, nil)

		got, err := f.uc.UpdatePaymentStatus(ctx, "acme", "conf", "", "", "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.State != entities.PaymentStateConfirmed {
			t.Fatalf("expected confirmed after refresh, got %s", got.State)
		}
	})

	t.Run("expired checkout marks the payment failed", func(t *testing.T) {
		f := newCheckoutFixture(t)
		p := recurrentePayment("p1", entities.PaymentStatePending, map[string]any{"checkout_id": "ch_1"})
		checkout := map[string]any{"id": "ch_1", "status": "expired", "failure_reason": "checkout expired"}

		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(p, nil)
		f.settings.EXPECT().GetEventSettings(gomock.Any(), "acme", "conf").Return(configuredSettings, nil)
		f.gateway.EXPECT().GetCheckout(gomock.Any(), configuredSettings, "ch_1").Return(checkout, nil)
		f.payments.EXPECT().UpdateInfo(gomock.Any(), "p1", gomock.Any()).Return(p, nil)
		failed := p
		failed.State = entities.PaymentStateFailed
		f.host.EXPECT().FailPayment(gomock.Any(), gomock.Any(), true).
			DoAndReturn(func(_ context.Context, updated entities.Payment, _ bool) (entities.Payment, error) {
				if updated.Info["failure_reason"] != "checkout expired" {
					t.Fatalf("expected gateway failure reason, got %v", updated.Info["failure_reason"])
				}
				updated.State = entities.PaymentStateFailed
				return updated, nil
			})
		f.host.EXPECT().LogAction(gomock.Any(), "ABC12", actionPaymentFailed, gomock.Any()).Return(nil)
		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(failed, nil)

		got, err := f.uc.UpdatePaymentStatus(ctx, "acme", "conf", "", "", "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.State != entities.PaymentStateFailed {
			t.Fatalf("expected failed after refresh, got %s", got.State)
		}
	})
}

func TestCheckoutUseCase_GetPaymentStatus(t *testing.T) {
	ctx := context.Background()
	order := entities.Order{Code: "ABC12", Organizer: "acme", Event: "conf", Secret: "s3cret"}

	t.Run("order secret mismatch", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.orders.EXPECT().GetByCode(gomock.Any(), "acme", "conf", "ABC12").Return(order, nil)

		_, err := f.uc.GetPaymentStatus(ctx, "acme", "conf", "ABC12", "wrong")
		if !errors.Is(err, ErrOrderSecretMismatch) {
			t.Fatalf("expected ErrOrderSecretMismatch, got %v", err)
		}
	})

	t.Run("confirmed payment preferred over newer attempts", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.orders.EXPECT().GetByCode(gomock.Any(), "acme", "conf", "ABC12").Return(order, nil)
		f.payments.EXPECT().ListByOrderCode(gomock.Any(), "ABC12").Return([]entities.Payment{
			recurrentePayment("newest-pending", entities.PaymentStatePending, nil),
			recurrentePayment("older-confirmed", entities.PaymentStateConfirmed, nil),
		}, nil)

		got, err := f.uc.GetPaymentStatus(ctx, "acme", "conf", "ABC12", "s3cret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != "older-confirmed" {
			t.Fatalf("expected confirmed payment preferred, got %s", got.ID)
		}
	})

	t.Run("tenant mismatch by payment id", func(t *testing.T) {
		f := newCheckoutFixture(t)
		p := recurrentePayment("p1", entities.PaymentStatePending, nil)
		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(p, nil)

		_, err := f.uc.UpdatePaymentStatus(ctx, "other", "conf", "", "", "p1")
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})
}

func TestCheckoutUseCase_Refund(t *testing.T) {
	ctx := context.Background()

	t.Run("only confirmed payments refund", func(t *testing.T) {
		f := newCheckoutFixture(t)
		p := recurrentePayment("p1", entities.PaymentStatePending, nil)
		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(p, nil)

		_, err := f.uc.Refund(ctx, "acme", "conf", "p1", 0)
		if !errors.Is(err, ErrPaymentNotRefundable) {
			t.Fatalf("expected ErrPaymentNotRefundable, got %v", err)
		}
	})

	t.Run("tenant mismatch", func(t *testing.T) {
		f := newCheckoutFixture(t)
		p := recurrentePayment("p1", entities.PaymentStateConfirmed, nil)
		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(p, nil)

		_, err := f.uc.Refund(ctx, "other", "conf", "p1", 0)
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("full refund with clamped amount", func(t *testing.T) {
		f := newCheckoutFixture(t)
		p := recurrentePayment("p1", entities.PaymentStateConfirmed, map[string]any{"payment_id": "pa_1"})
		p.AmountCents = 15000

		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(p, nil)
		f.settings.EXPECT().GetEventSettings(gomock.Any(), "acme", "conf").Return(configuredSettings, nil)
		f.gateway.EXPECT().RefundPayment(gomock.Any(), configuredSettings, "pa_1", int64(15000)).
			Return(map[string]any{"id": "re_1", "status": "pending"}, nil)
		f.payments.EXPECT().UpdateInfo(gomock.Any(), "p1", gomock.Any()).
			DoAndReturn(func(_ context.Context, id string, info map[string]any) (entities.Payment, error) {
				if info["refund_id"] != "re_1" || info["refund_amount_cents"] != int64(15000) {
					t.Fatalf("refund metadata incomplete: %v", info)
				}
				p.Info = info
				return p, nil
			})
		f.host.EXPECT().LogAction(gomock.Any(), "ABC12", "recurrente.payment.refund_requested", gomock.Any()).Return(nil)

		got, err := f.uc.Refund(ctx, "acme", "conf", "p1", 99999)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Info["refund_status"] != "pending" {
			t.Fatalf("expected refund status stored, got %v", got.Info["refund_status"])
		}
	})
}
