package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ticketing_recurrente/internal/domain/entities"
	"ticketing_recurrente/internal/usecase/interfaces"
	mock_interfaces "ticketing_recurrente/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type confirmerFixture struct {
	payments *mock_interfaces.MockIPaymentRepository
	host     *mock_interfaces.MockIOrderService
	cache    *mock_interfaces.MockICache
	c        *PaymentConfirmer
}

func newConfirmerFixture(t *testing.T) confirmerFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
	host := mock_interfaces.NewMockIOrderService(ctrl)
	cache := mock_interfaces.NewMockICache(ctrl)

	c := NewPaymentConfirmer(payments, host, cache)
	c.sleep = func(time.Duration) {}
	c.now = func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) }

	return confirmerFixture{payments: payments, host: host, cache: cache, c: c}
}

// memoryCache is a mutex-backed ICache with real set-if-absent semantics,
// for tests that race goroutines against the confirmation lock. TTLs are
// ignored; entries live until deleted.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]string{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *memoryCache) SetIfAbsent(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; ok {
		return false, nil
	}
	m.entries[key] = value
	return true, nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func TestPaymentConfirmer_Confirm(t *testing.T) {
	ctx := context.Background()
	ev := entities.NotificationEvent{
		EventType:         "payment_intent.succeeded",
		CheckoutID:        "ch_1",
		ExternalPaymentID: "pa_1",
		AmountCents:       15000,
		Currency:          "GTQ",
	}

	t.Run("already confirmed is idempotent", func(t *testing.T) {
		f := newConfirmerFixture(t)
		p := recurrentePayment("p1", entities.PaymentStateConfirmed, nil)

		if err := f.c.Confirm(ctx, p, ev); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("terminal failure state is not confirmable", func(t *testing.T) {
		f := newConfirmerFixture(t)
		p := recurrentePayment("p1", entities.PaymentStateCanceled, nil)

		err := f.c.Confirm(ctx, p, ev)
		if !errors.Is(err, ErrNotConfirmable) {
			t.Fatalf("expected ErrNotConfirmable, got %v", err)
		}
	})

	t.Run("confirms under lock and releases it", func(t *testing.T) {
		f := newConfirmerFixture(t)
		p := recurrentePayment("p1", entities.PaymentStatePending, nil)
		lockKey := confirmLockPrefix + "p1"

		f.cache.EXPECT().SetIfAbsent(gomock.Any(), lockKey, "locked", confirmLockTTL).Return(true, nil)
		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(p, nil)
		f.payments.EXPECT().UpdateInfo(gomock.Any(), "p1", gomock.Any()).
			DoAndReturn(func(_ context.Context, id string, info map[string]any) (entities.Payment, error) {
				if info["payment_status"] != "completed" {
					t.Fatalf("expected payment_status completed, got %v", info["payment_status"])
				}
				if info["checkout_id"] != "ch_1" || info["payment_id"] != "pa_1" {
					t.Fatalf("gateway ids not merged: %v", info)
				}
				return p, nil
			})
		confirmed := p
		confirmed.State = entities.PaymentStateConfirmed
		f.host.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).Return(confirmed, nil)
		f.host.EXPECT().LogAction(gomock.Any(), "ABC12", actionPaymentConfirmed, gomock.Any()).Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), lockKey).Return(nil)

		if err := f.c.Confirm(ctx, p, ev); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("contended lock resolved by concurrent delivery", func(t *testing.T) {
		f := newConfirmerFixture(t)
		p := recurrentePayment("p1", entities.PaymentStatePending, nil)

		f.cache.EXPECT().SetIfAbsent(gomock.Any(), gomock.Any(), "locked", gomock.Any()).Return(false, nil)
		fresh := p
		fresh.State = entities.PaymentStateConfirmed
		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(fresh, nil)

		if err := f.c.Confirm(ctx, p, ev); err != nil {
			t.Fatalf("expected success once concurrent delivery confirmed, got %v", err)
		}
	})

	t.Run("contended lock still unresolved", func(t *testing.T) {
		f := newConfirmerFixture(t)
		p := recurrentePayment("p1", entities.PaymentStatePending, nil)

		f.cache.EXPECT().SetIfAbsent(gomock.Any(), gomock.Any(), "locked", gomock.Any()).Return(false, nil)
		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(p, nil)

		err := f.c.Confirm(ctx, p, ev)
		if !errors.Is(err, ErrConfirmContended) {
			t.Fatalf("expected ErrConfirmContended, got %v", err)
		}
	})

	t.Run("re-read under lock sees confirmed", func(t *testing.T) {
		f := newConfirmerFixture(t)
		p := recurrentePayment("p1", entities.PaymentStatePending, nil)
		lockKey := confirmLockPrefix + "p1"

		f.cache.EXPECT().SetIfAbsent(gomock.Any(), lockKey, "locked", gomock.Any()).Return(true, nil)
		fresh := p
		fresh.State = entities.PaymentStateConfirmed
		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(fresh, nil)
		f.cache.EXPECT().Delete(gomock.Any(), lockKey).Return(nil)

		if err := f.c.Confirm(ctx, p, ev); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("quota exhaustion records reason and releases lock", func(t *testing.T) {
		f := newConfirmerFixture(t)
		p := recurrentePayment("p1", entities.PaymentStatePending, nil)
		lockKey := confirmLockPrefix + "p1"

		f.cache.EXPECT().SetIfAbsent(gomock.Any(), lockKey, "locked", gomock.Any()).Return(true, nil)
		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(p, nil)
		first := f.payments.EXPECT().UpdateInfo(gomock.Any(), "p1", gomock.Any()).Return(p, nil)
		f.host.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).Return(entities.Payment{}, interfaces.ErrQuotaExceeded)
		f.payments.EXPECT().UpdateInfo(gomock.Any(), "p1", gomock.Any()).After(first).
			DoAndReturn(func(_ context.Context, id string, info map[string]any) (entities.Payment, error) {
				if info["failure_reason"] != "ticket quota exceeded" {
					t.Fatalf("expected quota failure reason, got %v", info["failure_reason"])
				}
				return p, nil
			})
		f.cache.EXPECT().Delete(gomock.Any(), lockKey).Return(nil)

		err := f.c.Confirm(ctx, p, ev)
		if !errors.Is(err, interfaces.ErrQuotaExceeded) {
			t.Fatalf("expected ErrQuotaExceeded, got %v", err)
		}
	})

	t.Run("concurrent deliveries confirm once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)

		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		host := mock_interfaces.NewMockIOrderService(ctrl)

		var mu sync.Mutex
		record := recurrentePayment("p1", entities.PaymentStatePending, nil)
		confirmedCh := make(chan struct{})

		c := NewPaymentConfirmer(payments, host, newMemoryCache())
		c.now = func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) }
		// The lock loser waits for the winner instead of a wall-clock nap, so
		// the race resolves deterministically.
		c.sleep = func(time.Duration) { <-confirmedCh }

		payments.EXPECT().GetByID(gomock.Any(), "p1").
			DoAndReturn(func(context.Context, string) (entities.Payment, error) {
				mu.Lock()
				defer mu.Unlock()
				return record, nil
			}).AnyTimes()
		payments.EXPECT().UpdateInfo(gomock.Any(), "p1", gomock.Any()).
			DoAndReturn(func(context.Context, string, map[string]any) (entities.Payment, error) {
				mu.Lock()
				defer mu.Unlock()
				return record, nil
			}).AnyTimes()
		host.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, entities.Payment) (entities.Payment, error) {
				mu.Lock()
				record.State = entities.PaymentStateConfirmed
				out := record
				mu.Unlock()
				close(confirmedCh)
				return out, nil
			})
		host.EXPECT().LogAction(gomock.Any(), "ABC12", actionPaymentConfirmed, gomock.Any()).Return(nil)

		pending := record
		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = c.Confirm(ctx, pending, ev)
			}(i)
		}
		wg.Wait()

		for i, err := range errs {
			if err != nil {
				t.Fatalf("delivery %d failed: %v", i, err)
			}
		}
		mu.Lock()
		finalState := record.State
		mu.Unlock()
		if finalState != entities.PaymentStateConfirmed {
			t.Fatalf("expected confirmed, got %s", finalState)
		}
	})

	t.Run("lock released when host fails", func(t *testing.T) {
		f := newConfirmerFixture(t)
		p := recurrentePayment("p1", entities.PaymentStatePending, nil)
		lockKey := confirmLockPrefix + "p1"
		hostErr := errors.New("dynamodb unavailable")

		f.cache.EXPECT().SetIfAbsent(gomock.Any(), lockKey, "locked", gomock.Any()).Return(true, nil)
		f.payments.EXPECT().GetByID(gomock.Any(), "p1").Return(p, nil)
		f.payments.EXPECT().UpdateInfo(gomock.Any(), "p1", gomock.Any()).Return(p, nil)
		f.host.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).Return(entities.Payment{}, hostErr)
		f.cache.EXPECT().Delete(gomock.Any(), lockKey).Return(nil)

		if err := f.c.Confirm(ctx, p, ev); !errors.Is(err, hostErr) {
			t.Fatalf("expected host error, got %v", err)
		}
	})
}

func TestPaymentConfirmer_Fail(t *testing.T) {
	ctx := context.Background()
	ev := entities.NotificationEvent{EventType: "payment_intent.payment_failed", CheckoutID: "ch_1"}

	t.Run("already failed is idempotent", func(t *testing.T) {
		f := newConfirmerFixture(t)
		p := recurrentePayment("p1", entities.PaymentStateFailed, nil)

		if err := f.c.Fail(ctx, p, ev, "card declined"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("confirmed payment absorbs the failure", func(t *testing.T) {
		f := newConfirmerFixture(t)
		p := recurrentePayment("p1", entities.PaymentStateConfirmed, nil)

		if err := f.c.Fail(ctx, p, ev, "card declined"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("marks pending payment failed", func(t *testing.T) {
		f := newConfirmerFixture(t)
		p := recurrentePayment("p1", entities.PaymentStatePending, nil)

		f.host.EXPECT().FailPayment(gomock.Any(), gomock.Any(), true).
			DoAndReturn(func(_ context.Context, updated entities.Payment, _ bool) (entities.Payment, error) {
				if updated.Info["failure_reason"] != "card declined" {
					t.Fatalf("expected failure reason, got %v", updated.Info["failure_reason"])
				}
				if updated.Info["checkout_id"] != "ch_1" {
					t.Fatalf("expected checkout id carried over, got %v", updated.Info["checkout_id"])
				}
				updated.State = entities.PaymentStateFailed
				return updated, nil
			})
		f.host.EXPECT().LogAction(gomock.Any(), "ABC12", actionPaymentFailed, gomock.Any()).Return(nil)

		if err := f.c.Fail(ctx, p, ev, "card declined"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("empty reason gets a default", func(t *testing.T) {
		f := newConfirmerFixture(t)
		p := recurrentePayment("p1", entities.PaymentStatePending, nil)

		f.host.EXPECT().FailPayment(gomock.Any(), gomock.Any(), true).
			DoAndReturn(func(_ context.Context, updated entities.Payment, _ bool) (entities.Payment, error) {
				if updated.Info["failure_reason"] != "payment not completed" {
					t.Fatalf("expected default reason, got %v", updated.Info["failure_reason"])
				}
				return updated, nil
			})
		f.host.EXPECT().LogAction(gomock.Any(), gomock.Any(), actionPaymentFailed, gomock.Any()).Return(nil)

		if err := f.c.Fail(ctx, p, ev, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
