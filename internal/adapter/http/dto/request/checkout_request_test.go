package request

import "testing"

func TestCreateCheckoutRequest_ResolveOrderCode(t *testing.T) {
	r := CreateCheckoutRequest{OrderCode: " abc12 "}
	if got := r.ResolveOrderCode(); got != "ABC12" {
		t.Fatalf("expected ABC12, got %q", got)
	}

	r2 := CreateCheckoutRequest{OrderCode: "   "}
	if got := r2.ResolveOrderCode(); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestPaymentStatusRequest_HasReference(t *testing.T) {
	cases := []struct {
		name string
		r    PaymentStatusRequest
		want bool
	}{
		{"payment id alone", PaymentStatusRequest{PaymentID: "p1"}, true},
		{"order code with secret", PaymentStatusRequest{OrderCode: "abc12", OrderSecret: "s3cret"}, true},
		{"order code without secret", PaymentStatusRequest{OrderCode: "abc12"}, false},
		{"secret without order code", PaymentStatusRequest{OrderSecret: "s3cret"}, false},
		{"blank payment id", PaymentStatusRequest{PaymentID: "   "}, false},
		{"empty", PaymentStatusRequest{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.HasReference(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
