package royalty

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyString(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{M(1234.56, "BRL"), "R$1.234,56"},
		{M(10, "USD"), "$10.00"},
		{M(decimal.RequireFromString("1.005"), ""), "1.01"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Money.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMoneyShare(t *testing.T) {
	total := M(1000, "BRL")
	if got := total.Share(50); !got.Equal(M(500, "BRL")) {
		t.Errorf("Share(50) = %v, want 500", got.Decimal())
	}
	// 50% of 60% of 1000
	if got := total.Share(Percent(50).Of(60)); !got.Decimal().Equal(decimal.NewFromInt(300)) {
		t.Errorf("Share(30) = %v, want 300", got.Decimal())
	}
	if got := M(300, "BRL").Ratio(total); !got.Equal(30) {
		t.Errorf("Ratio() = %v, want 30%%", got)
	}
	if got := total.Ratio(M(0, "BRL")); got != 0 {
		t.Errorf("Ratio(0) = %v, want 0", got)
	}
}

func TestSum(t *testing.T) {
	got := Sum("BRL", M(0.1, "BRL"), M(0.2, "BRL"), M(0.3, ""))
	if !got.Decimal().Equal(decimal.RequireFromString("0.6")) {
		t.Errorf("Sum() = %v, want exactly 0.6", got.Decimal())
	}
	if got.Currency() != "BRL" {
		t.Errorf("Sum().Currency() = %q, want BRL", got.Currency())
	}
}

func TestCurrencyMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("adding BRL to USD should panic")
		}
	}()
	M(1, "BRL").Add(M(1, "USD"))
}
