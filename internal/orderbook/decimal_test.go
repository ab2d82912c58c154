package orderbook

import "testing"

func TestDecimal_TruncatesToSignificantDigits(t *testing.T) {
	tests := []struct {
		name string
		in   string
		sig  uint64
		want float64
	}{
		{"exact_fits", "0.00555", 5, 0.00555},
		{"high_precision_roundtrip", "0.00000030003", 11, 0.00000030003},
		{"truncate_no_round", "123.456", 4, 123.4},
		{"integer_truncate", "123456", 3, 123000},
		{"negative_truncate", "-123.456", 4, -123.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDecimalFromString(tt.in, tt.sig)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := d.Float64()
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecimal_InvalidString(t *testing.T) {
	if _, err := NewDecimalFromString("not-a-number", 5); err == nil {
		t.Fatal("expected error for unparseable decimal")
	}
}

func TestDecimal_ZeroPrecisionRejected(t *testing.T) {
	if _, err := NewDecimalFromString("1.23", 0); err == nil {
		t.Fatal("expected error for zero precision")
	}
}

func TestDecimal_Sub(t *testing.T) {
	a, _ := NewDecimalFromString("0.00555", 5)
	b, _ := NewDecimalFromString("0.00551", 5)
	got := a.Sub(b).TruncateSignificant(5).Float64()
	want := 0.00004
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}
