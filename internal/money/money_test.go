package money

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Money
		wantErr bool
	}{
		{name: "integer", input: "1200", want: 120000},
		{name: "two_decimals", input: "1200.00", want: 120000},
		{name: "one_decimal", input: "89.9", want: 8990},
		{name: "comma_separator", input: "89,90", want: 8990},
		{name: "cents_only", input: "0.10", want: 10},
		{name: "bare_fraction", input: ".50", want: 50},
		{name: "negative", input: "-12.34", want: -1234},
		{name: "explicit_plus", input: "+5", want: 500},
		{name: "surrounding_space", input: " 42.00 ", want: 4200},
		{name: "zero", input: "0", want: 0},
		{name: "three_decimals", input: "89.999", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "sign_only", input: "-", wantErr: true},
		{name: "separator_only", input: ".", wantErr: true},
		{name: "letters", input: "abc", wantErr: true},
		{name: "two_separators", input: "1.2.3", wantErr: true},
		{name: "overflow", input: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		amount Money
		want   string
	}{
		{120000, "1200.00"},
		{8990, "89.90"},
		{10, "0.10"},
		{5, "0.05"},
		{0, "0.00"},
		{-1234, "-12.34"},
	}

	for _, tt := range tests {
		if got := tt.amount.String(); got != tt.want {
			t.Errorf("Money(%d).String() = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestJSON(t *testing.T) {
	t.Run("marshals_as_plain_number", func(t *testing.T) {
		b, err := json.Marshal(Money(8990))
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(b) != "89.90" {
			t.Errorf("expected 89.90, got %s", b)
		}
	})

	t.Run("unmarshals_number", func(t *testing.T) {
		var m Money
		if err := json.Unmarshal([]byte("1200.00"), &m); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if m != 120000 {
			t.Errorf("expected 120000 cents, got %d", m)
		}
	})

	t.Run("unmarshals_quoted_string", func(t *testing.T) {
		var m Money
		if err := json.Unmarshal([]byte(`"89,90"`), &m); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if m != 8990 {
			t.Errorf("expected 8990 cents, got %d", m)
		}
	})

	t.Run("rejects_excess_precision", func(t *testing.T) {
		var m Money
		if err := json.Unmarshal([]byte("89.999"), &m); err == nil {
			t.Error("expected error for three decimals")
		}
	})

	t.Run("round_trip_is_exact", func(t *testing.T) {
		for _, amount := range []Money{10, 8990, 120000, -1234} {
			b, err := json.Marshal(amount)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			var back Money
			if err := json.Unmarshal(b, &back); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if back != amount {
				t.Errorf("round trip changed %d to %d", amount, back)
			}
		}
	})
}
