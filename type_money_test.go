package stockbook

import "testing"

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		m    Money
		want string
	}{
		{M(14, "USD"), "$14.00"},
		{M(1234.5, "USD"), "$1,234.50"},
		{M(-90, "USD"), "-$90.00"},
		{M(0.005, "USD"), "$0.01"},
		{M(12.5, "XYZ"), "12.50 XYZ"},
		{M(12.5, ""), "12.50"},
	}
	for _, tc := range testCases {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("%v.String() = %q, want %q", tc.m.value, got, tc.want)
		}
	}
}

func TestMoney_Ratio(t *testing.T) {
	if got := USD(30).Ratio(USD(120)); !got.Equal(25) {
		t.Errorf("Ratio() = %v, want 25%%", got)
	}
	if got := USD(30).Ratio(USD(0)); got != 0 {
		t.Errorf("Ratio() by zero = %v, want 0", got)
	}
}

func TestMoney_CurrencyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Add() of two currencies did not panic")
		}
	}()
	USD(1).Add(M(1, "GTQ"))
}

func TestAmount_JSON(t *testing.T) {
	b, err := A(7.5).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(b) != "7.5" {
		t.Errorf("MarshalJSON() = %s, want 7.5", b)
	}
	var a Amount
	if err := a.UnmarshalJSON([]byte(`"12.25"`)); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if !a.Equal(A(12.25)) {
		t.Errorf("UnmarshalJSON() = %v, want 12.25", a)
	}
}
