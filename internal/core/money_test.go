package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{"12.344", 1234, true},
		{" 2.50 ", 250, true},
		{".5", 50, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"١٢", 0, false}, // non-ASCII digits
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestNormalizeAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"10.50", "10.5", true},
		{"10", "10", true},
		{"007.20", "7.2", true},
		{" 3.14 ", "3.14", true},
		{"0.1", "0.1", true},
		{"abc", "", false},
		{"-2", "", false},
	}
	for _, tc := range cases {
		got, err := NormalizeAmount(tc.in)
		if tc.ok && (err != nil || got != tc.out) {
			t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.out, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error, got %q", tc.in, got)
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	m := Money{Cents: 123450}
	if got := m.Format("en"); got != "1,234.50" {
		t.Fatalf("en: got %q", got)
	}
	if got := m.Format("not a locale!"); got != "1,234.50" {
		t.Fatalf("fallback: got %q", got)
	}
}
