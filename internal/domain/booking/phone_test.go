package booking

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"07123456789", "07123456789"},
		{"0712-345 6789", "07123456789"},
		{"(0712) 345-6789", "07123456789"},
		{"+44 7123 456789", "447123456789"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	if !IsValidPhone("07123456789") {
		t.Error("expected 11 digit number to be valid")
	}
	if IsValidPhone("0712345678") {
		t.Error("expected 10 digit number to be invalid")
	}
	if IsValidPhone("071234567890") {
		t.Error("expected 12 digit number to be invalid")
	}
}

func TestNormalizedPhoneRoundTrip(t *testing.T) {
	got, err := normalizedPhone("0712-345 6789")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "07123456789" {
		t.Errorf("normalizedPhone = %q, want %q", got, "07123456789")
	}

	if _, err := normalizedPhone("123"); err != ErrInvalidPhone {
		t.Errorf("expected ErrInvalidPhone, got %v", err)
	}
}
