package gallery

import (
	"testing"
	"time"
	"unicode"
	"unicode/utf8"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Test Image", "My_Test_Image"},
		{"already-safe_name", "already-safe_name"},
		{"Çiçek 2024", "Çiçek_2024"},
		{"a/b\\c", "a_b_c"},
		{"../../etc/passwd", "______etc_passwd"},
		{"price: 10€!", "price__10__"},
		{"", ""},
		{"日本語", "日本語"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeProperties(t *testing.T) {
	inputs := []string{
		"hello world",
		"emoji 🎨 art",
		"tabs\tand\nnewlines",
		"mixed-ÄÖÜ_123 !@#$%^&*()",
		"١٢٣ arabic digits",
		"    ",
	}
	for _, in := range inputs {
		got := Sanitize(in)
		if utf8.RuneCountInString(got) != utf8.RuneCountInString(in) {
			t.Errorf("Sanitize(%q) changed length: %d -> %d", in,
				utf8.RuneCountInString(in), utf8.RuneCountInString(got))
		}
		for _, r := range got {
			if !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '_' && r != '-' {
				t.Errorf("Sanitize(%q) = %q contains %q", in, got, r)
			}
		}
		if again := Sanitize(in); again != got {
			t.Errorf("Sanitize(%q) not deterministic: %q vs %q", in, got, again)
		}
	}
}

func TestNewFilename(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	got := NewFilename("My Test Image", now)
	want := "My_Test_Image-1700000000123.png"
	if got != want {
		t.Fatalf("NewFilename = %q, want %q", got, want)
	}
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"img_one-12345.png", "img one"},
		{"My_Test_Image-1700000000123.png", "My Test Image"},
		{"plain.png", "plain.png"},
		{"dash-name-99.png", "dash-name"},
		{"no_digits-.png", "no digits-.png"},
	}
	for _, tt := range tests {
		if got := DeriveTitle(tt.in); got != tt.want {
			t.Errorf("DeriveTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPriceFormatting(t *testing.T) {
	if got := FormatPrice("100"); got != "100 €" {
		t.Errorf("FormatPrice = %q", got)
	}
	if got := FormatPrice(""); got != " €" {
		t.Errorf("FormatPrice(empty) = %q", got)
	}

	clean := []struct {
		in   string
		want string
	}{
		{"100 €", "100"},
		{"100€", "100"},
		{"100", "100"},
		{"€", ""},
		{"", ""},
		{"€ 100", "€ 100"},
	}
	for _, tt := range clean {
		if got := CleanPrice(tt.in); got != tt.want {
			t.Errorf("CleanPrice(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidFilename(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"cat-123.png", true},
		{"plain", true},
		{"", false},
		{".", false},
		{"..", false},
		{"meta.json", false},
		{"../secret.png", false},
		{"sub/dir.png", false},
		{`win\path.png`, false},
	}
	for _, tt := range tests {
		if got := ValidFilename(tt.in); got != tt.want {
			t.Errorf("ValidFilename(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCreatedAt(t *testing.T) {
	got, ok := CreatedAt("cat-1700000000123.png")
	if !ok {
		t.Fatal("CreatedAt reported no timestamp")
	}
	if got.UnixMilli() != 1700000000123 {
		t.Errorf("CreatedAt = %v", got)
	}
	if _, ok := CreatedAt("plain.png"); ok {
		t.Error("CreatedAt(plain.png) should report false")
	}
}
