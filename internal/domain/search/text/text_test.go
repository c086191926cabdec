package text

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"Alumni Hoodie", "alumni hoodie"},
		{"  Alumni   HOODIE  ", "alumni hoodie"},
		{"T-Shirt (XL)", "t shirt xl"},
		{"mug\t\n2024", "mug 2024"},
		{"café", "caf"},
		{"!!!", ""},
		{"a.b,c", "a b c"},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"", " ", "Alumni Hoodie", "DBHS—Class of '99", "ÀÉÎ õü", "x y", "--a--b--", "Ünïcödé  mixed 123",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  ", nil},
		{"Alumni Hoodie", []string{"alumni", "hoodie"}},
		{"heavy-weight, cotton!", []string{"heavy", "weight", "cotton"}},
	}
	for _, tc := range tests {
		if got := Tokenize(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Tokenize(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestJoin_SkipsEmptyParts(t *testing.T) {
	if got := Join("Alumni Mug", "", "Drinkware", ""); got != "alumni mug drinkware" {
		t.Errorf("Join = %q", got)
	}
	if got := Join("", ""); got != "" {
		t.Errorf("Join of empty parts = %q, want empty", got)
	}
}
