package validation

import (
	"errors"
	"strings"
	"testing"

	"utfpr.edu.br/menfin/internal/store"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name  string
		value string
		v     []Validator
		want  string
	}{
		{"required blank", "   ", []Validator{Required}, MsgRequired},
		{"required ok", "x", []Validator{Required}, ""},
		{"email bad", "maria@", []Validator{Required, Email}, MsgInvalidEmail},
		{"email ok", "maria@example.com", []Validator{Required, Email}, ""},
		{"letters only accents", "joão", []Validator{LettersOnly}, ""},
		{"letters only digit", "joao1", []Validator{LettersOnly}, MsgLettersOnly},
		{"min length", "abc1", []Validator{MinLength(8)}, "Mínimo de 8 caracteres"},
		{"password letters only", "abcdefgh", []Validator{MinLength(8), PasswordComplexity}, MsgPasswordLetterNum},
		{"password ok", "abcdefg1", []Validator{MinLength(8), PasswordComplexity}, ""},
		{"max bytes at limit", strings.Repeat("a", 72), []Validator{MaxBytes(72)}, ""},
		{"max bytes over", strings.Repeat("a", 73), []Validator{MaxBytes(72)}, "Máximo de 72 caracteres"},
		{"money sub-cent", "0,004", []Validator{Required, Money, GreaterThanZero}, MsgGreaterThanZero},
		{"money bad", "12,3,4x", []Validator{Required, Money, GreaterThanZero}, MsgInvalidMoney},
		{"money zero", "0,00", []Validator{Required, Money, GreaterThanZero}, MsgGreaterThanZero},
		{"money ok", "R$ 1.234,56", []Validator{Required, Money, GreaterThanZero}, ""},
		{"date bad", "31/02/2025", []Validator{Required, Date}, MsgInvalidDate},
		{"date ok", "28/02/2025", []Validator{Required, Date}, ""},
		{"first failure wins", "", []Validator{Required, Email}, MsgRequired},
		{"enum bad", "MAYBE", []Validator{OneOf(store.ParseYesNo)}, MsgInvalidOption},
		{"enum label", "Sim", []Validator{OneOf(store.ParseYesNo)}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Run(tt.value, tt.v...); got != tt.want {
				t.Errorf("Run(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	var errs Errors
	if errs.Err() != nil {
		t.Fatal("empty Errors should not be an error")
	}

	errs.Check("name", "", Required)
	errs.Check("email", "bad", Required, Email)
	errs.Check("username", "maria", Required, LettersOnly)
	errs.Add("name", "ignored")

	err := errs.Err()
	var verr *Errors
	if !errors.As(err, &verr) {
		t.Fatalf("Err() = %v, want *Errors", err)
	}
	if len(verr.Fields) != 2 {
		t.Errorf("Fields = %v, want 2 entries", verr.Fields)
	}
	if verr.Fields["name"] != MsgRequired {
		t.Errorf("first message should be kept, got %q", verr.Fields["name"])
	}
	if got, want := err.Error(), "validation failed: email: E-mail inválido; name: Campo obrigatório"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
