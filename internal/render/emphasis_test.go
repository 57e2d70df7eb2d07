package render

import (
	"strings"
	"testing"
)

func TestEmphasize(t *testing.T) {
	bold := func(s string) string { return "<b>" + s + "</b>" }
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "sem destaque", "sem destaque"},
		{"single", "Corte **delivery** já", "Corte <b>delivery</b> já"},
		{"several", "**a** e **b**", "<b>a</b> e <b>b</b>"},
		{"unpaired", "**aberto sem fim", "**aberto sem fim"},
		{"empty span", "x****y", "x<b></b>y"},
		{"accents", "**Alimentação**: R$ 1.234,50", "<b>Alimentação</b>: R$ 1.234,50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Emphasize(tt.in, bold); got != tt.want {
				t.Errorf("Emphasize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTerminal(t *testing.T) {
	got := Terminal("Corte **delivery** já")
	if strings.Contains(got, "**") {
		t.Errorf("Terminal() = %q, markers should be gone", got)
	}
	if !strings.Contains(got, "delivery") || !strings.HasPrefix(got, "Corte ") || !strings.HasSuffix(got, " já") {
		t.Errorf("Terminal() = %q, text should survive", got)
	}
}

func TestStyledLines(t *testing.T) {
	if got := Insight("Bom **mês**", true); !strings.Contains(got, "+") || !strings.Contains(got, "mês") || strings.Contains(got, "**") {
		t.Errorf("Insight(positive) = %q", got)
	}
	if got := Insight("Lazer alto", false); !strings.Contains(got, "!") || !strings.Contains(got, "Lazer alto") {
		t.Errorf("Insight(attention) = %q", got)
	}
	if got := Error("falhou"); !strings.Contains(got, "falhou") {
		t.Errorf("Error() = %q", got)
	}
	if got := Muted("  pensando  "); !strings.Contains(got, "pensando") || strings.Contains(got, "  pensando") {
		t.Errorf("Muted() = %q", got)
	}
}
