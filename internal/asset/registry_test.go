package asset

import "testing"

func TestResolve(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name       string
		identifier string
		wantSymbol string
	}{
		{"sac contract id", ContractUSDC, "USDC"},
		{"classic issuer", IssuerEURC, "EURC"},
		{"bare symbol", "XLM", "XLM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := r.Resolve(tt.identifier)
			if a.Symbol != tt.wantSymbol {
				t.Errorf("Resolve(%s).Symbol = %s, want %s", tt.identifier, a.Symbol, tt.wantSymbol)
			}
		})
	}
}

func TestResolveUnknownKeepsBalance(t *testing.T) {
	r := DefaultRegistry()

	a := r.Resolve("CAUNKNOWNTOKENCONTRACTIDXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX")
	if a == nil {
		t.Fatal("Resolve returned nil for unknown identifier")
	}
	if a.Name != "Unknown Token" {
		t.Errorf("Name = %s, want Unknown Token", a.Name)
	}
	if a.Symbol == "" {
		t.Error("placeholder symbol is empty")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()

	r := DefaultRegistry()
	r.Register(XLM)
}

func TestFallbackPrices(t *testing.T) {
	if !USDC.FallbackUSD.Equal(USDC.FallbackUSD.Round(0)) || USDC.FallbackUSD.String() != "1" {
		t.Errorf("USDC fallback = %s, want 1", USDC.FallbackUSD)
	}
	if XLM.FallbackUSD.String() != "0.12" {
		t.Errorf("XLM fallback = %s, want 0.12", XLM.FallbackUSD)
	}
	if EURC.FallbackUSD.String() != "1.08" {
		t.Errorf("EURC fallback = %s, want 1.08", EURC.FallbackUSD)
	}
}
