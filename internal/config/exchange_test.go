package config

import "testing"

func TestResolveExchangeKeys(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "abc")
	t.Setenv("BINANCE_API_SECRET", "")
	t.Setenv("BINANCE_API_PASSWORD", "")

	keys := ResolveExchangeKeys("binance")

	want := ExchangeKeys{APIKey: "abc", APISecret: "", APIPassword: ""}
	if keys != want {
		t.Errorf("ResolveExchangeKeys: got %+v, want %+v", keys, want)
	}
}

func TestResolveExchangeKeys_CaseInsensitive(t *testing.T) {
	t.Setenv("KRAKEN_API_KEY", "k")
	t.Setenv("KRAKEN_API_SECRET", "s")
	t.Setenv("KRAKEN_API_PASSWORD", "p")

	for _, name := range []string{"kraken", "Kraken", "KRAKEN", "  kraken  "} {
		keys := ResolveExchangeKeys(name)
		if keys.APIKey != "k" || keys.APISecret != "s" || keys.APIPassword != "p" {
			t.Errorf("ResolveExchangeKeys(%q): got %+v", name, keys)
		}
	}
}

func TestResolveExchangeKeys_UnsetVariables(t *testing.T) {
	keys := ResolveExchangeKeys("no-such-exchange")
	if keys != (ExchangeKeys{}) {
		t.Errorf("expected empty keys, got %+v", keys)
	}
}
