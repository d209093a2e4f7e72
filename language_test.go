package awekas

import "testing"

func TestResolveRequestLanguage(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"de", "de"},
		{"de-AT", "de"},
		{"en-GB", "en"},
		{"fr", "fr"},
		{"es-MX", "es"},
		{"nl-BE", "nl"},
		{"it", "en"}, // labels only
		{"ja", "en"},
		{"gl", "en"},
		{"af", "en"},
		{"fy", "en"},
		{"lb", "en"},
		{"ca", "en"},
		{"de-CH", "de"},
		{"fr-CA", "fr"},
		{"", "en"},
		{"not a tag", "en"},
		{"  de  ", "de"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := ResolveRequestLanguage(tt.tag); got != tt.want {
				t.Errorf("ResolveRequestLanguage(%q) = %q, want %q", tt.tag, got, tt.want)
			}
		})
	}
}

func TestResolveLabelLanguage(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"it", "it"},
		{"it-CH", "it"},
		{"de", "de"},
		{"nl", "nl"},
		{"pt", "en"},
		{"gl", "en"},
		{"af", "en"},
		{"lb", "en"},
		{"sc", "en"},
		{"de-AT", "de"},
		{"", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := ResolveLabelLanguage(tt.tag); got != tt.want {
				t.Errorf("ResolveLabelLanguage(%q) = %q, want %q", tt.tag, got, tt.want)
			}
		})
	}
}

func TestSystemLanguage(t *testing.T) {
	tests := []struct {
		name       string
		lcAll      string
		lcMessages string
		lang       string
		want       string
	}{
		{"LANG only", "", "", "de_AT.UTF-8", "de-AT"},
		{"LC_ALL wins", "fr_FR.UTF-8", "es_ES", "de_DE", "fr-FR"},
		{"LC_MESSAGES before LANG", "", "nl_NL@euro", "de_DE", "nl-NL"},
		{"C locale skipped", "C", "", "it_IT.UTF-8", "it-IT"},
		{"POSIX only", "", "", "POSIX", ""},
		{"unset", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LC_ALL", tt.lcAll)
			t.Setenv("LC_MESSAGES", tt.lcMessages)
			t.Setenv("LANG", tt.lang)

			if got := SystemLanguage(); got != tt.want {
				t.Errorf("SystemLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}
