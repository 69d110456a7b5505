package validate

import (
	"strings"
	"testing"

	"github.com/opsgate/opsgate/internal/errors"
)

func TestDomainValidate(t *testing.T) {
	tests := []struct {
		name     string
		wildcard bool
		input    string
		want     string
		wantCode errors.Code
	}{
		{
			name:  "plain domain",
			input: "example.com",
			want:  "example.com",
		},
		{
			name:  "subdomain",
			input: "sub.example.com",
			want:  "sub.example.com",
		},
		{
			name:  "uppercase is normalized",
			input: "Example.COM",
			want:  "example.com",
		},
		{
			name:  "internationalized domain is encoded",
			input: "münchen.de",
			want:  "xn--mnchen-3ya.de",
		},
		{
			name:  "hyphenated labels",
			input: "my-site.co.uk",
			want:  "my-site.co.uk",
		},
		{
			name:     "wildcard preserved in output",
			wildcard: true,
			input:    "*.example.com",
			want:     "*.example.com",
		},
		{
			name:     "wildcard mode still accepts plain domains",
			wildcard: true,
			input:    "example.com",
			want:     "example.com",
		},
		{
			name:     "wildcard rejected when disabled",
			input:    "*.example.com",
			wantCode: errors.CodeInvalidShape,
		},
		{
			name:     "label of 64 characters",
			input:    strings.Repeat("a", 64) + ".com",
			wantCode: errors.CodeLabelTooLong,
		},
		{
			name:  "label of 63 characters is fine",
			input: strings.Repeat("a", 63) + ".com",
			want:  strings.Repeat("a", 63) + ".com",
		},
		{
			name: "total length over 255",
			input: strings.Repeat(strings.Repeat("a", 62)+".", 5) +
				"com",
			wantCode: errors.CodeDomainTooLong,
		},
		{
			name:     "consecutive dots",
			input:    "foo..example.com",
			wantCode: errors.CodeInvalidShape,
		},
		{
			name:     "leading dot",
			input:    ".example.com",
			wantCode: errors.CodeInvalidShape,
		},
		{
			name:     "trailing dot",
			input:    "example.com.",
			wantCode: errors.CodeInvalidShape,
		},
		{
			name:     "label starting with hyphen",
			input:    "-foo.example.com",
			wantCode: errors.CodeInvalidShape,
		},
		{
			name:     "label ending with hyphen",
			input:    "foo-.example.com",
			wantCode: errors.CodeInvalidShape,
		},
		{
			name:     "underscore",
			input:    "foo_bar.example.com",
			wantCode: errors.CodeInvalidShape,
		},
		{
			name:     "unrecognized top-level label",
			input:    "example.invalidtld",
			wantCode: errors.CodeInvalidSuffix,
		},
		{
			name:     "empty input",
			input:    "",
			wantCode: errors.CodeInvalidShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewDomain(tt.wildcard)

			got, err := v.Validate(tt.input)
			if tt.wantCode != "" {
				if err == nil {
					t.Fatalf("Validate(%q) = %v, want code %s", tt.input, got, tt.wantCode)
				}
				if !errors.HasCode(err, tt.wantCode) {
					t.Errorf("Validate(%q) error = %v, want code %s", tt.input, err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Validate(%q) = %v, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// The wildcard prefix must be stripped for the structural checks but kept
// in the returned value, so a 63-character leftmost label stays legal even
// with the prefix in front of it.
func TestDomainWildcardChecksRunOnStrippedValue(t *testing.T) {
	v := NewDomain(true)

	label := strings.Repeat("a", 63)
	got, err := v.Validate("*." + label + ".com")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got != "*."+label+".com" {
		t.Errorf("Validate() = %v, want wildcard prefix preserved", got)
	}
}
