package funnel

import "testing"

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
		ok      bool
	}{
		{"plain address", "reach me at a.b@example.co", "a.b@example.co", true},
		{"embedded in sentence", "it's alex@startup.io thanks!", "alex@startup.io", true},
		{"no email", "no email here", "", false},
		{"missing domain dot", "alex@localhost", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractEmail(tt.message)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ExtractEmail(%q) = %q, %v; want %q, %v", tt.message, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
		ok      bool
	}{
		{"us format", "+1 (555) 123-4567 is best", "+1 (555) 123-4567", true},
		{"dashed", "call 555-0100 anytime", "555-0100", true},
		{"bare digits", "my number is 6915550199", "6915550199", true},
		{"too short", "I have 2 dogs", "", false},
		{"no digits", "call me maybe", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPhone(tt.message)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ExtractPhone(%q) = %q, %v; want %q, %v", tt.message, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExtractText(t *testing.T) {
	if got, ok := ExtractText("  Alex  "); !ok || got != "Alex" {
		t.Errorf("ExtractText trimming failed: got %q, %v", got, ok)
	}
	if _, ok := ExtractText("   "); ok {
		t.Error("ExtractText should miss on whitespace-only input")
	}
}
