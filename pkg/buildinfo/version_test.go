package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.Contains(tmpl, Version) {
		t.Errorf("Template() = %q, want it to contain version %q", tmpl, Version)
	}
	if !strings.HasPrefix(tmpl, "{{.Name}}") {
		t.Errorf("Template() = %q, want cobra name placeholder prefix", tmpl)
	}
}

func TestUserAgent(t *testing.T) {
	if got, want := UserAgent(), "netscore/"+Version; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}
