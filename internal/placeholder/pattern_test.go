package placeholder

import "testing"

func TestCompilePattern_Default(t *testing.T) {
	re, err := CompilePattern("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !re.MatchString("[Company Name]") {
		t.Error("default pattern should match a bracketed token")
	}
	if re.MatchString("[]") {
		t.Error("default pattern must not match empty brackets")
	}
	if re.MatchString("no brackets") {
		t.Error("default pattern must not match plain text")
	}
}

func TestCompilePattern_Invalid(t *testing.T) {
	if _, err := CompilePattern("["); err == nil {
		t.Error("expected an error for an invalid pattern")
	}
}
