package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last+tag@dept.uni.edu"}
	for _, e := range valid {
		if !ValidateEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}

	invalid := []string{"", "no-at-sign", "user@", "@example.com", "user@host"}
	for _, e := range invalid {
		if ValidateEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, msg := ValidatePassword("short"); ok || msg == "" {
		t.Error("short password should be rejected with a message")
	}
	if ok, _ := ValidatePassword("longenough"); !ok {
		t.Error("8+ character password should be accepted")
	}
}

func TestValidateURL(t *testing.T) {
	if !ValidateURL("https://conf2026.example.org") {
		t.Error("https URL should be valid")
	}
	if ValidateURL("ftp://example.org") {
		t.Error("non-http scheme should be rejected")
	}
	if ValidateURL("not a url") {
		t.Error("plain text should be rejected")
	}
}

func TestSanitizeInput(t *testing.T) {
	got := SanitizeInput("  hello\x00world  ")
	if got != "helloworld" {
		t.Errorf("got %q", got)
	}
}

func TestIsAllowedDocument(t *testing.T) {
	if !IsAllowedDocument("paper.PDF") {
		t.Error("pdf should be allowed regardless of case")
	}
	if IsAllowedDocument("script.exe") {
		t.Error("exe should be rejected")
	}
	if IsAllowedDocument("noextension") {
		t.Error("missing extension should be rejected")
	}
}

func TestGenerateStoredFilename(t *testing.T) {
	a := GenerateStoredFilename("paper.pdf")
	b := GenerateStoredFilename("paper.pdf")
	if a == b {
		t.Error("stored filenames should be unique")
	}
	if got := a[len(a)-4:]; got != ".pdf" {
		t.Errorf("extension not kept, got %q", a)
	}
}
