package validation

import (
	"testing"
	"time"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@campus.edu", "x+tag@sub.domain.org"}
	for _, email := range valid {
		if ok, msg := ValidateEmail(email); !ok {
			t.Errorf("Expected %q to be valid: %s", email, msg)
		}
	}

	invalid := []string{"", "plain", "a@b", "@b.co", "a b@c.de"}
	for _, email := range invalid {
		if ok, _ := ValidateEmail(email); ok {
			t.Errorf("Expected %q to be invalid", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("12345"); ok {
		t.Error("Five characters must be rejected")
	}
	if ok, msg := ValidatePassword("123456"); !ok {
		t.Errorf("Six characters must be accepted: %s", msg)
	}
}

func TestValidateEventFields_TimeFormat(t *testing.T) {
	date := time.Now().Add(24 * time.Hour)

	if ok, _ := ValidateEventFields("T", "D", "V", "9:00", "17:30", date); !ok {
		t.Error("H:MM times are valid")
	}
	if ok, _ := ValidateEventFields("T", "D", "V", "24:00", "17:30", date); ok {
		t.Error("24:00 must be rejected")
	}
	if ok, _ := ValidateEventFields("T", "D", "V", "10:00", "5pm", date); ok {
		t.Error("Non HH:MM end time must be rejected")
	}
}

func TestValidateUploadFilename(t *testing.T) {
	valid := []string{
		"avatar-123-1700000000000-42.png",
		"avatar-1700000000000-42.png",
		"event-1700000000000-999999999.jpeg",
		"gallery-1700000000000-1.webp",
	}
	for _, name := range valid {
		if !ValidateUploadFilename(name) {
			t.Errorf("Expected %q to be accepted", name)
		}
	}

	invalid := []string{
		"",
		"../../etc/passwd",
		"avatar-123.png",                        // missing timestamp/random parts
		"avatar-123-1700000000000-42",           // no extension
		"avatar-123-1700000000000-42.png.sh",    // double extension
		"banner-123-1700000000000-42.png",       // unknown prefix
		"avatar-123-1700000000000-42.png/extra", // separator
		"avatar-123-1700000000000-42.verylongext",
	}
	for _, name := range invalid {
		if ValidateUploadFilename(name) {
			t.Errorf("Expected %q to be rejected", name)
		}
	}
}
