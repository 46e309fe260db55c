package normalize

import "testing"

func TestNormalizeEmail(t *testing.T) {
	email, valid := NormalizeEmail("jane.doe@example.com")
	if !valid || email != "jane.doe@example.com" {
		t.Errorf("expected a valid address, got %q / %v", email, valid)
	}

	email, valid = NormalizeEmail("Jane Doe <jane@example.com>")
	if !valid || email != "jane@example.com" {
		t.Errorf("expected the address part extracted, got %q / %v", email, valid)
	}

	email, valid = NormalizeEmail("jane.doe @ example.com")
	if !valid || email != "jane.doe@example.com" {
		t.Errorf("expected whitespace stripped on retry, got %q / %v", email, valid)
	}

	email, valid = NormalizeEmail("not-an-email")
	if valid {
		t.Error("expected an invalid address")
	}
	if email != "not-an-email" {
		t.Errorf("expected the raw text passed through, got %q", email)
	}
}

func TestNormalizePhone_International(t *testing.T) {
	e164, region, _, valid := NormalizePhone("+33 6 12 34 56 78", "US")

	if !valid {
		t.Fatal("expected a valid number")
	}
	if e164 != "+33612345678" {
		t.Errorf("expected E.164 form +33612345678, got %q", e164)
	}
	if region != "FR" {
		t.Errorf("expected region FR from the country prefix, got %q", region)
	}
}

func TestNormalizePhone_DefaultRegion(t *testing.T) {
	e164, region, _, valid := NormalizePhone("06 12 34 56 78", "FR")

	if !valid {
		t.Fatal("expected a valid number")
	}
	if e164 != "+33612345678" {
		t.Errorf("expected the default region applied, got %q", e164)
	}
	if region != "FR" {
		t.Errorf("expected region FR, got %q", region)
	}
}

func TestNormalizePhone_Invalid(t *testing.T) {
	_, _, _, valid := NormalizePhone("12", "US")
	if valid {
		t.Error("expected an invalid number")
	}

	_, _, _, valid = NormalizePhone("", "US")
	if valid {
		t.Error("expected empty input invalid")
	}
}
