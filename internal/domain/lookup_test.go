package domain

import "testing"

func TestUserRefTagging(t *testing.T) {
	byID := ByID(7)
	if byID.Kind() != RefID || byID.ID() != 7 {
		t.Fatalf("unexpected id ref: %+v", byID)
	}

	byEmail := ByEmail("a@b.com")
	if byEmail.Kind() != RefEmail || byEmail.Email() != "a@b.com" {
		t.Fatalf("unexpected email ref: %+v", byEmail)
	}

	var zero UserRef
	if zero.Kind() != RefNone {
		t.Fatalf("zero ref must carry no criteria")
	}
}
