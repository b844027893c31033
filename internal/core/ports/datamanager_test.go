package ports

import (
	"encoding/json"
	"testing"

	"github.com/sparkconnect/directory/internal/core/domain"
)

func TestListingUpdate_Apply_ShallowMerge(t *testing.T) {
	listing := domain.Listing{
		ID:        3,
		Name:      "Sarah Johnson",
		Specialty: "Residential Wiring",
		State:     "Lagos",
		Rating:    4.9,
		Reviews:   127,
	}

	state := "Kano"
	phone := "+2348000000000"
	update := ListingUpdate{State: &state, Phone: &phone}
	update.Apply(&listing)

	if listing.State != "Kano" || listing.Phone != "+2348000000000" {
		t.Fatalf("set fields not applied: %+v", listing)
	}
	if listing.Name != "Sarah Johnson" || listing.Specialty != "Residential Wiring" {
		t.Fatalf("unset fields overwritten: %+v", listing)
	}
	if listing.ID != 3 || listing.Rating != 4.9 || listing.Reviews != 127 {
		t.Fatalf("immutable fields changed: %+v", listing)
	}
}

func TestListingUpdate_IsEmpty(t *testing.T) {
	if !(ListingUpdate{}).IsEmpty() {
		t.Fatalf("zero update should be empty")
	}
	name := "x"
	if (ListingUpdate{Name: &name}).IsEmpty() {
		t.Fatalf("update with a set field should not be empty")
	}
}

func TestListingUpdate_JSONOmitsUnsetFields(t *testing.T) {
	state := "Kano"
	raw, err := json.Marshal(ListingUpdate{State: &state})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"state":"Kano"}` {
		t.Fatalf("unset fields leaked into payload: %s", raw)
	}
}

func TestListingUpdate_RejectsUnknownFieldsWhenStrict(t *testing.T) {
	var update ListingUpdate
	if err := json.Unmarshal([]byte(`{"rating":5}`), &update); err != nil {
		t.Fatalf("plain unmarshal should ignore unknown fields: %v", err)
	}
	if !update.IsEmpty() {
		t.Fatalf("unknown field leaked into update: %+v", update)
	}
}
