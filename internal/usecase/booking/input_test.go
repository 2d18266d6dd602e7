package booking

import (
	"encoding/json"
	"testing"
)

func TestInput_AbsentNullAndValue(t *testing.T) {
	var in Input
	body := `{"serviceId": null, "endTime": "2025-06-01T10:00", "priceCents": 1200}`
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if in.ClientID.Set || in.Status.Set {
		t.Fatalf("absent fields must not be set")
	}
	if !in.ServiceID.Set || in.ServiceID.Value != nil {
		t.Fatalf("explicit null must be set without a value")
	}
	if !in.EndTime.Set || *in.EndTime.Value != "2025-06-01T10:00" {
		t.Fatalf("endTime not decoded")
	}
	if *in.PriceCents.Value != 1200 {
		t.Fatalf("priceCents not decoded")
	}
}

func TestInput_TypeMismatch(t *testing.T) {
	var in Input
	if err := json.Unmarshal([]byte(`{"clientId": "abc"}`), &in); err == nil {
		t.Fatalf("expected a decode error")
	}
}
