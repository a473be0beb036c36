package enums

import "testing"

func TestOrderStatusIsValid(t *testing.T) {
	for _, status := range validOrderStatuses {
		if !status.IsValid() {
			t.Fatalf("expected %q to be valid", status)
		}
	}
	for _, raw := range []string{"", "Pending", "done", "in_progress"} {
		if OrderStatus(raw).IsValid() {
			t.Fatalf("expected %q to be invalid", raw)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("preparing")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if status != OrderStatusPreparing {
		t.Fatalf("expected preparing, got %q", status)
	}

	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("expected error for unrecognized status")
	}
}

func TestOrderStatusIsActive(t *testing.T) {
	active := map[OrderStatus]bool{
		OrderStatusPending:   true,
		OrderStatusConfirmed: true,
		OrderStatusPreparing: true,
		OrderStatusReady:     false,
		OrderStatusCompleted: false,
		OrderStatusCancelled: false,
	}
	for status, want := range active {
		if got := status.IsActive(); got != want {
			t.Fatalf("IsActive(%q) = %v, want %v", status, got, want)
		}
	}
}
