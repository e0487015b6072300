package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func usd(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	store := NewStore(99)

	for i := 0; i < 4; i++ {
		store.AddItem("u1", "Sword", usd("5.00"))
	}

	snap, ok := store.Snapshot("u1")
	if !ok {
		t.Fatal("expected cart to exist")
	}
	if len(snap.Lines) != 1 {
		t.Fatalf("expected single line, got %d", len(snap.Lines))
	}
	if snap.Lines[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", snap.Lines[0].Quantity)
	}
	if !snap.Total.Equal(usd("20.00")) {
		t.Fatalf("expected total $20.00, got %s", snap.Total)
	}
}

func TestAddItemCapturesPriceAtAddTime(t *testing.T) {
	store := NewStore(99)

	store.AddItem("u1", "Sword", usd("5.00"))
	// A later add with a different catalog price must not reprice the line.
	store.AddItem("u1", "Sword", usd("9.99"))

	snap, _ := store.Snapshot("u1")
	if !snap.Lines[0].UnitPrice.Equal(usd("5.00")) {
		t.Fatalf("expected unit price locked at $5.00, got %s", snap.Lines[0].UnitPrice)
	}
	if !snap.Total.Equal(usd("10.00")) {
		t.Fatalf("expected total $10.00, got %s", snap.Total)
	}
}

func TestDecrementRemovesLineAtZero(t *testing.T) {
	store := NewStore(99)
	store.AddItem("u1", "Shield", usd("3.50"))

	store.DecrementItem("u1", "Shield")

	snap, ok := store.Snapshot("u1")
	if !ok {
		t.Fatal("cart record should remain until deleted")
	}
	if !snap.IsEmpty() {
		t.Fatalf("expected empty cart, got %d lines", len(snap.Lines))
	}
	if !store.IsEmpty("u1") {
		t.Fatal("IsEmpty should report true")
	}
	if !store.Total("u1").Equal(decimal.Zero) {
		t.Fatal("empty cart should total zero")
	}
}

func TestDecrementMissingLineIsNoop(t *testing.T) {
	store := NewStore(99)
	store.DecrementItem("ghost", "Sword")
	store.AddItem("u1", "Sword", usd("5.00"))
	store.DecrementItem("u1", "Shield")

	snap, _ := store.Snapshot("u1")
	if len(snap.Lines) != 1 || snap.Lines[0].Quantity != 1 {
		t.Fatalf("unexpected cart state: %+v", snap.Lines)
	}
}

func TestRemoveItemIdempotent(t *testing.T) {
	store := NewStore(99)
	store.AddItem("u1", "Sword", usd("5.00"))
	store.AddItem("u1", "Shield", usd("3.50"))

	store.RemoveItem("u1", "Shield")
	before, _ := store.Snapshot("u1")
	store.RemoveItem("u1", "Shield")
	after, _ := store.Snapshot("u1")

	if len(before.Lines) != 1 || len(after.Lines) != 1 {
		t.Fatalf("expected one line before and after, got %d/%d", len(before.Lines), len(after.Lines))
	}
	if !after.Total.Equal(before.Total) {
		t.Fatalf("second remove changed the total: %s vs %s", before.Total, after.Total)
	}
}

func TestSetQuantityClamps(t *testing.T) {
	store := NewStore(99)
	store.AddItem("u1", "Sword", usd("5.00"))

	store.SetQuantity("u1", "Sword", 0)
	snap, _ := store.Snapshot("u1")
	if snap.Lines[0].Quantity != 1 {
		t.Fatalf("expected clamp to 1, got %d", snap.Lines[0].Quantity)
	}

	store.SetQuantity("u1", "Sword", 150)
	snap, _ = store.Snapshot("u1")
	if snap.Lines[0].Quantity != 99 {
		t.Fatalf("expected clamp to 99, got %d", snap.Lines[0].Quantity)
	}
}

func TestIncrementRespectsMaxQuantity(t *testing.T) {
	store := NewStore(2)
	store.AddItem("u1", "Sword", usd("5.00"))
	store.IncrementItem("u1", "Sword")
	store.IncrementItem("u1", "Sword")

	snap, _ := store.Snapshot("u1")
	if snap.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity capped at 2, got %d", snap.Lines[0].Quantity)
	}
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	store := NewStore(99)
	store.AddItem("u1", "Sword", usd("5.00"))
	store.AddItem("u1", "Shield", usd("3.50"))
	store.AddItem("u1", "Potion", usd("1.25"))
	store.AddItem("u1", "Shield", usd("3.50"))

	snap, _ := store.Snapshot("u1")
	want := []string{"Sword", "Shield", "Potion"}
	for i, name := range want {
		if snap.Lines[i].Name != name {
			t.Fatalf("expected line %d to be %s, got %s", i, name, snap.Lines[i].Name)
		}
	}
}

func TestDeleteIdempotent(t *testing.T) {
	store := NewStore(99)
	store.AddItem("u1", "Sword", usd("5.00"))
	store.Delete("u1")
	store.Delete("u1")

	if _, ok := store.Snapshot("u1"); ok {
		t.Fatal("expected cart gone after delete")
	}
}

func TestDisplayBookkeeping(t *testing.T) {
	store := NewStore(99)
	store.AddItem("u1", "Sword", usd("5.00"))

	ref := DisplayRef{ChannelID: "c1", MessageID: "m1"}
	store.SetDisplay("u1", ref)
	snap, _ := store.Snapshot("u1")
	if snap.Display != ref {
		t.Fatalf("expected display %v, got %v", ref, snap.Display)
	}

	store.ClearDisplay("u1")
	snap, _ = store.Snapshot("u1")
	if !snap.Display.IsZero() {
		t.Fatalf("expected display cleared, got %v", snap.Display)
	}

	// Setting a display for an absent cart must not resurrect it.
	store.SetDisplay("ghost", ref)
	if _, ok := store.Snapshot("ghost"); ok {
		t.Fatal("SetDisplay should not create carts")
	}
}

func TestEvictRemovesOnlyIdleCarts(t *testing.T) {
	store := NewStore(99)
	current := time.Now()
	store.now = func() time.Time { return current.Add(-2 * time.Hour) }
	store.AddItem("stale", "Sword", usd("5.00"))
	store.SetDisplay("stale", DisplayRef{ChannelID: "c1", MessageID: "m1"})
	store.now = func() time.Time { return current }
	store.AddItem("fresh", "Shield", usd("3.50"))

	evicted := store.Evict(current.Add(-time.Hour))

	if len(evicted) != 1 || evicted[0].UserID != "stale" {
		t.Fatalf("expected only the stale cart evicted, got %+v", evicted)
	}
	if evicted[0].Display.MessageID != "m1" {
		t.Fatal("evicted snapshot should carry the display for cleanup")
	}
	if _, ok := store.Snapshot("stale"); ok {
		t.Fatal("stale cart should be gone")
	}
	if _, ok := store.Snapshot("fresh"); !ok {
		t.Fatal("fresh cart should survive")
	}
}
