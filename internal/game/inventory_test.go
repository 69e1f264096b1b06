package game

import "testing"

func TestUseItem_Recovery(t *testing.T) {
	start := DefaultInitialState()
	start.Items = []ItemStock{{
		ItemSpec: ItemSpec{ID: "bread", Type: ItemRecovery, Usable: true, Effect: &Cost{Type: Health, Amount: 10}},
		Quantity: 2,
	}}
	st := NewPlayerState(start)
	st.ConsumeHealth(30)

	if !st.UseItem("bread") {
		t.Fatal("Expected first use to succeed")
	}
	if st.Health != 80 {
		t.Errorf("Expected health 80 after eating, got %d", st.Health)
	}
	if !st.UseItem("bread") {
		t.Fatal("Expected second use to succeed")
	}
	if st.HasItem("bread") {
		t.Error("Expected bread to be removed at zero quantity")
	}
	if st.UseItem("bread") {
		t.Error("Expected use of a missing item to fail")
	}
}

func TestUseItem_Refusals(t *testing.T) {
	start := DefaultInitialState()
	start.Items = []ItemStock{
		{ItemSpec: ItemSpec{ID: "key", Type: ItemNormal}, Quantity: 1},
		{ItemSpec: ItemSpec{ID: "jar", Type: ItemRecovery, Usable: true}, Quantity: 0},
	}
	st := NewPlayerState(start)

	if st.UseItem("key") {
		t.Error("Expected non-usable item to be refused")
	}
	if st.UseItem("jar") {
		t.Error("Expected zero-quantity item to be refused")
	}
	if len(st.Items) != 2 {
		t.Errorf("Expected refusals to leave inventory intact, got %d items", len(st.Items))
	}
}

func TestUseItem_Permanent(t *testing.T) {
	start := DefaultInitialState()
	start.Items = []ItemStock{{
		ItemSpec: ItemSpec{ID: "lighter", Type: ItemTool, Usable: true, Permanent: true, EmptyImage: "lighter-empty.png", Image: "lighter.png"},
		Quantity: 1,
	}}
	st := NewPlayerState(start)

	st.UseItem("lighter")
	it, ok := st.Item("lighter")
	if !ok {
		t.Fatal("Expected permanent item to stay at zero quantity")
	}
	if it.Quantity != 0 {
		t.Errorf("Expected quantity 0, got %d", it.Quantity)
	}
	if it.DisplayImage() != "lighter-empty.png" {
		t.Errorf("Expected empty image, got %q", it.DisplayImage())
	}
	if st.UseItem("lighter") {
		t.Error("Expected use at zero quantity to fail")
	}
}

func TestDegradeAndRefill(t *testing.T) {
	start := DefaultInitialState()
	start.Items = []ItemStock{{ItemSpec: cutterSpec(), Quantity: 2}}
	st := NewPlayerState(start)

	st.UseItem("cutter")
	st.UseItem("cutter")

	it, ok := st.Item("cutter")
	if !ok {
		t.Fatal("Expected cutter record to survive depletion")
	}
	if it.Condition != Depleted || it.Quantity != 0 {
		t.Errorf("Expected depleted x0, got %s x%d", it.Condition, it.Quantity)
	}
	if it.DisplayID() != "snapped-cutter" || it.DisplayName() != "Snapped cutter" {
		t.Errorf("Expected snapped presentation, got %q %q", it.DisplayID(), it.DisplayName())
	}
	if it.CanUse() {
		t.Error("Expected depleted cutter to be unusable")
	}
	if byVariant, ok := st.Item("snapped-cutter"); !ok || byVariant != it {
		t.Error("Expected lookup by variant id to find the same record")
	}
	if st.UseItem("cutter") {
		t.Error("Expected use of depleted cutter to fail")
	}

	if !st.RefillItem("cutter", 1) {
		t.Fatal("Expected refill to succeed")
	}
	if it.Condition != Intact || it.Quantity != 1 || !it.CanUse() {
		t.Errorf("Expected usable cutter x1, got %s x%d", it.Condition, it.Quantity)
	}
	if it.DisplayID() != "cutter" || it.DisplayDescription() != "A sharp box cutter." {
		t.Errorf("Expected intact presentation, got %q", it.DisplayID())
	}
}

func TestRefillItem_Absent(t *testing.T) {
	st := NewPlayerState(DefaultInitialState())
	if st.RefillItem("cutter", 3) {
		t.Error("Expected refill of an absent item to do nothing")
	}
	if len(st.Items) != 0 {
		t.Errorf("Expected no items, got %d", len(st.Items))
	}
}

func TestAddNewItem(t *testing.T) {
	st := NewPlayerState(DefaultInitialState())
	if !st.AddNewItem(ItemSpec{ID: "key", Type: ItemNormal}) {
		t.Fatal("Expected first add to succeed")
	}
	if st.AddNewItem(ItemSpec{ID: "key", Type: ItemNormal}) {
		t.Error("Expected duplicate add to be a no-op")
	}
	it, _ := st.Item("key")
	if it.Quantity != 0 {
		t.Errorf("Expected new item at quantity 0, got %d", it.Quantity)
	}
	st.RefillItem("key", 1)
	if it.Quantity != 1 {
		t.Errorf("Expected quantity 1 after refill, got %d", it.Quantity)
	}
}

func TestSlotsUsed_ExcludesCoins(t *testing.T) {
	start := DefaultInitialState()
	start.Items = []ItemStock{
		physical("a"), physical("b"),
		{ItemSpec: ItemSpec{ID: "coin", Type: ItemCoin}, Quantity: 3},
	}
	st := NewPlayerState(start)
	if got := st.SlotsUsed(); got != 2 {
		t.Errorf("Expected 2 slots used, got %d", got)
	}
	if !st.RemoveItem("a") || st.SlotsUsed() != 1 {
		t.Errorf("Expected 1 slot after removal, got %d", st.SlotsUsed())
	}
	if st.RemoveItem("a") {
		t.Error("Expected second removal to report false")
	}
}
