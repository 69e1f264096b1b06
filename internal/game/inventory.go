package game

// DefaultCapacity is the number of physical inventory slots.
const DefaultCapacity = 4

// Item finds a record by its stable id or by the id of its active
// depleted variant.
func (st *PlayerState) Item(id string) (*Item, bool) {
	for _, it := range st.Items {
		if it.ID == id || it.DisplayID() == id {
			return it, true
		}
	}
	return nil, false
}

func (st *PlayerState) HasItem(id string) bool {
	_, ok := st.Item(id)
	return ok
}

// UseItem consumes one unit of id. It reports false, leaving state
// untouched, when the item is missing, exhausted, or not usable.
//
// At zero quantity an item with a broken variant becomes Depleted, a
// permanent item stays at zero, and anything else is removed.
func (st *PlayerState) UseItem(id string) bool {
	it, ok := st.Item(id)
	if !ok || it.Quantity <= 0 || !it.CanUse() {
		return false
	}
	if it.Effect != nil {
		st.Apply(*it.Effect)
	}
	it.Quantity--
	if it.Quantity > 0 {
		return true
	}
	switch {
	case it.Broken != nil:
		it.Condition = Depleted
	case !it.Permanent:
		st.RemoveItem(it.ID)
	}
	return true
}

// RefillItem adds n units to an owned item and restores it if it was
// depleted. Refilling an absent item does nothing.
func (st *PlayerState) RefillItem(id string, n int) bool {
	it, ok := st.Item(id)
	if !ok || n <= 0 {
		return false
	}
	it.Condition = Intact
	it.Quantity += n
	return true
}

// AddNewItem appends a zero-quantity record for spec. Quantity is then
// set through RefillItem. Adding an owned id is a no-op.
func (st *PlayerState) AddNewItem(spec ItemSpec) bool {
	if spec.ID == "" || st.HasItem(spec.ID) {
		return false
	}
	st.Items = append(st.Items, &Item{ItemSpec: spec})
	return true
}

func (st *PlayerState) RemoveItem(id string) bool {
	for i, it := range st.Items {
		if it.ID == id || it.DisplayID() == id {
			st.Items = append(st.Items[:i], st.Items[i+1:]...)
			return true
		}
	}
	return false
}

// SlotsUsed counts physical records; coins never take a slot.
func (st *PlayerState) SlotsUsed() int {
	n := 0
	for _, it := range st.Items {
		if it.Type != ItemCoin {
			n++
		}
	}
	return n
}
