package game

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ConsumeHealth lowers health by n, never below zero.
func (st *PlayerState) ConsumeHealth(n int) {
	if n <= 0 {
		return
	}
	st.Health = clamp(st.Health-n, 0, st.MaxHealth)
}

// AddHealth raises health by n, never above MaxHealth.
func (st *PlayerState) AddHealth(n int) {
	if n <= 0 {
		return
	}
	st.Health = clamp(st.Health+n, 0, st.MaxHealth)
}

func (st *PlayerState) ConsumeSpirit(n int) {
	if n <= 0 {
		return
	}
	st.Spirit = clamp(st.Spirit-n, 0, st.MaxSpirit)
}

func (st *PlayerState) AddSpirit(n int) {
	if n <= 0 {
		return
	}
	st.Spirit = clamp(st.Spirit+n, 0, st.MaxSpirit)
}

// AddMoney applies a signed delta. Money is floored at zero and has no
// upper bound.
func (st *PlayerState) AddMoney(delta int) {
	st.Money = max(st.Money+delta, 0)
}

// Apply routes a signed cost to the matching mutator. Unknown resource
// types are ignored.
func (st *PlayerState) Apply(c Cost) {
	switch c.Type {
	case Health:
		st.adjust(c.Amount, st.AddHealth, st.ConsumeHealth)
	case Spirit:
		st.adjust(c.Amount, st.AddSpirit, st.ConsumeSpirit)
	case Money:
		st.AddMoney(c.Amount)
	}
}

func (st *PlayerState) adjust(delta int, add, consume func(int)) {
	if delta >= 0 {
		add(delta)
		return
	}
	consume(-delta)
}

// Starving reports which resource, if any, has run out. Health wins.
func (st *PlayerState) Starving() (Resource, bool) {
	switch {
	case st.Health <= 0:
		return Health, true
	case st.Spirit <= 0:
		return Spirit, true
	}
	return "", false
}
