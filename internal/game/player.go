package game

// PlayerState is the mutable state of one play session.
type PlayerState struct {
	Health    int
	MaxHealth int
	Spirit    int
	MaxSpirit int
	Money     int
	Items     []*Item

	visited map[string]struct{}
	order   []string
}

// ItemStock is a starting inventory entry.
type ItemStock struct {
	ItemSpec `yaml:",inline"`
	Quantity int `yaml:"quantity"`
}

// InitialState describes a fresh player. It is never mutated by play.
type InitialState struct {
	Health    int         `yaml:"health"`
	MaxHealth int         `yaml:"maxHealth"`
	Spirit    int         `yaml:"spirit"`
	MaxSpirit int         `yaml:"maxSpirit"`
	Money     int         `yaml:"money"`
	Items     []ItemStock `yaml:"items"`
}

func DefaultInitialState() InitialState {
	return InitialState{
		Health:    100,
		MaxHealth: 100,
		Spirit:    100,
		MaxSpirit: 100,
	}
}

// NewPlayerState builds a fresh state from init. Every call returns new
// records, so resetting never shares items with an earlier session.
func NewPlayerState(init InitialState) *PlayerState {
	st := &PlayerState{
		MaxHealth: init.MaxHealth,
		MaxSpirit: init.MaxSpirit,
		Health:    clamp(init.Health, 0, init.MaxHealth),
		Spirit:    clamp(init.Spirit, 0, init.MaxSpirit),
		Money:     max(init.Money, 0),
		visited:   map[string]struct{}{},
	}
	for _, stock := range init.Items {
		spec := stock.ItemSpec
		if spec.Effect != nil {
			eff := *spec.Effect
			spec.Effect = &eff
		}
		if spec.Broken != nil {
			b := *spec.Broken
			spec.Broken = &b
		}
		st.Items = append(st.Items, &Item{ItemSpec: spec, Quantity: stock.Quantity})
	}
	return st
}

// Visit records a scene id (or one-shot flag) in the visited set.
func (st *PlayerState) Visit(id string) {
	if st.visited == nil {
		st.visited = map[string]struct{}{}
	}
	if _, ok := st.visited[id]; ok {
		return
	}
	st.visited[id] = struct{}{}
	st.order = append(st.order, id)
}

func (st *PlayerState) Visited(id string) bool {
	_, ok := st.visited[id]
	return ok
}

// VisitedScenes returns visited ids in first-visit order.
func (st *PlayerState) VisitedScenes() []string {
	return append([]string(nil), st.order...)
}
