package game

import "time"

// Resource names a numeric quantity tracked by the ledger.
type Resource string

const (
	Health Resource = "health"
	Spirit Resource = "spirit"
	Money  Resource = "money"
)

// Cost is a signed resource delta attached to a choice or an item.
// Negative amounts spend, positive amounts restore.
type Cost struct {
	Type   Resource `yaml:"type"`
	Amount int      `yaml:"amount"`
}

// ItemType classifies an inventory record.
type ItemType string

const (
	ItemRecovery ItemType = "recovery"
	ItemNormal   ItemType = "normal"
	ItemWeapon   ItemType = "weapon"
	ItemTool     ItemType = "tool"
	ItemCoin     ItemType = "coin" // never occupies a slot
)

// Condition is the wear state of an item.
type Condition int

const (
	Intact Condition = iota
	Depleted
)

func (c Condition) String() string {
	if c == Depleted {
		return "depleted"
	}
	return "intact"
}

// Variant is the presentation an item takes once it is depleted.
type Variant struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

// ItemSpec is the catalog entry for an item.
type ItemSpec struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Type        ItemType `yaml:"type"`
	Description string   `yaml:"description"`
	Image       string   `yaml:"image"`
	EmptyImage  string   `yaml:"emptyImage"`
	Effect      *Cost    `yaml:"effect"`
	Usable      bool     `yaml:"usable"`
	Permanent   bool     `yaml:"permanent"`
	Broken      *Variant `yaml:"broken"`
	Read        string   `yaml:"read"` // scene shown when the item is opened
}

// Item is an inventory record. Its ID never changes; depletion only
// flips Condition.
type Item struct {
	ItemSpec
	Quantity  int
	Condition Condition
}

func (it *Item) depleted() bool {
	return it.Condition == Depleted && it.Broken != nil
}

// DisplayID is the id the item currently presents under.
func (it *Item) DisplayID() string {
	if it.depleted() {
		return it.Broken.ID
	}
	return it.ID
}

func (it *Item) DisplayName() string {
	if it.depleted() {
		return it.Broken.Name
	}
	return it.Name
}

func (it *Item) DisplayDescription() string {
	if it.depleted() {
		return it.Broken.Description
	}
	return it.Description
}

func (it *Item) DisplayImage() string {
	switch {
	case it.depleted():
		return it.Broken.Image
	case it.Quantity <= 0 && it.EmptyImage != "":
		return it.EmptyImage
	}
	return it.Image
}

// CanUse reports whether the item may be consumed right now, ignoring
// quantity.
func (it *Item) CanUse() bool {
	return it.Usable && it.Condition == Intact
}

// AutoChange moves the player on after a delay without input.
type AutoChange struct {
	Next  string        `yaml:"next"`
	Delay time.Duration `yaml:"delay"`
}

// Scene is a screen of narrative: dialogue lines plus choices.
type Scene struct {
	ID         string
	Title      string
	Image      string
	Dialogues  []string
	Choices    []Choice
	OnEnter    func(st *PlayerState) []string // non-nil result replaces Dialogues
	AutoChange *AutoChange
	Checkpoint bool // day start to return to after death
	Fatal      bool // death scene; starvation routing is suspended
	Transition string

	// Item is set only on synthesized item scenes.
	Item *ItemContext
}

// ItemContext carries the item-flow data of a synthesized scene.
type ItemContext struct {
	ItemID    string
	PrevScene string
	Pending   *Pending
}

// Clone copies the scene so an instance can be adjusted without touching
// the template it came from.
func (s *Scene) Clone() *Scene {
	c := *s
	c.Dialogues = append([]string(nil), s.Dialogues...)
	c.Choices = append([]Choice(nil), s.Choices...)
	if s.AutoChange != nil {
		ac := *s.AutoChange
		c.AutoChange = &ac
	}
	if s.Item != nil {
		ic := *s.Item
		c.Item = &ic
	}
	return &c
}

// Choice is a selectable option in a scene.
type Choice struct {
	Key        string
	Text       string
	Next       string
	Cost       *Cost
	Condition  func(st *PlayerState) bool
	OnSelect   func(c *Controller) Outcome
	Transition string
}

// Available reports whether the choice is shown for st.
func (ch Choice) Available(st *PlayerState) bool {
	return ch.Condition == nil || ch.Condition(st)
}

// OutcomeKind tells the controller what to do after a choice callback.
type OutcomeKind int

const (
	// OutcomeProceed follows the choice's Next, if any.
	OutcomeProceed OutcomeKind = iota
	// OutcomeHandled means the callback already navigated or wants to stay.
	OutcomeHandled
	// OutcomeRedirect navigates to Outcome.Target instead of Next.
	OutcomeRedirect
)

// Outcome is the result of a choice callback.
type Outcome struct {
	Kind   OutcomeKind
	Target string
}

func Proceed() Outcome { return Outcome{Kind: OutcomeProceed} }

func Handled() Outcome { return Outcome{Kind: OutcomeHandled} }

func ProceedTo(id string) Outcome { return Outcome{Kind: OutcomeRedirect, Target: id} }

// Acquisition describes an item (or coins) offered to the player.
type Acquisition struct {
	ItemID         string
	Name           string
	Description    string
	Dialogues      []string
	Image          string
	Amount         int
	Currency       bool // credited straight to Money, no slot needed
	RefillOnly     bool // tops up an existing item, no slot needed
	ReturnScene    string
	SuccessMessage string
	Quiet          bool
	OnGet          func(c *Controller)
}

// Pending is an acquisition parked while the player frees a slot. Cost
// is charged once, when the acquisition is finally accepted.
type Pending struct {
	Acquisition
	Cost    int
	settled bool
}

// Settled reports whether the pending cost has been charged.
func (p *Pending) Settled() bool { return p.settled }

// Params are the inputs to a synthesized scene.
type Params struct {
	ItemID      string
	ReturnScene string
	Acquire     *Acquisition
	Price       int
	Pending     *Pending
}

// returningTo copies p with every return target set to id.
func (p *Params) returningTo(id string) *Params {
	if p == nil {
		return nil
	}
	q := *p
	q.ReturnScene = id
	if p.Acquire != nil {
		acq := *p.Acquire
		acq.ReturnScene = id
		q.Acquire = &acq
	}
	return &q
}

// Identifiers of the runtime-synthesized scene templates.
const (
	SceneItemGet = "item_get"
	SceneItemUse = "item_use"
	SceneItemBuy = "item_buy"
	SceneAbandon = "abandon_item"
)

// IsDynamic reports whether id names a synthesized template.
func IsDynamic(id string) bool {
	switch id {
	case SceneItemGet, SceneItemUse, SceneItemBuy, SceneAbandon:
		return true
	}
	return false
}
