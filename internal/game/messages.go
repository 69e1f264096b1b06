package game

import "time"

// Channel selects one of the two notification lines.
type Channel int

const (
	Bottom Channel = iota
	Top
)

// DefaultMessageTTL is how long a notice stays up.
const DefaultMessageTTL = 3 * time.Second

// Messages holds the transient notices shown over a scene. A new notice
// on a channel replaces the old one and restarts its expiry.
type Messages struct {
	sched Scheduler
	ttl   time.Duration
	text  [2]string
	timer [2]Timer
	gen   [2]uint64
}

func NewMessages(sched Scheduler, ttl time.Duration) *Messages {
	if sched == nil {
		sched = RealScheduler()
	}
	if ttl <= 0 {
		ttl = DefaultMessageTTL
	}
	return &Messages{sched: sched, ttl: ttl}
}

// Show displays text on ch until it expires or is replaced.
func (m *Messages) Show(ch Channel, text string) {
	if m.timer[ch] != nil {
		m.timer[ch].Stop()
	}
	m.gen[ch]++
	gen := m.gen[ch]
	m.text[ch] = text
	m.timer[ch] = m.sched.AfterFunc(m.ttl, func() {
		if m.gen[ch] != gen {
			return
		}
		m.text[ch] = ""
		m.timer[ch] = nil
	})
}

func (m *Messages) Current(ch Channel) string {
	return m.text[ch]
}

// Clear drops both notices and their pending expiries.
func (m *Messages) Clear() {
	for ch := range m.text {
		if m.timer[ch] != nil {
			m.timer[ch].Stop()
			m.timer[ch] = nil
		}
		m.gen[ch]++
		m.text[ch] = ""
	}
}
