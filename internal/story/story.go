// Package story loads YAML stories and compiles them into the scene
// templates the game engine runs.
package story

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"novel/internal/game"
)

// File is the on-disk shape of a story.
type File struct {
	Title     string                   `yaml:"title"`
	Start     string                   `yaml:"start"`
	Respawn   string                   `yaml:"respawn"`
	Exhausted string                   `yaml:"exhausted"`
	Collapsed string                   `yaml:"collapsed"`
	Initial   *game.InitialState       `yaml:"initial"`
	Items     map[string]game.ItemSpec `yaml:"items"`
	Uses      game.UseTable            `yaml:"uses"`
	Scenes    map[string]*SceneDef     `yaml:"scenes"`
}

// SceneDef is a scene as written by the author.
type SceneDef struct {
	Title      string           `yaml:"title"`
	Image      string           `yaml:"image"`
	Dialogues  []string         `yaml:"dialogues"`
	Choices    []ChoiceDef      `yaml:"choices"`
	AutoChange *game.AutoChange `yaml:"autoChange"`
	Checkpoint bool             `yaml:"checkpoint"`
	Fatal      bool             `yaml:"fatal"`
	Transition string           `yaml:"transition"`
	Revisit    *Revisit         `yaml:"revisit"`
}

// Revisit swaps the dialogue once the player has seen another scene.
type Revisit struct {
	Visited   string   `yaml:"visited"`
	Dialogues []string `yaml:"dialogues"`
}

// ChoiceDef is a choice plus at most one declarative action.
type ChoiceDef struct {
	Key        string            `yaml:"key"`
	Text       string            `yaml:"text"`
	Next       string            `yaml:"next"`
	Cost       *game.Cost        `yaml:"cost"`
	When       *Gate             `yaml:"when"`
	Say        string            `yaml:"say"`
	Get        *GetDef           `yaml:"get"`
	Buy        *BuyDef           `yaml:"buy"`
	Script     string            `yaml:"script"`
	Args       map[string]string `yaml:"args"`
	Restart    bool              `yaml:"restart"`
	Transition string            `yaml:"transition"`
}

// Gate hides a choice unless every set field holds.
type Gate struct {
	Visited   string `yaml:"visited"`
	Unvisited string `yaml:"unvisited"`
	Has       string `yaml:"has"`
	Lacks     string `yaml:"lacks"`
	MinMoney  int    `yaml:"minMoney"`
}

// GetDef offers an item, coins, or a refill.
type GetDef struct {
	Item      string        `yaml:"item"`
	Amount    int           `yaml:"amount"`
	Currency  bool          `yaml:"currency"`
	Refill    string        `yaml:"refill"` // owned item topped up instead of adding Item
	Once      string        `yaml:"once"`   // flag that makes the pickup one-shot
	Repeat    string        `yaml:"repeat"` // notice shown once the flag is set
	Dialogues []string      `yaml:"dialogues"`
	Image     string        `yaml:"image"`
	Return    string        `yaml:"return"`
	Message   string        `yaml:"message"`
	Quiet     bool          `yaml:"quiet"`
	Then      *GetDef       `yaml:"then"` // offered right after this one is taken
	Delay     time.Duration `yaml:"delay"`
}

// BuyDef offers an item for coins.
type BuyDef struct {
	Item        string `yaml:"item"`
	Price       int    `yaml:"price"`
	Amount      int    `yaml:"amount"`
	Return      string `yaml:"return"`
	Image       string `yaml:"image"`
	Description string `yaml:"description"`
}

// LoadFile reads a story from a YAML file.
func LoadFile(path string) (*File, error) {
	// Resolve path to prevent directory traversal attacks
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath) //nolint:gosec // path is cleaned and validated
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes a story document.
func Parse(b []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and compiles a story.
func Load(path string, scripts Scripts) (*Book, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(f, scripts)
}
