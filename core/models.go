package core

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Category identifies a family of custom content files.
// The string value doubles as the directory name under the content root.
type Category string

const (
	CategoryBackgrounds Category = "backgrounds"
	CategoryClasses     Category = "classes"
	CategoryRaces       Category = "races"
	CategorySpells      Category = "spells"
)

// Categories lists every category in scan order.
var Categories = []Category{
	CategoryBackgrounds,
	CategoryClasses,
	CategoryRaces,
	CategorySpells,
}

var singulars = map[Category]string{
	CategoryBackgrounds: "background",
	CategoryClasses:     "class",
	CategoryRaces:       "race",
	CategorySpells:      "spell",
}

// Seed vocabulary used for speculative filename probing.
var commonNames = map[Category][]string{
	CategoryBackgrounds: {
		"chef", "scholar", "merchant", "soldier", "noble", "criminal", "folk-hero",
		"hermit", "entertainer", "guild-artisan", "outlander", "sage", "sailor",
		"acolyte", "charlatan", "knight", "pirate", "spy", "gladiator",
	},
	CategoryClasses: {
		"artificer", "barbarian", "bard", "cleric", "druid", "fighter", "monk",
		"paladin", "ranger", "rogue", "sorcerer", "warlock", "wizard", "bloodhunter",
	},
	CategoryRaces: {
		"human", "elf", "dwarf", "halfling", "dragonborn", "gnome", "half-elf",
		"half-orc", "tiefling", "aasimar", "genasi", "goliath", "tabaxi",
	},
	CategorySpells: {
		"fireball", "healing-word", "magic-missile", "cure-wounds", "shield",
		"thunderwave", "sleep", "charm-person", "detect-magic", "light",
	},
}

// Singular returns the singular noun for the category ("spell" for spells).
func (c Category) Singular() string {
	return singulars[c]
}

// CommonNames returns a copy of the category's seed vocabulary.
func (c Category) CommonNames() []string {
	return append([]string(nil), commonNames[c]...)
}

func (c Category) String() string {
	return string(c)
}

// EntrySource records how an index entry was discovered.
type EntrySource string

const (
	// SourceIndex marks entries declared in the static index file.
	SourceIndex EntrySource = "index"
	// SourceAutoDetected marks entries found by filename probing.
	SourceAutoDetected EntrySource = "auto-detected"
)

// IndexEntry describes one discoverable custom content file.
type IndexEntry struct {
	Name        string      `json:"name"`
	Filename    string      `json:"filename"`
	Description string      `json:"description"`
	Source      EntrySource `json:"source"`
}

// Index holds the entries found for each category.
type Index map[Category][]IndexEntry

// Total returns the number of entries across all categories.
func (idx Index) Total() int {
	total := 0
	for _, entries := range idx {
		total += len(entries)
	}
	return total
}

// Document is an opaque JSON value: a content record or a character record.
// Only the "name" field is interpreted; everything else passes through.
// Documents decoded through encoding/json are kept in compact form.
type Document []byte

var _ json.Marshaler = Document(nil)
var _ json.Unmarshaler = (*Document)(nil)

// MarshalJSON returns the raw document bytes.
func (d Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON stores a compact copy of data.
func (d *Document) UnmarshalJSON(data []byte) error {
	compact, err := CompactDocument(data)
	if err != nil {
		return err
	}
	*d = compact
	return nil
}

// Name returns the document's string "name" field, or "" if there is none.
func (d Document) Name() string {
	res := gjson.GetBytes(d, "name")
	if res.Type != gjson.String {
		return ""
	}
	return res.Str
}

// WithName returns a copy of the document with its "name" field set to name.
func (d Document) WithName(name string) (Document, error) {
	out, err := sjson.SetBytes(bytes.Clone(d), "name", name)
	if err != nil {
		return nil, err
	}
	return Document(out), nil
}

// CompactDocument validates data as JSON and returns it with insignificant
// whitespace removed.
func CompactDocument(data []byte) (Document, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, err
	}
	return Document(buf.Bytes()), nil
}
