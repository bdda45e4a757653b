package deck

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Vocabulary holds every keyword table the assembler's heuristics match
// against. The tables are configuration, not code: they can be loaded from a
// TOML file and extended without touching the allocation logic.
type Vocabulary struct {
	// LandSubtypes are nonbasic land subtype words that signal a
	// land-themed commander (e.g. Gates, Deserts).
	LandSubtypes []string `toml:"land_subtypes"`

	// Strategies maps strategy names to the oracle-text trigger words that
	// detect them. Order matters: it is the tie-break for the primary
	// strategy and the iteration order for signature searches.
	Strategies []Strategy `toml:"strategies"`

	// LandMattersPhrases detect land-themed commanders beyond subtypes.
	LandMattersPhrases []string `toml:"land_matters_phrases"`

	// DefensivePhrases excuse off-color color-word mentions in oracle text
	// (removal, protection and hate cards name colors they don't need).
	DefensivePhrases []string `toml:"defensive_phrases"`

	// Blacklist names cards too weak for Commander regardless of synergy.
	Blacklist []string `toml:"blacklist"`

	// TrickPatterns and TrickAdvantageWords bound the combat-trick filter:
	// an instant or sorcery matching a trick pattern is rejected unless its
	// text also contains an advantage word.
	TrickPatterns       []string `toml:"trick_patterns"`
	TrickAdvantageWords []string `toml:"trick_advantage_words"`

	// PayoffSuppressions cut theme payoffs for themes the deck is not
	// pursuing, unless the card itself has the exempt type.
	PayoffSuppressions []PayoffSuppression `toml:"payoff_suppressions"`

	// Category vocabularies (§ categorization).
	RemovalWords []string `toml:"removal_words"`
	RampWords    []string `toml:"ramp_words"`
	DrawWords    []string `toml:"draw_words"`

	// Staples is the curated list of generic high-value cards pulled from
	// the owned pool first.
	Staples []string `toml:"staples"`

	// FinisherPhrases detect game-ending effects.
	FinisherPhrases []string `toml:"finisher_phrases"`

	// SacrificeOutletPhrases back the Aristocrats density check.
	SacrificeOutletPhrases []string `toml:"sacrifice_outlet_phrases"`
}

// Strategy is one detectable deck strategy: its trigger words for oracle-text
// scanning and the Scryfall query fragment used for signature searches.
type Strategy struct {
	Name     string   `toml:"name"`
	Keywords []string `toml:"keywords"`
	Query    string   `toml:"query"`
}

// PayoffSuppression rejects cards whose text or name marks them as payoffs
// for a strategy the deck is not playing, unless the card's own type line
// contains ExemptType.
type PayoffSuppression struct {
	Strategy    string   `toml:"strategy"`
	TextPhrases []string `toml:"text_phrases"`
	NamePhrases []string `toml:"name_phrases"`
	ExemptType  string   `toml:"exempt_type"`
}

// DefaultVocabulary returns the built-in keyword tables.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		LandSubtypes: []string{"Town", "Gate", "Desert", "Cave", "Lair", "Sphere", "Locus"},

		Strategies: []Strategy{
			{Name: "Aristocrats", Keywords: []string{"sacrifice", "die", "dies", "graveyard", "drain"}, Query: `(o:sacrifice OR o:die)`},
			{Name: "Tokens", Keywords: []string{"token", "create"}, Query: `(o:token OR o:create)`},
			{Name: "Artifacts", Keywords: []string{"artifact"}, Query: `t:artifact`},
			{Name: "Enchantments", Keywords: []string{"enchantment"}, Query: `t:enchantment`},
			{Name: "Spellslinger", Keywords: []string{"instant", "sorcery"}, Query: `(t:instant OR t:sorcery)`},
			{Name: "Counters", Keywords: []string{"counter"}, Query: `o:counter`},
			{Name: "Lifegain", Keywords: []string{"life", "gain"}, Query: `o:life o:gain`},
			{Name: "Equipment", Keywords: []string{"equip", "equipment", "attach"}, Query: `t:equipment`},
			{Name: "LandMatters", Keywords: nil, Query: `(o:landfall OR o:"play an additional land" OR o:"lands you control")`},
		},

		LandMattersPhrases: []string{
			"landfall",
			"lands you control",
			"number of lands",
			"land entering",
			"play an additional land",
		},

		DefensivePhrases: []string{
			"protection from",
			"destroy",
			"exile",
			"opponent",
			"choose a color",
			"any color",
			"landwalk",
		},

		Blacklist: []string{
			"mystic skull", "breaching dragonstorm", "monstrosity",
			"kill shot", "destroy the evidence", "hellish sideswipe",
			"unholy strength", "titan's strength", "dual shot",
			"ox drover", "liberated livestock", "wrecking crew",
		},

		TrickPatterns: []string{
			`gets \+\d+/\+\d+`,
			`deals \d damage to target`,
			`target creature gets`,
			`target creature gains`,
		},
		TrickAdvantageWords: []string{
			"draw", "sacrifice", "token", "create", "scry", "surveil", "exile", "destroy",
		},

		PayoffSuppressions: []PayoffSuppression{
			{
				Strategy:    "Enchantments",
				TextPhrases: []string{"enchantment spell", "whenever you cast an enchantment"},
				NamePhrases: []string{"starfield mystic", "umbra mystic", "ajani's chosen"},
				ExemptType:  "Enchantment",
			},
			{
				Strategy:    "Spellslinger",
				TextPhrases: []string{"whenever you cast an instant or sorcery", "whenever you cast a noncreature spell"},
				NamePhrases: []string{"kessig flamebreather"},
				ExemptType:  "Instant",
			},
		},

		RemovalWords: []string{
			"destroy", "exile", "kill", "terminate", "path", "swords",
			"wrath", "damnation", "wipe",
		},
		RampWords: []string{
			"sol ring", "mana", "ramp", "cultivate", "kodama", "reach",
			"signet", "talisman", "arcane", "fellwar", "treasure",
		},
		DrawWords: []string{
			"draw", "rhystic", "study", "mystic", "remora",
			"phyrexian arena", "necropotence", "sylvan library",
		},

		Staples: []string{
			"Sol Ring", "Arcane Signet", "Command Tower", "Fellwar Stone",
			"Mind Stone", "Swiftfoot Boots", "Lightning Greaves",
			"Skullclamp", "Solemn Simulacrum", "Commander's Sphere",
			"Wayfarer's Bauble", "Thought Vessel", "Worn Powerstone",
			"Burnished Hart", "Hedron Archive",
		},

		FinisherPhrases: []string{
			"wins the game",
			"loses the game",
			"combat damage to a player",
			"damage equal to",
			"double strike",
			"extra turn",
			"each opponent loses",
		},

		SacrificeOutletPhrases: []string{
			"sacrifice a creature",
			"sacrifice another creature",
			"sacrifice a permanent",
		},
	}
}

// LoadVocabulary reads vocabulary tables from a TOML file. Tables absent from
// the file keep their defaults.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	vocab := DefaultVocabulary()
	if err := toml.Unmarshal(data, vocab); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file: %w", err)
	}

	return vocab, nil
}

// Save writes the vocabulary tables to a TOML file.
func (v *Vocabulary) Save(path string) error {
	data, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal vocabulary: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write vocabulary file: %w", err)
	}

	return nil
}

// strategy returns the strategy definition with the given name, or nil.
func (v *Vocabulary) strategy(name string) *Strategy {
	for i := range v.Strategies {
		if v.Strategies[i].Name == name {
			return &v.Strategies[i]
		}
	}
	return nil
}
