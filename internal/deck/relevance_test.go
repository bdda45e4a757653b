package deck

import (
	"testing"

	"github.com/ramonehamilton/commander-companion/internal/scryfall"
)

func monoGreenFilter() *relevanceFilter {
	vocab := DefaultVocabulary()
	commander := scryfall.Card{
		Name:          "Elfsong Matriarch",
		TypeLine:      "Legendary Creature — Elf Druid",
		ColorIdentity: []string{"G"},
	}
	return newRelevanceFilter(vocab, DetectProfile([]scryfall.Card{commander}, vocab))
}

func TestRelevant(t *testing.T) {
	filter := monoGreenFilter()

	tests := []struct {
		name string
		card scryfall.Card
		want bool
	}{
		{
			name: "plain creature passes",
			card: scryfall.Card{Name: "Wildwood Scout", TypeLine: "Creature — Elf Scout", OracleText: "Vigilance"},
			want: true,
		},
		{
			name: "blacklisted card rejected",
			card: scryfall.Card{Name: "Unholy Strength", TypeLine: "Enchantment — Aura", OracleText: "Enchanted creature gets +2/+1."},
			want: false,
		},
		{
			name: "combat trick rejected",
			card: scryfall.Card{Name: "Sudden Surge", TypeLine: "Instant", OracleText: "Target creature gets +3/+3 until end of turn."},
			want: false,
		},
		{
			name: "trick with card advantage passes",
			card: scryfall.Card{Name: "Insight Surge", TypeLine: "Instant", OracleText: "Target creature gets +3/+3 until end of turn. Draw a card."},
			want: true,
		},
		{
			name: "pump on a creature passes",
			card: scryfall.Card{Name: "Warband Leader", TypeLine: "Creature — Orc Warrior", OracleText: "Other creatures you control get +1/+1."},
			want: true,
		},
		{
			name: "off-color word rejected",
			card: scryfall.Card{Name: "Crimson Rally", TypeLine: "Enchantment", OracleText: "Red creatures you control get +1/+0."},
			want: false,
		},
		{
			name: "off-color word excused as removal",
			card: scryfall.Card{Name: "Purify", TypeLine: "Instant", OracleText: "Destroy target black or red permanent."},
			want: true,
		},
		{
			name: "in-identity color word passes",
			card: scryfall.Card{Name: "Verdant Anthem", TypeLine: "Enchantment", OracleText: "Green creatures you control get +1/+1."},
			want: true,
		},
		{
			name: "missing metadata passes",
			card: scryfall.Card{},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := tt.card
			if got := filter.relevant(&card); got != tt.want {
				t.Errorf("relevant(%q) = %v, want %v", tt.card.Name, got, tt.want)
			}
		})
	}
}

func TestRelevant_NilCard(t *testing.T) {
	if !monoGreenFilter().relevant(nil) {
		t.Error("cards without metadata should pass")
	}
}

func TestRelevant_PayoffSuppression(t *testing.T) {
	vocab := DefaultVocabulary()

	// A deck with no enchantment theme rejects enchantment payoffs unless
	// the card is itself an enchantment.
	plain := scryfall.Card{
		Name:          "Plain Commander",
		TypeLine:      "Legendary Creature — Human Knight",
		OracleText:    "First strike",
		ColorIdentity: []string{"W"},
	}
	filter := newRelevanceFilter(vocab, DetectProfile([]scryfall.Card{plain}, vocab))

	payoff := scryfall.Card{
		Name:       "Temple Acolyte",
		TypeLine:   "Creature — Human Cleric",
		OracleText: "Whenever you cast an enchantment spell, you gain 2 life.",
	}
	if filter.relevant(&payoff) {
		t.Error("enchantment payoff should be rejected without the theme")
	}

	exempt := scryfall.Card{
		Name:       "Radiant Seal",
		TypeLine:   "Enchantment",
		OracleText: "Whenever you cast an enchantment spell, you gain 2 life.",
	}
	if !filter.relevant(&exempt) {
		t.Error("enchantment-typed payoff should be exempt")
	}

	// With the theme active the payoff stays.
	themed := scryfall.Card{
		Name:          "Sigil Keeper",
		TypeLine:      "Legendary Creature — Human Wizard",
		OracleText:    "Enchantment spells you cast cost {1} less. Whenever an enchantment you control enters, scry 1.",
		ColorIdentity: []string{"W"},
	}
	themedFilter := newRelevanceFilter(vocab, DetectProfile([]scryfall.Card{themed}, vocab))
	if !themedFilter.relevant(&payoff) {
		t.Error("enchantment payoff should pass with the theme active")
	}
}
