package deck

import (
	"regexp"
	"strings"

	"github.com/ramonehamilton/commander-companion/internal/scryfall"
)

var (
	rampTypeRe   = regexp.MustCompile(`Artifact|Enchantment|Sorcery|Creature`)
	searchLandRe = regexp.MustCompile(`(?i)search your library for (a|up to \w+)[^.]*land card`)
)

// isCreature matches non-legendary creatures.
func isCreature(typeLine string) bool {
	return strings.Contains(typeLine, "Creature") && !strings.Contains(typeLine, "Legendary")
}

// isNonBasicLand matches lands that are not basics.
func isNonBasicLand(typeLine string) bool {
	return strings.Contains(typeLine, "Land") && !strings.Contains(typeLine, "Basic")
}

// isRemoval matches instants and sorceries whose name or text uses the
// removal vocabulary.
func (v *Vocabulary) isRemoval(typeLine, name, text string) bool {
	if !instantSorceryRe.MatchString(typeLine) {
		return false
	}
	haystack := strings.ToLower(name) + "\n" + strings.ToLower(text)
	for _, word := range v.RemovalWords {
		if strings.Contains(haystack, word) {
			return true
		}
	}
	return false
}

// isRamp matches mana acceleration: rocks, dorks, and land-fetch sorceries.
func (v *Vocabulary) isRamp(typeLine, name, text string) bool {
	if !rampTypeRe.MatchString(typeLine) {
		return false
	}
	haystack := strings.ToLower(name) + "\n" + strings.ToLower(text)
	for _, word := range v.RampWords {
		if strings.Contains(haystack, word) {
			return true
		}
	}
	return searchLandRe.MatchString(text)
}

// isDraw matches card advantage by name or text vocabulary.
func (v *Vocabulary) isDraw(name, text string) bool {
	haystack := strings.ToLower(name) + "\n" + strings.ToLower(text)
	for _, word := range v.DrawWords {
		if strings.Contains(haystack, word) {
			return true
		}
	}
	return false
}

// isFinisher matches cards whose text implies a game-ending effect.
func (v *Vocabulary) isFinisher(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range v.FinisherPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// isSacrificeOutlet backs the Aristocrats density check.
func (v *Vocabulary) isSacrificeOutlet(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range v.SacrificeOutletPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// isSynergy reports whether a card aligns with the detected profile: its
// text matches an active strategy's keywords, or its type line carries a
// detected tribal type.
func (p *Profile) isSynergy(card *scryfall.Card, vocab *Vocabulary) bool {
	if card == nil {
		return false
	}

	typeLine := strings.ToLower(card.TypeLine)
	for _, ct := range p.CreatureTypes {
		if strings.Contains(typeLine, strings.ToLower(ct)) {
			return true
		}
	}

	text := strings.ToLower(card.FullOracleText())
	for _, name := range p.Strategies {
		if name == "LandMatters" {
			// Land-matters synergy needs the specific phrasing; a
			// stray "land" word is not a match.
			for _, phrase := range vocab.LandMattersPhrases {
				if strings.Contains(text, phrase) {
					return true
				}
			}
			continue
		}
		strat := vocab.strategy(name)
		if strat == nil {
			continue
		}
		for _, kw := range strat.Keywords {
			if wordRe(kw).MatchString(text) {
				return true
			}
		}
	}
	return false
}

// score ranks a candidate within a batch. Higher is better. The weights are
// a heuristic ordering, not a strict total order.
func (p *Profile) score(card *scryfall.Card, vocab *Vocabulary) int {
	if card == nil {
		return 0
	}

	text := card.FullOracleText()
	lowerText := strings.ToLower(text)
	score := 0

	// Cards naming a commander directly are anthem/support effects.
	for _, name := range p.CommanderNames {
		if strings.Contains(lowerText, strings.ToLower(name)) {
			score += 8
		}
	}

	for _, name := range p.Strategies {
		strat := vocab.strategy(name)
		if strat == nil {
			continue
		}
		matched := false
		for _, kw := range strat.Keywords {
			if wordRe(kw).MatchString(lowerText) {
				matched = true
				break
			}
		}
		if matched {
			score += 2
			if name == p.Primary {
				score += 3
			}
		}
	}

	typeLine := strings.ToLower(card.TypeLine)
	for _, ct := range p.CreatureTypes {
		if strings.Contains(typeLine, strings.ToLower(ct)) {
			score += 2
		}
	}

	// Mechanic keywords the commanders also carry.
	for _, kw := range card.Keywords {
		if p.commanderKeywords[strings.ToLower(kw)] {
			score++
		}
	}

	return score
}
