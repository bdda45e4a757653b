package deck

import (
	"regexp"
	"strings"
	"sync"

	"github.com/ramonehamilton/commander-companion/internal/scryfall"
)

// colorWords maps the English color words appearing in oracle text to their
// identity codes.
var colorWords = map[string]string{
	"White": "W",
	"Blue":  "U",
	"Black": "B",
	"Red":   "R",
	"Green": "G",
}

var (
	colorWordRes     map[string]*regexp.Regexp
	colorWordResOnce sync.Once
)

// colorWordRe returns a whole-word, case-insensitive matcher for a color word.
func colorWordRe(word string) *regexp.Regexp {
	colorWordResOnce.Do(func() {
		colorWordRes = make(map[string]*regexp.Regexp, len(colorWords))
		for w := range colorWords {
			colorWordRes[w] = regexp.MustCompile(`(?i)\b` + w + `\b`)
		}
	})
	return colorWordRes[word]
}

var instantSorceryRe = regexp.MustCompile(`Instant|Sorcery`)

// relevanceFilter applies the relevance predicate: it rejects cards that name
// colors the deck cannot produce, blacklisted cards, low-impact combat
// tricks, and payoffs for themes the deck is not pursuing.
type relevanceFilter struct {
	vocab   *Vocabulary
	profile *Profile

	trickRes []*regexp.Regexp
}

func newRelevanceFilter(vocab *Vocabulary, profile *Profile) *relevanceFilter {
	f := &relevanceFilter{vocab: vocab, profile: profile}
	for _, pattern := range vocab.TrickPatterns {
		re, err := regexp.Compile(`(?i)` + pattern)
		if err != nil {
			// A bad configured pattern disables itself, not the build.
			continue
		}
		f.trickRes = append(f.trickRes, re)
	}
	return f
}

// relevant reports whether a candidate card belongs in this deck. Cards
// without metadata pass; later stages treat them as uncategorized.
func (f *relevanceFilter) relevant(card *scryfall.Card) bool {
	if card == nil {
		return true
	}

	text := card.FullOracleText()
	lowerText := strings.ToLower(text)
	lowerName := strings.ToLower(card.Name)

	// Known-weak cards dilute Commander decks regardless of synergy.
	for _, b := range f.vocab.Blacklist {
		if strings.Contains(lowerName, b) {
			return false
		}
	}

	if f.isCombatTrick(card.TypeLine, text, lowerText) {
		return false
	}

	if f.isSuppressedPayoff(card.TypeLine, lowerText, lowerName) {
		return false
	}

	return f.colorCompliant(text)
}

// isCombatTrick flags one-shot pump or small-damage instants and sorceries
// that carry no card advantage.
func (f *relevanceFilter) isCombatTrick(typeLine, text, lowerText string) bool {
	if !instantSorceryRe.MatchString(typeLine) {
		return false
	}

	matched := false
	for _, re := range f.trickRes {
		if re.MatchString(text) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	for _, word := range f.vocab.TrickAdvantageWords {
		if strings.Contains(lowerText, word) {
			return false
		}
	}
	return true
}

// isSuppressedPayoff rejects payoff cards for strategies the deck is not
// playing, unless the card itself has the theme's type.
func (f *relevanceFilter) isSuppressedPayoff(typeLine, lowerText, lowerName string) bool {
	for _, sup := range f.vocab.PayoffSuppressions {
		if f.profile.HasStrategy(sup.Strategy) {
			continue
		}

		matched := false
		for _, phrase := range sup.TextPhrases {
			if strings.Contains(lowerText, phrase) {
				matched = true
				break
			}
		}
		if !matched {
			for _, phrase := range sup.NamePhrases {
				if strings.Contains(lowerName, phrase) {
					matched = true
					break
				}
			}
		}
		if !matched {
			continue
		}

		// Spellslinger payoffs are exempt when the card is itself an
		// instant or sorcery; likewise enchantment payoffs that are
		// enchantments.
		if sup.ExemptType == "Instant" {
			if !strings.Contains(typeLine, "Instant") && !strings.Contains(typeLine, "Sorcery") {
				return true
			}
		} else if !strings.Contains(typeLine, sup.ExemptType) {
			return true
		}
	}
	return false
}

// colorCompliant rejects cards whose text names a color outside the
// commander identity, unless the mention reads as defensive or referential
// (removal, protection, color-hate wording).
func (f *relevanceFilter) colorCompliant(text string) bool {
	inIdentity := make(map[string]bool, len(f.profile.Colors))
	for _, c := range f.profile.Colors {
		inIdentity[c] = true
	}

	for word, code := range colorWords {
		if inIdentity[code] {
			continue
		}
		if !colorWordRe(word).MatchString(text) {
			continue
		}

		excused := false
		lowerText := strings.ToLower(text)
		for _, phrase := range f.vocab.DefensivePhrases {
			if strings.Contains(lowerText, phrase) {
				excused = true
				break
			}
		}
		if !excused {
			return false
		}
	}
	return true
}
