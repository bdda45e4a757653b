package deck

import (
	"regexp"
	"strings"
	"sync"

	"github.com/ramonehamilton/commander-companion/internal/scryfall"
)

// Profile captures everything the pipeline derives from the commanders at
// build start: merged color identity, detected strategies with their keyword
// weights, land subtypes and tribal creature types. It is a pure function of
// the commander metadata and is discarded after the build.
type Profile struct {
	// CommanderNames as given in the request, resolution order preserved.
	CommanderNames []string

	// Colors is the merged color identity in canonical WUBRG order.
	Colors []string

	// Strategies holds the active strategy names in vocabulary order.
	Strategies []string

	// Primary is the highest-weighted strategy, or "" when none detected.
	Primary string

	// LandSubtypes are the land subtype words found in commander text.
	LandSubtypes []string

	// CreatureTypes are tribal types from the commanders' own type lines.
	CreatureTypes []string

	weights           map[string]int
	commanderKeywords map[string]bool
}

// wubrg is the canonical color order used for merged identities and basic
// land distribution.
var wubrg = []string{"W", "U", "B", "R", "G"}

var legendaryCreatureRe = regexp.MustCompile(`(?i)legendary creature — ([\w\s]+)`)

var (
	wordReMu sync.Mutex
	wordRes  = map[string]*regexp.Regexp{}
)

// wordRe returns a cached case-insensitive matcher for a whole word with an
// optional plural s. Vocabulary words are matched this way so "die" does not
// fire inside "Soldier" or "gate" inside "investigate".
func wordRe(word string) *regexp.Regexp {
	wordReMu.Lock()
	defer wordReMu.Unlock()
	re, ok := wordRes[word]
	if !ok {
		re = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `s?\b`)
		wordRes[word] = re
	}
	return re
}

// wordCount counts whole-word occurrences of word in text.
func wordCount(text, word string) int {
	return len(wordRe(word).FindAllStringIndex(text, -1))
}

// DetectProfile derives the synergy profile from resolved commander cards.
// Deterministic: the same commander metadata always yields the same profile.
func DetectProfile(commanders []scryfall.Card, vocab *Vocabulary) *Profile {
	profile := &Profile{
		weights:           make(map[string]int),
		commanderKeywords: make(map[string]bool),
	}

	// Merge color identities. Set union, emitted in WUBRG order so the
	// result is independent of resolution order.
	present := make(map[string]bool)
	for _, cmd := range commanders {
		profile.CommanderNames = append(profile.CommanderNames, cmd.Name)
		for _, c := range cmd.ColorIdentity {
			present[c] = true
		}
	}
	for _, c := range wubrg {
		if present[c] {
			profile.Colors = append(profile.Colors, c)
		}
	}

	seenSubtype := make(map[string]bool)
	seenType := make(map[string]bool)

	for _, cmd := range commanders {
		text := strings.ToLower(cmd.FullOracleText())

		for _, kw := range cmd.Keywords {
			profile.commanderKeywords[strings.ToLower(kw)] = true
		}

		// Land subtype keywords.
		for _, subtype := range vocab.LandSubtypes {
			if !seenSubtype[subtype] && wordRe(subtype).MatchString(text) {
				seenSubtype[subtype] = true
				profile.LandSubtypes = append(profile.LandSubtypes, subtype)
			}
		}

		// Strategy keyword density. Every whole-word occurrence counts
		// toward the strategy's weight.
		for _, strat := range vocab.Strategies {
			for _, kw := range strat.Keywords {
				profile.weights[strat.Name] += wordCount(text, kw)
			}
		}

		// Land-matters phrasing is broader than the subtype vocabulary.
		for _, phrase := range vocab.LandMattersPhrases {
			profile.weights["LandMatters"] += strings.Count(text, phrase)
		}

		// Tribal types from the commander's own type line.
		if match := legendaryCreatureRe.FindStringSubmatch(cmd.TypeLine); match != nil {
			for _, token := range strings.Fields(match[1]) {
				typ := capitalize(token)
				if typ == "Legendary" || typ == "Creature" || seenType[typ] {
					continue
				}
				seenType[typ] = true
				profile.CreatureTypes = append(profile.CreatureTypes, typ)
			}
		}
	}

	// A land-subtype commander is a land-matters commander even if no
	// phrase matched.
	if len(profile.LandSubtypes) > 0 && profile.weights["LandMatters"] == 0 {
		profile.weights["LandMatters"] = 1
	}

	// Active set and primary strategy, tie broken by vocabulary order.
	best := 0
	for _, strat := range vocab.Strategies {
		w := profile.weights[strat.Name]
		if w <= 0 {
			continue
		}
		profile.Strategies = append(profile.Strategies, strat.Name)
		if w > best {
			best = w
			profile.Primary = strat.Name
		}
	}

	return profile
}

// HasStrategy reports whether the named strategy is active.
func (p *Profile) HasStrategy(name string) bool {
	for _, s := range p.Strategies {
		if s == name {
			return true
		}
	}
	return false
}

// StrategyWeight returns the accumulated keyword weight for a strategy.
func (p *Profile) StrategyWeight(name string) int {
	return p.weights[name]
}

// isCommander reports whether name case-insensitively matches one of the
// commanders.
func (p *Profile) isCommander(name string) bool {
	for _, n := range p.CommanderNames {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
