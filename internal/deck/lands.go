package deck

import (
	"context"
	"fmt"
	"strings"

	"github.com/ramonehamilton/commander-companion/internal/scryfall"
)

// basicForColor maps identity colors to their basic land names.
var basicForColor = map[string]string{
	"W": "Plains",
	"U": "Island",
	"B": "Swamp",
	"R": "Mountain",
	"G": "Forest",
}

// allocateLands fills the land portion: synergy lands first, a small
// external supplement for land-themed decks, other owned non-basics up to
// half the land target, then basics split evenly across the identity colors.
func (b *Builder) allocateLands(ctx context.Context, state *buildState, p *pool, profile *Profile, vocab *Vocabulary) {
	// On-theme lands may take every land slot. The 50% ceiling keeps only
	// the generic non-basics from crowding out basics.
	b.addSynergyLands(state, p, profile, vocab)

	if b.opts.SignatureFetch && (profile.HasStrategy("LandMatters") || len(profile.LandSubtypes) > 0) {
		b.fetchSynergyLands(ctx, state, p, profile)
	}

	b.addOwnedNonBasics(state, p, state.landTarget/2)
	b.addBasics(state, profile)

	if state.landCount < state.landTarget {
		b.backfillColorless(state, p)
	}
}

// landSynergy reports whether a land's type line or text matches the
// detected land theme.
func landSynergy(card *scryfall.Card, profile *Profile, vocab *Vocabulary) bool {
	typeLine := strings.ToLower(card.TypeLine)
	for _, subtype := range profile.LandSubtypes {
		if strings.Contains(typeLine, strings.ToLower(subtype)) {
			return true
		}
	}
	text := strings.ToLower(card.FullOracleText())
	for _, phrase := range vocab.LandMattersPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return profile.isSynergy(card, vocab)
}

// addSynergyLands pulls owned non-basic lands that match the land theme, up
// to the full land target.
func (b *Builder) addSynergyLands(state *buildState, p *pool, profile *Profile, vocab *Vocabulary) {
	for i := range p.unique {
		if state.landCount >= state.landTarget {
			return
		}
		oc := &p.unique[i]
		if state.has(oc.Name) || oc.Details == nil || !isNonBasicLand(oc.Details.TypeLine) {
			continue
		}
		if landSynergy(oc.Details, profile, vocab) {
			state.addLand(oc.Name)
		}
	}
}

// fetchSynergyLands supplements a land-themed deck with a few unowned
// synergy lands. Non-fatal.
func (b *Builder) fetchSynergyLands(ctx context.Context, state *buildState, p *pool, profile *Profile) {
	var themeParts []string
	for _, subtype := range profile.LandSubtypes {
		themeParts = append(themeParts, "t:"+strings.ToLower(subtype))
	}
	themeParts = append(themeParts, `o:"lands you control"`)

	query := fmt.Sprintf("%s t:land -t:basic (%s) legal:commander", colorQuery(profile.Colors), strings.Join(themeParts, " OR "))
	result, err := b.provider.SearchCards(ctx, query, scryfall.SearchOptions{Order: "edhrec", Direction: "asc"})
	if err != nil {
		b.logger.Warn("synergy land search failed", "error", err)
		return
	}

	added := 0
	for i := range result.Data {
		card := &result.Data[i]
		if added >= maxSynergyLandFetch || state.landCount >= state.landTarget {
			break
		}
		if state.has(card.Name) || !subsetOf(card.ColorIdentity, profile.Colors) {
			continue
		}
		if state.addLand(card.Name) {
			if !p.owns(card.Name) {
				state.suggestions = append(state.suggestions, *card)
			}
			added++
		}
	}
}

// addOwnedNonBasics tops up the non-basic allowance from the owned pool.
func (b *Builder) addOwnedNonBasics(state *buildState, p *pool, nonBasicCap int) {
	for i := range p.unique {
		if state.landCount >= nonBasicCap {
			return
		}
		oc := &p.unique[i]
		if state.has(oc.Name) || oc.Details == nil || !isNonBasicLand(oc.Details.TypeLine) {
			continue
		}
		state.addLand(oc.Name)
	}
}

// addBasics distributes the remaining land slots evenly across the identity
// colors, the remainder going to the earlier colors in WUBRG order. Basics
// are exempt from the singleton rule, so slots simply repeat the name.
func (b *Builder) addBasics(state *buildState, profile *Profile) {
	remaining := state.landTarget - state.landCount
	if remaining <= 0 || len(profile.Colors) == 0 {
		return
	}

	per := remaining / len(profile.Colors)
	extra := remaining % len(profile.Colors)
	for i, color := range profile.Colors {
		count := per
		if i < extra {
			count++
		}
		for j := 0; j < count; j++ {
			state.addBasic(basicForColor[color])
		}
	}
}

// backfillColorless handles colorless-identity commanders, which have no
// basic to repeat. Owned non-basics fill the gap past the usual non-basic
// allowance; slots left after that are reported as the shortfall.
func (b *Builder) backfillColorless(state *buildState, p *pool) {
	for i := range p.unique {
		if state.landCount >= state.landTarget {
			break
		}
		oc := &p.unique[i]
		if state.has(oc.Name) || oc.Details == nil || !isNonBasicLand(oc.Details.TypeLine) {
			continue
		}
		state.addLand(oc.Name)
	}

	state.landShortfall = state.landTarget - state.landCount
	if state.landShortfall > 0 {
		b.logger.Warn("land allocation incomplete", "shortfall", state.landShortfall)
	}
}
