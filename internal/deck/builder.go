package deck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ramonehamilton/commander-companion/internal/scryfall"
)

const (
	// Stage caps. These mirror the allocation quotas; the vocabulary
	// tables control what matches, these control how much of it gets in.
	maxOwnedStaples     = 15
	maxStapleSuggest    = 10
	maxOwnedSignature   = 20
	maxMissingSignature = 10
	maxSecondarySynergy = 10
	rampTarget          = 11
	drawTarget          = 10
	removalTarget       = 11
	maxSynergyPermanent = 8
	creatureTarget      = 25
	maxOwnedFinishers   = 3
	maxFinisherSuggest  = 2
	outletFloor         = 12
	maxSynergyLandFetch = 5
)

// Options are the assembler's feature flags. They express the heuristic's
// evolution as configuration instead of duplicated pipelines.
type Options struct {
	// StapleFetch suggests top generic staples from the provider.
	StapleFetch bool

	// SignatureFetch searches the provider for top strategy and tribal
	// cards, preferring owned copies and suggesting the rest.
	SignatureFetch bool

	// FinisherDetection reserves slots for game-ending effects.
	FinisherDetection bool

	// DensityCheck enforces a sacrifice-outlet floor for Aristocrats decks.
	DensityCheck bool

	// Rand selects among owned printings of the same name. Injectable so
	// tests can pin the choice; nil gets a time-seeded source.
	Rand *rand.Rand
}

// DefaultOptions enables every pipeline stage.
func DefaultOptions() Options {
	return Options{
		StapleFetch:       true,
		SignatureFetch:    true,
		FinisherDetection: true,
		DensityCheck:      true,
	}
}

// Builder assembles Commander decks from an owned pool and live card
// metadata. Safe for concurrent use; each Build works on its own state.
type Builder struct {
	provider CardProvider
	opts     Options
	rng      *rand.Rand
	rngMu    sync.Mutex
	logger   *slog.Logger

	vocabMu sync.RWMutex
	vocab   *Vocabulary
}

// NewBuilder creates a deck builder. A nil vocabulary gets the defaults; a
// nil logger discards output.
func NewBuilder(provider CardProvider, vocab *Vocabulary, opts Options, logger *slog.Logger) *Builder {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Builder{
		provider: provider,
		opts:     opts,
		rng:      rng,
		logger:   logger,
		vocab:    vocab,
	}
}

// Vocabulary returns the current vocabulary tables.
func (b *Builder) Vocabulary() *Vocabulary {
	b.vocabMu.RLock()
	defer b.vocabMu.RUnlock()
	return b.vocab
}

// SetVocabulary swaps the vocabulary tables. Used by the config watcher;
// in-flight builds keep the tables they started with.
func (b *Builder) SetVocabulary(v *Vocabulary) {
	if v == nil {
		return
	}
	b.vocabMu.Lock()
	b.vocab = v
	b.vocabMu.Unlock()
}

// targets splits the non-commander slots into the non-land and land targets.
func targets(commanderCount int) (nonLand, lands int) {
	size := 100 - commanderCount
	nonLand = int(math.Round(float64(size) * 0.62))
	return nonLand, size - nonLand
}

// buildState is the running allocation state, threaded through each stage.
type buildState struct {
	nonLandTarget int
	landTarget    int

	names       []string
	used        map[string]bool
	suggestions []scryfall.Card

	nonLandCount  int
	landCount     int
	rampCount     int
	drawCount     int
	removalCount  int
	creatureCount int
	landShortfall int
}

func newBuildState(commanderCount int) *buildState {
	nonLand, lands := targets(commanderCount)
	return &buildState{
		nonLandTarget: nonLand,
		landTarget:    lands,
		used:          make(map[string]bool),
	}
}

func (s *buildState) has(name string) bool {
	return s.used[strings.ToLower(name)]
}

// addNonLand appends a uniquely-named card to the non-land portion. Returns
// false when the name is already present or the non-land cap is reached.
func (s *buildState) addNonLand(name string) bool {
	if s.nonLandCount >= s.nonLandTarget || s.has(name) {
		return false
	}
	s.names = append(s.names, name)
	s.used[strings.ToLower(name)] = true
	s.nonLandCount++
	return true
}

// addLand appends a uniquely-named land. Returns false at the land cap or on
// a duplicate name.
func (s *buildState) addLand(name string) bool {
	if s.landCount >= s.landTarget || s.has(name) {
		return false
	}
	s.names = append(s.names, name)
	s.used[strings.ToLower(name)] = true
	s.landCount++
	return true
}

// addBasic appends a basic land. Basics repeat, so the singleton set is
// bypassed.
func (s *buildState) addBasic(name string) {
	s.names = append(s.names, name)
	s.landCount++
}

// pool is the eligible owned pool: legal, relevant, commander-excluded.
type pool struct {
	// unique holds one entry per name, first printing wins.
	unique []OwnedCard
	// byName maps lower-cased names to every owned printing.
	byName map[string][]OwnedCard
}

func buildPool(collection []OwnedCard, profile *Profile, filter *relevanceFilter) *pool {
	p := &pool{byName: make(map[string][]OwnedCard)}
	for _, oc := range collection {
		if profile.isCommander(oc.Name) {
			continue
		}
		if oc.Details != nil && !subsetOf(oc.Details.ColorIdentity, profile.Colors) {
			continue
		}
		if !filter.relevant(oc.Details) {
			continue
		}
		key := strings.ToLower(oc.Name)
		if len(p.byName[key]) == 0 {
			p.unique = append(p.unique, oc)
		}
		p.byName[key] = append(p.byName[key], oc)
	}
	return p
}

func (p *pool) owns(name string) bool {
	return len(p.byName[strings.ToLower(name)]) > 0
}

// subsetOf reports whether every color in ci appears in identity. Colorless
// (empty) always passes.
func subsetOf(ci, identity []string) bool {
	for _, c := range ci {
		found := false
		for _, id := range identity {
			if c == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// colorQuery renders the identity constraint in Scryfall query syntax.
func colorQuery(colors []string) string {
	if len(colors) == 0 {
		return "id:c"
	}
	return "id<=" + strings.Join(colors, "")
}

// Build runs the full assembly pipeline. Only commander resolution failure
// is fatal; every enrichment search degrades to fewer suggestions.
func (b *Builder) Build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	if len(req.CommanderNames) == 0 {
		return nil, errors.New("at least one commander name is required")
	}

	vocab := b.Vocabulary()

	commanders, err := b.resolveCommanders(ctx, req.CommanderNames)
	if err != nil {
		return nil, err
	}

	profile := DetectProfile(commanders, vocab)
	filter := newRelevanceFilter(vocab, profile)
	p := buildPool(req.Collection, profile, filter)
	state := newBuildState(len(commanders))

	b.logger.Info("building deck",
		"commanders", req.CommanderNames,
		"colors", profile.Colors,
		"strategies", profile.Strategies,
		"primary", profile.Primary,
		"eligible", len(p.unique),
		"nonLandTarget", state.nonLandTarget,
		"landTarget", state.landTarget,
	)

	b.addOwnedStaples(state, p, vocab)
	if b.opts.StapleFetch {
		b.fetchGenericStaples(ctx, state, p, profile, filter)
	}
	if b.opts.SignatureFetch {
		b.fetchSignatureCards(ctx, state, p, profile, filter, vocab)
	}
	b.addSecondarySynergy(state, p, profile, vocab)
	b.addEssentials(ctx, state, p, profile, filter, vocab)
	b.addSynergyPermanents(state, p, profile, vocab)
	if b.opts.FinisherDetection {
		b.addFinishers(ctx, state, p, profile, filter, vocab)
	}
	b.fillRemaining(state, p)
	if b.opts.DensityCheck && profile.HasStrategy("Aristocrats") {
		b.ensureSacrificeOutlets(state, p, vocab)
	}
	b.fetchBudgetFiller(ctx, state, p, profile, filter, vocab)

	b.allocateLands(ctx, state, p, profile, vocab)

	result := b.assemble(state, profile, p)
	b.logger.Info("deck built",
		"cards", len(result.CardNames),
		"suggestions", len(result.SuggestedDetails),
		"landShortfall", result.LandShortfall,
	)
	return result, nil
}

// resolveCommanders fetches each commander concurrently. Lookups are
// read-only and the identity merge is a set union, so completion order does
// not matter; any failure aborts the build.
func (b *Builder) resolveCommanders(ctx context.Context, names []string) ([]scryfall.Card, error) {
	cards := make([]scryfall.Card, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			card, err := b.provider.GetCardByExactName(gctx, name)
			if err != nil {
				if scryfall.IsNotFound(err) {
					return &CommanderNotFoundError{Name: name}
				}
				return fmt.Errorf("failed to resolve commander %q: %w", name, err)
			}
			cards[i] = *card
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cards, nil
}

// candidate is a scored slot contender, owned or suggested.
type candidate struct {
	owned *OwnedCard
	card  *scryfall.Card
}

func (c candidate) name() string {
	if c.owned != nil {
		return c.owned.Name
	}
	return c.card.Name
}

// rankCandidates orders a batch by composite score: commander-name mentions,
// strategy matches with a primary-strategy bonus, tribal and mechanic
// keyword matches; ties prefer cheap removal, then synergy matches. The sort
// is stable so equal candidates keep pool order.
func rankCandidates(cands []candidate, profile *Profile, vocab *Vocabulary) {
	type ranked struct {
		score   int
		cheap   bool
		synergy bool
	}
	ranks := make([]ranked, len(cands))
	for i, c := range cands {
		if c.card == nil {
			continue
		}
		ranks[i] = ranked{
			score:   profile.score(c.card, vocab),
			cheap:   c.card.CMC <= 2 && vocab.isRemoval(c.card.TypeLine, c.card.Name, c.card.FullOracleText()),
			synergy: profile.isSynergy(c.card, vocab),
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := ranks[i], ranks[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.cheap != b.cheap {
			return a.cheap
		}
		return a.synergy && !b.synergy
	})
}

// addRanked scores and adds up to max owned candidates, returning how many
// went in.
func (b *Builder) addRanked(state *buildState, cands []candidate, max int, profile *Profile, vocab *Vocabulary) int {
	rankCandidates(cands, profile, vocab)
	added := 0
	for _, c := range cands {
		if added >= max {
			break
		}
		if state.addNonLand(c.name()) {
			b.countCategory(state, c.card, vocab)
			added++
		}
	}
	return added
}

// countCategory attributes an added card to the essentials counters. Ramp
// wins over creature so mana dorks count as acceleration.
func (b *Builder) countCategory(state *buildState, card *scryfall.Card, vocab *Vocabulary) {
	if card == nil {
		return
	}
	text := card.FullOracleText()
	switch {
	case vocab.isRamp(card.TypeLine, card.Name, text):
		state.rampCount++
	case vocab.isDraw(card.Name, text):
		state.drawCount++
	case vocab.isRemoval(card.TypeLine, card.Name, text):
		state.removalCount++
	case isCreature(card.TypeLine):
		state.creatureCount++
	}
}

// addOwnedStaples pulls curated generic staples out of the owned pool.
func (b *Builder) addOwnedStaples(state *buildState, p *pool, vocab *Vocabulary) {
	added := 0
	for _, name := range vocab.Staples {
		if added >= maxOwnedStaples {
			break
		}
		versions := p.byName[strings.ToLower(name)]
		if len(versions) == 0 {
			continue
		}
		if state.addNonLand(versions[0].Name) {
			b.countCategory(state, versions[0].Details, vocab)
			added++
		}
	}
	if added > 0 {
		b.logger.Debug("added owned staples", "count", added)
	}
}

// fetchGenericStaples suggests top-ranked generic staples. Non-fatal.
func (b *Builder) fetchGenericStaples(ctx context.Context, state *buildState, p *pool, profile *Profile, filter *relevanceFilter) {
	query := fmt.Sprintf("%s legal:commander -t:land -t:basic", colorQuery(profile.Colors))
	result, err := b.provider.SearchCards(ctx, query, scryfall.SearchOptions{Order: "edhrec", Direction: "asc"})
	if err != nil {
		b.logger.Warn("staple search failed", "error", err)
		return
	}

	vocab := b.Vocabulary()
	added := 0
	for i := range result.Data {
		card := &result.Data[i]
		if added >= maxStapleSuggest {
			break
		}
		if profile.isCommander(card.Name) || state.has(card.Name) || !filter.relevant(card) {
			continue
		}
		if !state.addNonLand(card.Name) {
			break
		}
		b.countCategory(state, card, vocab)
		if !p.owns(card.Name) {
			state.suggestions = append(state.suggestions, *card)
		}
		added++
	}
}

// fetchSignatureCards queries for the strategy's and tribes' signature
// cards. Owned copies go straight in; the best unowned results become
// missing-card suggestions. Non-fatal.
func (b *Builder) fetchSignatureCards(ctx context.Context, state *buildState, p *pool, profile *Profile, filter *relevanceFilter, vocab *Vocabulary) {
	themePart := themeQuery(profile, vocab)
	if themePart == "" {
		return
	}

	query := fmt.Sprintf("%s (%s) -t:land legal:commander", colorQuery(profile.Colors), themePart)
	result, err := b.provider.SearchCards(ctx, query, scryfall.SearchOptions{Order: "edhrec", Direction: "asc"})
	if err != nil {
		b.logger.Warn("signature search failed", "strategies", profile.Strategies, "error", err)
		return
	}

	top := result.Data
	if len(top) > 30 {
		top = top[:30]
	}

	var owned []candidate
	var missing []*scryfall.Card
	for i := range top {
		card := &top[i]
		if profile.isCommander(card.Name) || state.has(card.Name) || !filter.relevant(card) {
			continue
		}
		if versions := p.byName[strings.ToLower(card.Name)]; len(versions) > 0 {
			owned = append(owned, candidate{owned: &versions[0], card: versions[0].Details})
		} else {
			missing = append(missing, card)
		}
	}

	b.addRanked(state, owned, maxOwnedSignature, profile, vocab)

	added := 0
	for _, card := range missing {
		if added >= maxMissingSignature {
			break
		}
		if state.addNonLand(card.Name) {
			b.countCategory(state, card, vocab)
			state.suggestions = append(state.suggestions, *card)
			added++
		}
	}
}

// themeQuery renders the active strategies and tribal types as a Scryfall
// query fragment.
func themeQuery(profile *Profile, vocab *Vocabulary) string {
	var parts []string
	for _, name := range profile.Strategies {
		if strat := vocab.strategy(name); strat != nil && strat.Query != "" {
			parts = append(parts, strat.Query)
		}
	}
	for _, ct := range profile.CreatureTypes {
		parts = append(parts, "t:"+ct)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " OR ")
}

// addSecondarySynergy adds owned synergy cards the signature search missed.
func (b *Builder) addSecondarySynergy(state *buildState, p *pool, profile *Profile, vocab *Vocabulary) {
	if len(profile.Strategies) == 0 && len(profile.CreatureTypes) == 0 {
		return
	}

	var cands []candidate
	for i := range p.unique {
		oc := &p.unique[i]
		if state.has(oc.Name) || oc.Details == nil || oc.Details.IsLand() {
			continue
		}
		if profile.isSynergy(oc.Details, vocab) {
			cands = append(cands, candidate{owned: oc, card: oc.Details})
		}
	}
	b.addRanked(state, cands, maxSecondarySynergy, profile, vocab)
}

// addEssentials fills the ramp, draw and removal quotas from the owned pool,
// falling back to provider suggestions for ramp and removal shortfalls.
func (b *Builder) addEssentials(ctx context.Context, state *buildState, p *pool, profile *Profile, filter *relevanceFilter, vocab *Vocabulary) {
	var ramp, draw, removal []candidate
	for i := range p.unique {
		oc := &p.unique[i]
		if state.has(oc.Name) || oc.Details == nil || oc.Details.IsLand() {
			continue
		}
		text := oc.Details.FullOracleText()
		switch {
		case vocab.isRamp(oc.Details.TypeLine, oc.Name, text):
			ramp = append(ramp, candidate{owned: oc, card: oc.Details})
		case vocab.isDraw(oc.Name, text):
			draw = append(draw, candidate{owned: oc, card: oc.Details})
		case vocab.isRemoval(oc.Details.TypeLine, oc.Name, text):
			removal = append(removal, candidate{owned: oc, card: oc.Details})
		}
	}

	// Ramp wants the cheapest rocks and dorks first.
	sort.SliceStable(ramp, func(i, j int) bool {
		return ramp[i].card.CMC < ramp[j].card.CMC
	})
	for _, c := range ramp {
		if state.rampCount >= rampTarget {
			break
		}
		if state.addNonLand(c.name()) {
			state.rampCount++
		}
	}
	if state.rampCount < rampTarget {
		query := fmt.Sprintf(`%s legal:commander -t:land -t:basic t:artifact o:"add"`, colorQuery(profile.Colors))
		b.fetchEssentialFallback(ctx, state, p, profile, filter, query, rampTarget-state.rampCount, &state.rampCount)
	}

	for _, c := range draw {
		if state.drawCount >= drawTarget {
			break
		}
		if state.addNonLand(c.name()) {
			state.drawCount++
		}
	}

	for _, c := range removal {
		if state.removalCount >= removalTarget {
			break
		}
		if state.addNonLand(c.name()) {
			state.removalCount++
		}
	}
	if state.removalCount < removalTarget {
		query := fmt.Sprintf(`%s legal:commander (t:instant OR t:sorcery) (o:destroy OR o:exile) usd<=5`, colorQuery(profile.Colors))
		b.fetchEssentialFallback(ctx, state, p, profile, filter, query, removalTarget-state.removalCount, &state.removalCount)
	}
}

// fetchEssentialFallback tops up an essentials quota with provider
// suggestions. Non-fatal.
func (b *Builder) fetchEssentialFallback(ctx context.Context, state *buildState, p *pool, profile *Profile, filter *relevanceFilter, query string, need int, counter *int) {
	if need <= 0 {
		return
	}
	result, err := b.provider.SearchCards(ctx, query, scryfall.SearchOptions{Order: "edhrec", Direction: "asc"})
	if err != nil {
		b.logger.Warn("essential fallback search failed", "query", query, "error", err)
		return
	}

	added := 0
	for i := range result.Data {
		card := &result.Data[i]
		if added >= need {
			break
		}
		if profile.isCommander(card.Name) || state.has(card.Name) || !filter.relevant(card) {
			continue
		}
		if !state.addNonLand(card.Name) {
			break
		}
		*counter++
		if !p.owns(card.Name) {
			state.suggestions = append(state.suggestions, *card)
		}
		added++
	}
}

// addSynergyPermanents slots synergy artifacts and enchantments ahead of
// generic creatures, then tops up the creature count.
func (b *Builder) addSynergyPermanents(state *buildState, p *pool, profile *Profile, vocab *Vocabulary) {
	var permanents, creatures []candidate
	for i := range p.unique {
		oc := &p.unique[i]
		if state.has(oc.Name) || oc.Details == nil || oc.Details.IsLand() {
			continue
		}
		typeLine := oc.Details.TypeLine
		if (strings.Contains(typeLine, "Artifact") || strings.Contains(typeLine, "Enchantment")) &&
			profile.isSynergy(oc.Details, vocab) {
			permanents = append(permanents, candidate{owned: oc, card: oc.Details})
		} else if isCreature(typeLine) {
			creatures = append(creatures, candidate{owned: oc, card: oc.Details})
		}
	}

	b.addRanked(state, permanents, maxSynergyPermanent, profile, vocab)

	rankCandidates(creatures, profile, vocab)
	for _, c := range creatures {
		if state.creatureCount >= creatureTarget {
			break
		}
		if state.addNonLand(c.name()) {
			state.creatureCount++
		}
	}
}

// addFinishers reserves a few slots for game-ending effects, searching the
// provider when the owned pool has none. Non-fatal.
func (b *Builder) addFinishers(ctx context.Context, state *buildState, p *pool, profile *Profile, filter *relevanceFilter, vocab *Vocabulary) {
	var cands []candidate
	for i := range p.unique {
		oc := &p.unique[i]
		if state.has(oc.Name) || oc.Details == nil || oc.Details.IsLand() {
			continue
		}
		if vocab.isFinisher(oc.Details.FullOracleText()) {
			cands = append(cands, candidate{owned: oc, card: oc.Details})
		}
	}

	if added := b.addRanked(state, cands, maxOwnedFinishers, profile, vocab); added > 0 {
		return
	}

	query := fmt.Sprintf(`%s legal:commander -t:land (o:"wins the game" OR o:"extra turn" OR o:"each opponent loses")`, colorQuery(profile.Colors))
	result, err := b.provider.SearchCards(ctx, query, scryfall.SearchOptions{Order: "edhrec", Direction: "asc"})
	if err != nil {
		b.logger.Warn("finisher search failed", "error", err)
		return
	}

	added := 0
	for i := range result.Data {
		card := &result.Data[i]
		if added >= maxFinisherSuggest {
			break
		}
		if profile.isCommander(card.Name) || state.has(card.Name) || !filter.relevant(card) {
			continue
		}
		if !state.addNonLand(card.Name) {
			break
		}
		state.suggestions = append(state.suggestions, *card)
		added++
	}
}

// fillRemaining pads the non-land slots: artifacts and enchantments first,
// then creatures, then anything eligible.
func (b *Builder) fillRemaining(state *buildState, p *pool) {
	passes := []func(oc *OwnedCard) bool{
		func(oc *OwnedCard) bool {
			return oc.Details != nil &&
				(strings.Contains(oc.Details.TypeLine, "Artifact") || strings.Contains(oc.Details.TypeLine, "Enchantment"))
		},
		func(oc *OwnedCard) bool {
			return oc.Details != nil && isCreature(oc.Details.TypeLine)
		},
		func(oc *OwnedCard) bool { return true },
	}

	for _, pass := range passes {
		for i := range p.unique {
			if state.nonLandCount >= state.nonLandTarget {
				return
			}
			oc := &p.unique[i]
			if state.has(oc.Name) || (oc.Details != nil && oc.Details.IsLand()) {
				continue
			}
			if pass(oc) {
				state.addNonLand(oc.Name)
			}
		}
	}
}

// ensureSacrificeOutlets keeps Aristocrats decks functional by topping up
// sacrifice outlets to the configured floor.
func (b *Builder) ensureSacrificeOutlets(state *buildState, p *pool, vocab *Vocabulary) {
	outlets := 0
	for name := range state.used {
		if versions := p.byName[name]; len(versions) > 0 && versions[0].Details != nil {
			if vocab.isSacrificeOutlet(versions[0].Details.FullOracleText()) {
				outlets++
			}
		}
	}
	if outlets >= outletFloor {
		return
	}

	need := outletFloor - outlets
	for i := range p.unique {
		if need <= 0 {
			break
		}
		oc := &p.unique[i]
		if state.has(oc.Name) || oc.Details == nil || oc.Details.IsLand() {
			continue
		}
		if vocab.isSacrificeOutlet(oc.Details.FullOracleText()) && state.addNonLand(oc.Name) {
			need--
		}
	}
}

// fetchBudgetFiller closes any remaining non-land gap with budget-priced,
// theme-weighted suggestions. Non-fatal.
func (b *Builder) fetchBudgetFiller(ctx context.Context, state *buildState, p *pool, profile *Profile, filter *relevanceFilter, vocab *Vocabulary) {
	need := state.nonLandTarget - state.nonLandCount
	if need <= 0 {
		return
	}

	var query string
	if themePart := themeQuery(profile, vocab); themePart != "" {
		query = fmt.Sprintf("%s (%s) -t:basic legal:commander usd<=5", colorQuery(profile.Colors), themePart)
	} else {
		query = fmt.Sprintf("%s -t:basic legal:commander usd<=2", colorQuery(profile.Colors))
	}

	result, err := b.provider.SearchCards(ctx, query, scryfall.SearchOptions{Order: "edhrec", Direction: "asc"})
	if err != nil {
		b.logger.Warn("budget filler search failed", "error", err)
		return
	}

	for i := range result.Data {
		card := &result.Data[i]
		if state.nonLandCount >= state.nonLandTarget {
			break
		}
		if profile.isCommander(card.Name) || state.has(card.Name) || card.IsLand() || !filter.relevant(card) {
			continue
		}
		if state.addNonLand(card.Name) {
			state.suggestions = append(state.suggestions, *card)
		}
	}
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// assemble turns the final state into the build result, picking a random
// owned printing for every name the user owns.
func (b *Builder) assemble(state *buildState, profile *Profile, p *pool) *BuildResult {
	deckList := make([]DeckEntry, len(state.names))
	for i, name := range state.names {
		entry := DeckEntry{Name: name}
		if versions := p.byName[strings.ToLower(name)]; len(versions) > 0 {
			b.rngMu.Lock()
			entry.ScryfallID = versions[b.rng.Intn(len(versions))].ScryfallID
			b.rngMu.Unlock()
		}
		deckList[i] = entry
	}

	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(profile.CommanderNames[0]), "-"), "-")

	return &BuildResult{
		DeckName:         fmt.Sprintf("Auto-built %s deck", strings.Join(profile.CommanderNames, " & ")),
		Colors:           profile.Colors,
		CardNames:        state.names,
		DeckList:         deckList,
		SuggestedDetails: state.suggestions,
		LandShortfall:    state.landShortfall,
		DeckURL:          "https://edhrec.com/commanders/" + slug,
	}
}
