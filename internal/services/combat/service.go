// Package combat is the collaborator layer around the rules core: it loads
// character snapshots, runs the resolver, applies the reported outcome to hit
// points and active effects, then persists state and the combat log.
package combat

import (
	"context"
	"encoding/json"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rp-combat-engine/internal/clock"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/catalogue"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/character"
	rules "github.com/KirkDiggler/rp-combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/explain"
	"github.com/KirkDiggler/rp-combat-engine/internal/effects"
	engerr "github.com/KirkDiggler/rp-combat-engine/internal/errors"
	"github.com/KirkDiggler/rp-combat-engine/internal/repositories/characters"
	"github.com/KirkDiggler/rp-combat-engine/internal/repositories/combatlog"
	"github.com/KirkDiggler/rp-combat-engine/internal/uuid"
)

// Service defines the combat service interface
type Service interface {
	// Attack resolves one attack and applies its damage and on-hit effects
	Attack(ctx context.Context, input *AttackInput) (*AttackOutput, error)

	// UseAbility runs an ability chain and applies its effects
	UseAbility(ctx context.Context, input *AbilityInput) (*AbilityOutput, error)

	// AdvanceTurn ends a character's turn: effects decay, damage and heal over time land
	AdvanceTurn(ctx context.Context, characterID string) (*TurnOutput, error)

	// ClearScene ends every scene and turn based effect on a character
	ClearScene(ctx context.Context, characterID string) (*SceneOutput, error)

	// Describe renders a character's active effects grouped by category
	Describe(ctx context.Context, characterID string) (string, error)

	// History lists the newest combat log entries involving a character
	History(ctx context.Context, characterID string, limit int) ([]*combatlog.Entry, error)
}

// AttackInput contains data for an attack
type AttackInput struct {
	AttackerID string
	DefenderID string
	Attack     rules.AttackConfig
}

// AttackOutput is the resolved attack and both characters after it landed
type AttackOutput struct {
	Result   *rules.AttackResult
	Attacker *character.Character
	Defender *character.Character

	// DamageDealt is the hit point loss actually applied to the defender,
	// including immediate on-hit damage effects
	DamageDealt int
}

// AbilityInput contains data for an ability use
type AbilityInput struct {
	CasterID string
	TargetID string
	Ability  rules.AbilityConfig
}

// AbilityOutput is the resolved ability and the characters it touched
type AbilityOutput struct {
	Result *rules.AbilityResult
	Caster *character.Character
	Target *character.Character

	// HitPointChanges maps character id to the net hit point change
	HitPointChanges map[string]int
}

// TurnOutput is a character after one turn of effect decay
type TurnOutput struct {
	Character *character.Character
	Healed    int
	Healers   []string
	Damaged   int
	Damagers  []string
	Expired   []string
	Message   string
}

// SceneOutput is a character after a scene clear
type SceneOutput struct {
	Character *character.Character
	Ended     []string
	Message   string
}

type service struct {
	characters    characters.Repository
	combatLog     combatlog.Repository
	lookup        catalogue.Lookup
	resolver      *rules.Resolver
	uuidGenerator uuid.Generator
	clock         clock.Clock
	logger        *slog.Logger
	locks         *characterLocks
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Characters    characters.Repository
	CombatLog     combatlog.Repository
	Catalogue     catalogue.Lookup
	Resolver      *rules.Resolver
	UUIDGenerator uuid.Generator
	Clock         clock.Clock
	Logger        *slog.Logger
}

// NewService creates a new combat service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("service config is required")
	}
	if cfg.Characters == nil {
		panic("character repository is required")
	}
	if cfg.Resolver == nil {
		panic("resolver is required")
	}

	svc := &service{
		characters:    cfg.Characters,
		combatLog:     cfg.CombatLog,
		lookup:        cfg.Catalogue,
		resolver:      cfg.Resolver,
		uuidGenerator: cfg.UUIDGenerator,
		clock:         cfg.Clock,
		logger:        cfg.Logger,
		locks:         newCharacterLocks(),
	}

	if svc.combatLog == nil {
		svc.combatLog = combatlog.NewInMemoryRepository()
	}
	if svc.lookup == nil {
		svc.lookup = catalogue.New()
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.clock == nil {
		svc.clock = clock.Real{}
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	svc.logger = svc.logger.With("component", "combat_service")

	return svc
}

// Attack resolves one attack and applies its damage and on-hit effects
func (s *service) Attack(ctx context.Context, input *AttackInput) (*AttackOutput, error) {
	if input == nil {
		return nil, engerr.InvalidArgument("input cannot be nil")
	}
	if input.AttackerID == "" || input.DefenderID == "" {
		return nil, engerr.InvalidArgument("attacker and defender ids are required")
	}

	unlock := s.locks.lock(input.AttackerID, input.DefenderID)
	defer unlock()

	loaded, err := s.load(ctx, input.AttackerID, input.DefenderID)
	if err != nil {
		return nil, err
	}
	attacker, defender := loaded[input.AttackerID], loaded[input.DefenderID]

	result, err := s.resolver.Attack(attacker.Combatant(), defender.Combatant(), input.Attack)
	if err != nil {
		return nil, engerr.Wrap(err, "failed to resolve attack")
	}

	output := &AttackOutput{
		Result:   result,
		Attacker: attacker,
		Defender: defender,
	}

	now := s.clock.Now()
	if result.Hit {
		output.DamageDealt = defender.TakeDamage(result.Damage.Total)

		source := attacker.Source(effects.SourceAttack)
		for _, effect := range result.Effects {
			recipient := defender
			if effect.OnSelf {
				recipient = attacker
			}
			delta := recipient.ApplyEffectResult(effect, source, now, s.lookup)
			if recipient == defender && delta < 0 {
				output.DamageDealt -= delta
			}
		}

		attacker.Recalculate(s.lookup)
		defender.Recalculate(s.lookup)

		if err := s.save(ctx, attacker, defender); err != nil {
			return nil, err
		}
	}

	s.appendLog(ctx, &combatlog.Entry{
		CharacterID: attacker.ID,
		TargetID:    defender.ID,
		Kind:        combatlog.KindAttack,
		Message:     result.Message,
		CreatedAt:   now,
	}, result)

	s.logger.Info("attack resolved",
		"attacker_id", attacker.ID,
		"defender_id", defender.ID,
		"roll", result.Roll,
		"hit", result.Hit,
		"damage", output.DamageDealt,
		"defender_hp", defender.Profile.HitPoints)

	return output, nil
}

// UseAbility runs an ability chain and applies its effects
func (s *service) UseAbility(ctx context.Context, input *AbilityInput) (*AbilityOutput, error) {
	if input == nil {
		return nil, engerr.InvalidArgument("input cannot be nil")
	}
	if input.CasterID == "" || input.TargetID == "" {
		return nil, engerr.InvalidArgument("caster and target ids are required")
	}

	unlock := s.locks.lock(input.CasterID, input.TargetID)
	defer unlock()

	loaded, err := s.load(ctx, input.CasterID, input.TargetID)
	if err != nil {
		return nil, err
	}
	caster, target := loaded[input.CasterID], loaded[input.TargetID]

	result, err := s.resolver.UseAbility(caster.Combatant(), target.Combatant(), input.Ability)
	if err != nil {
		return nil, engerr.Wrap(err, "failed to resolve ability")
	}

	output := &AbilityOutput{
		Result:          result,
		Caster:          caster,
		Target:          target,
		HitPointChanges: make(map[string]int),
	}

	now := s.clock.Now()
	source := caster.Source(effects.SourceAbility)
	for _, effect := range result.Effects {
		if !effect.Success {
			continue
		}
		recipient := target
		if effect.OnSelf {
			recipient = caster
		}
		if delta := recipient.ApplyEffectResult(effect, source, now, s.lookup); delta != 0 {
			output.HitPointChanges[recipient.ID] += delta
		}
	}

	if err := s.save(ctx, caster, target); err != nil {
		return nil, err
	}

	s.appendLog(ctx, &combatlog.Entry{
		CharacterID: caster.ID,
		TargetID:    target.ID,
		Kind:        combatlog.KindAbility,
		Message:     result.Message,
		CreatedAt:   now,
	}, result)

	s.logger.Info("ability resolved",
		"caster_id", caster.ID,
		"target_id", target.ID,
		"ability", result.AbilityName,
		"success", result.Success)

	return output, nil
}

// AdvanceTurn ends a character's turn: effects decay, damage and heal over time land
func (s *service) AdvanceTurn(ctx context.Context, characterID string) (*TurnOutput, error) {
	if characterID == "" {
		return nil, engerr.InvalidArgument("character ID is required")
	}

	unlock := s.locks.lock(characterID)
	defer unlock()

	loaded, err := s.load(ctx, characterID)
	if err != nil {
		return nil, err
	}
	char := loaded[characterID]

	before := char.Effects
	turn, healed, damaged := char.AdvanceTurn(s.lookup)

	output := &TurnOutput{
		Character: char,
		Healed:    healed,
		Healers:   turn.HealEffectNames,
		Damaged:   damaged,
		Damagers:  turn.DamageEffectNames,
		Expired:   s.removed(before, char.Effects),
	}
	output.Message = FormatTurn(nameOf(char), output)

	if err := s.save(ctx, char); err != nil {
		return nil, err
	}

	s.appendLog(ctx, &combatlog.Entry{
		CharacterID: char.ID,
		Kind:        combatlog.KindTurn,
		Message:     output.Message,
		CreatedAt:   s.clock.Now(),
	}, output)

	s.logger.Info("turn advanced",
		"character_id", char.ID,
		"healed", healed,
		"damaged", damaged,
		"expired", len(output.Expired))

	return output, nil
}

// ClearScene ends every scene and turn based effect on a character
func (s *service) ClearScene(ctx context.Context, characterID string) (*SceneOutput, error) {
	if characterID == "" {
		return nil, engerr.InvalidArgument("character ID is required")
	}

	unlock := s.locks.lock(characterID)
	defer unlock()

	loaded, err := s.load(ctx, characterID)
	if err != nil {
		return nil, err
	}
	char := loaded[characterID]

	before := char.Effects
	char.ClearScene(s.lookup)

	output := &SceneOutput{
		Character: char,
		Ended:     s.removed(before, char.Effects),
	}
	output.Message = FormatSceneClear(nameOf(char), output.Ended)

	if err := s.save(ctx, char); err != nil {
		return nil, err
	}

	s.appendLog(ctx, &combatlog.Entry{
		CharacterID: char.ID,
		Kind:        combatlog.KindClearScene,
		Message:     output.Message,
		CreatedAt:   s.clock.Now(),
	}, output)

	s.logger.Info("scene cleared", "character_id", char.ID, "ended", len(output.Ended))

	return output, nil
}

// Describe renders a character's active effects grouped by category
func (s *service) Describe(ctx context.Context, characterID string) (string, error) {
	if characterID == "" {
		return "", engerr.InvalidArgument("character ID is required")
	}

	loaded, err := s.load(ctx, characterID)
	if err != nil {
		return "", err
	}
	char := loaded[characterID]

	char.Recalculate(s.lookup)
	return explain.Render(char.Live, char.Effects, s.lookup), nil
}

// History lists the newest combat log entries involving a character
func (s *service) History(ctx context.Context, characterID string, limit int) ([]*combatlog.Entry, error) {
	if characterID == "" {
		return nil, engerr.InvalidArgument("character ID is required")
	}

	entries, err := s.combatLog.ListByCharacter(ctx, characterID, limit)
	if err != nil {
		return nil, engerr.Wrapf(err, "failed to list combat log for %s", characterID)
	}
	return entries, nil
}

// load fetches characters concurrently and checks they play by this ruleset.
// Duplicate ids share one instance.
func (s *service) load(ctx context.Context, ids ...string) (map[string]*character.Character, error) {
	unique := uniqueSorted(ids)
	chars := make([]*character.Character, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range unique {
		g.Go(func() error {
			char, err := s.characters.Get(gctx, id)
			if err != nil {
				return engerr.Wrapf(err, "failed to get character %s", id)
			}
			chars[i] = char
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	system := s.resolver.Ruleset().Name
	loaded := make(map[string]*character.Character, len(unique))
	for _, char := range chars {
		if char.System != system {
			return nil, engerr.Validationf("character %s plays %s, not %s", char.ID, char.System, system).
				WithMeta("character_id", char.ID)
		}
		loaded[char.ID] = char
	}
	return loaded, nil
}

// save persists characters concurrently, once per distinct character
func (s *service) save(ctx context.Context, chars ...*character.Character) error {
	seen := make(map[string]struct{}, len(chars))

	g, gctx := errgroup.WithContext(ctx)
	for _, char := range chars {
		if _, ok := seen[char.ID]; ok {
			continue
		}
		seen[char.ID] = struct{}{}

		g.Go(func() error {
			if err := s.characters.Update(gctx, char); err != nil {
				return engerr.Wrapf(err, "failed to save character %s", char.ID)
			}
			return nil
		})
	}
	return g.Wait()
}

// appendLog records an entry; a failing combat log never fails the operation
func (s *service) appendLog(ctx context.Context, entry *combatlog.Entry, result any) {
	entry.ID = s.uuidGenerator.New()

	data, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("failed to encode combat log result", "entry_id", entry.ID, "error", err)
	} else {
		entry.Result = data
	}

	if err := s.combatLog.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to append combat log entry",
			"entry_id", entry.ID,
			"character_id", entry.CharacterID,
			"kind", entry.Kind,
			"error", err)
	}
}

// removed returns the display names of effects present before but not after
func (s *service) removed(before, after []effects.ActiveEffect) []string {
	remaining := make(map[string]struct{}, len(after))
	for _, effect := range after {
		remaining[effect.EffectID] = struct{}{}
	}

	var names []string
	for _, effect := range before {
		if _, ok := remaining[effect.EffectID]; ok {
			continue
		}
		names = append(names, s.displayName(effect.EffectID))
	}
	return names
}

func (s *service) displayName(effectID string) string {
	if def, ok := s.lookup.Definition(effectID); ok {
		return def.DisplayName()
	}
	return effectID
}
