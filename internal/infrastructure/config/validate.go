package config

import (
	"errors"
	"fmt"
	"sort"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate reports every problem in the tuning file at once
func (c *TuningConfig) Validate() error {
	var errs []error
	if c.Simulation.FixedStep <= 0 {
		errs = append(errs, invalid("simulation.fixedStep must be positive"))
	}
	if c.Simulation.MaxStepsPerUpdate < 0 {
		errs = append(errs, invalid("simulation.maxStepsPerUpdate must not be negative"))
	}
	errs = append(errs, c.Player.validate()...)

	names := make([]string, 0, len(c.Enemies))
	for name := range c.Enemies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		errs = append(errs, c.Enemies[name].validate(name)...)
	}
	if c.ContactDamage.Interval < 0 {
		errs = append(errs, invalid("contactDamage.interval must not be negative"))
	}
	return errors.Join(errs...)
}

func (p PlayerConfig) validate() []error {
	var errs []error
	if p.Mass <= 0 {
		errs = append(errs, invalid("player.mass must be positive"))
	}
	if p.Size.Width <= 0 || p.Size.Height <= 0 {
		errs = append(errs, invalid("player.size must be positive"))
	}
	if p.Stats.MaxHealth <= 0 {
		errs = append(errs, invalid("player.stats.maxHealth must be positive"))
	}
	if p.Movement.GroundCheck.Radius <= 0 || p.Movement.GroundCheck.Layer == "" {
		errs = append(errs, invalid("player.movement.groundCheck needs a radius and a layer"))
	}
	if p.Movement.WallCheck.Distance <= 0 || p.Movement.WallCheck.Layer == "" {
		errs = append(errs, invalid("player.movement.wallCheck needs a distance and a layer"))
	}
	if p.Movement.JumpBuffer < 0 || p.Movement.CoyoteTime < 0 {
		errs = append(errs, invalid("player.movement jumpBuffer and coyoteTime must not be negative"))
	}
	if p.Combat.AttackDuration <= 0 {
		errs = append(errs, invalid("player.combat.attackDuration must be positive"))
	}
	if p.Healing.CapFraction < 0 || p.Healing.CapFraction > 1 {
		errs = append(errs, invalid("player.healing.capFraction must be within [0,1]"))
	}
	return errs
}

func (e EnemyConfig) validate(name string) []error {
	var errs []error
	if e.Mass <= 0 {
		errs = append(errs, invalid("enemies.%s.mass must be positive", name))
	}
	if e.MaxHealth <= 0 {
		errs = append(errs, invalid("enemies.%s.maxHealth must be positive", name))
	}
	if e.AI.AttackRange > e.AI.DetectionRange {
		errs = append(errs, invalid("enemies.%s.ai.attackRange exceeds detectionRange", name))
	}
	if e.Lunge.Cooldown < 0 || e.Lunge.ChargeTime < 0 {
		errs = append(errs, invalid("enemies.%s.lunge timings must not be negative", name))
	}
	return errs
}

var tileTypes = map[string]bool{
	"ground":          true,
	"wall":            true,
	"damage":          true,
	"hazard":          true,
	"checkpoint":      true,
	"errorCheckpoint": true,
}

// Validate checks the grid and tile mapping
func (c *StageConfig) Validate() error {
	var errs []error
	if c.Size.TileSize <= 0 {
		errs = append(errs, invalid("size.tileSize must be positive"))
	}
	if c.Size.Columns <= 0 {
		errs = append(errs, invalid("size.columns must be positive"))
	}
	for ch, m := range c.TileMapping {
		if len([]rune(ch)) != 1 {
			errs = append(errs, invalid("tileMapping key %q must be one character", ch))
		}
		if !tileTypes[m.Type] {
			errs = append(errs, invalid("tileMapping %q has unknown type %q", ch, m.Type))
		}
	}
	return errors.Join(errs...)
}
