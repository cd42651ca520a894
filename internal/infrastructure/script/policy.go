// Package script runs enemy transition policies written in tengo.
//
// A policy script reads the perception globals (current_mode, has_target,
// distance, detection_range, attack_range, can_attack, health_percent) and
// assigns the global mode to "patrol", "chase" or "attack".
package script

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/younwookim/actorsim/internal/application/system"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
)

// ErrNoMode is returned when a script leaves mode unset or unrecognized
var ErrNoMode = errors.New("script did not set a valid mode")

// maxAllocs bounds a single decision
const maxAllocs = 5000

var inputs = []string{
	"current_mode", "has_target", "distance", "detection_range",
	"attack_range", "can_attack", "health_percent",
}

// Policy is a compiled tengo script implementing system.TransitionPolicy.
// A failing run falls back to the built-in table for that decision.
type Policy struct {
	name     string
	compiled *tengo.Compiled
	fallback system.TablePolicy
	logger   *log.Logger
	failures int
}

// NewPolicy compiles src. The math and text stdlib modules are importable.
func NewPolicy(name string, src []byte, logger *log.Logger) (*Policy, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	s := tengo.NewScript(src)
	for _, in := range inputs {
		if err := s.Add(in, defaultInput(in)); err != nil {
			return nil, fmt.Errorf("script %s: %w", name, err)
		}
	}
	s.SetImports(stdlib.GetModuleMap("math", "text"))
	s.SetMaxAllocs(maxAllocs)

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	return &Policy{name: name, compiled: compiled, logger: logger}, nil
}

func defaultInput(name string) interface{} {
	switch name {
	case "current_mode":
		return system.ModePatrol.String()
	case "has_target", "can_attack":
		return false
	default:
		return 0.0
	}
}

// Name returns the script name
func (p *Policy) Name() string {
	return p.name
}

// Failures counts decisions that fell back to the table
func (p *Policy) Failures() int {
	return p.failures
}

// Decide implements system.TransitionPolicy
func (p *Policy) Decide(in system.Perception) system.AIMode {
	mode, err := p.Evaluate(in)
	if err != nil {
		p.failures++
		if p.failures == 1 {
			p.logger.Printf("AI script %s failed, using the built-in table: %v", p.name, err)
		}
		return p.fallback.Decide(in)
	}
	return mode
}

// Evaluate runs the script once and parses its mode. A panic inside the VM,
// such as an integer division by zero, is returned as an error.
func (p *Policy) Evaluate(in system.Perception) (mode system.AIMode, err error) {
	defer func() {
		if r := recover(); r != nil {
			mode, err = system.ModePatrol, fmt.Errorf("script %s panicked: %v", p.name, r)
		}
	}()

	values := map[string]interface{}{
		"current_mode":    in.Mode.String(),
		"has_target":      in.HasTarget,
		"distance":        in.Distance,
		"detection_range": in.DetectionRange,
		"attack_range":    in.AttackRange,
		"can_attack":      in.CanAttack,
		"health_percent":  in.HealthPercent,
	}
	for name, v := range values {
		if err := p.compiled.Set(name, v); err != nil {
			return system.ModePatrol, err
		}
	}
	if err := p.compiled.Run(); err != nil {
		return system.ModePatrol, err
	}

	raw, _ := p.compiled.Get("mode").Value().(string)
	return ParseMode(raw)
}

// ParseMode maps a script mode name onto an AIMode
func ParseMode(s string) (system.AIMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "patrol":
		return system.ModePatrol, nil
	case "chase":
		return system.ModeChase, nil
	case "attack", "attacking":
		return system.ModeAttacking, nil
	default:
		return system.ModePatrol, fmt.Errorf("%w: %q", ErrNoMode, s)
	}
}

// LoadPolicies compiles the scripts named by the enemy tuning. Types without
// a script are left out so they use the built-in table.
func LoadPolicies(loader *config.Loader, enemies map[string]config.EnemyConfig, logger *log.Logger) (map[string]system.TransitionPolicy, error) {
	policies := make(map[string]system.TransitionPolicy)
	compiled := make(map[string]*Policy)
	for typ, e := range enemies {
		name := e.AI.Script
		if name == "" {
			continue
		}
		if p, ok := compiled[name]; ok {
			policies[typ] = p
			continue
		}
		src, err := loader.LoadScript(name)
		if err != nil {
			return nil, err
		}
		p, err := NewPolicy(name, src, logger)
		if err != nil {
			return nil, err
		}
		compiled[name] = p
		policies[typ] = p
	}
	return policies, nil
}
