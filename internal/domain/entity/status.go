package entity

import (
	"errors"
	"fmt"
)

// ErrUnknownStatusKind is returned when an effect name has no StatusKind
var ErrUnknownStatusKind = errors.New("unknown status effect kind")

// StatusKind selects the single stat an effect multiplies
type StatusKind int

const (
	StatusSpeedBoost StatusKind = iota
	StatusJumpBoost
	StatusDamageUp
	StatusHealthIncrease
	StatusFeatherFall
	StatusKnockbackResist
	StatusPogoPower
	StatusHealingSpeed
)

var statusNames = map[StatusKind]string{
	StatusSpeedBoost:      "SpeedBoost",
	StatusJumpBoost:       "JumpBoost",
	StatusDamageUp:        "DamageUp",
	StatusHealthIncrease:  "HealthIncrease",
	StatusFeatherFall:     "FeatherFall",
	StatusKnockbackResist: "KnockbackResist",
	StatusPogoPower:       "PogoPower",
	StatusHealingSpeed:    "HealingSpeed",
}

// String returns the item-table name of the kind
func (k StatusKind) String() string {
	if name, ok := statusNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseStatusKind maps an item-table name to a StatusKind
func ParseStatusKind(name string) (StatusKind, error) {
	for k, n := range statusNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatusKind, name)
}

// StatusEffect is a timed multiplier on one stat
type StatusEffect struct {
	Kind       StatusKind
	Multiplier float64
	Duration   float64 // seconds
}
