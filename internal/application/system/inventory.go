package system

import (
	"fmt"
	"slices"

	"github.com/younwookim/actorsim/internal/domain/entity"
)

// ItemCatalog is the read-only item table keyed by id
type ItemCatalog struct {
	items map[int]entity.ItemBlueprint
}

// NewItemCatalog wraps already-validated blueprints
func NewItemCatalog(items map[int]entity.ItemBlueprint) *ItemCatalog {
	if items == nil {
		items = map[int]entity.ItemBlueprint{}
	}
	return &ItemCatalog{items: items}
}

// Lookup returns the blueprint for id
func (c *ItemCatalog) Lookup(id int) (entity.ItemBlueprint, bool) {
	bp, ok := c.items[id]
	return bp, ok
}

// Len returns the number of blueprints
func (c *ItemCatalog) Len() int {
	return len(c.items)
}

// Inventory is the ordered list of carried item ids
type Inventory struct {
	ids []int

	ItemAdded entity.Feed[int]
}

// NewInventory creates an inventory holding ids
func NewInventory(ids []int) *Inventory {
	return &Inventory{ids: slices.Clone(ids)}
}

// Add appends an item id
func (inv *Inventory) Add(id int) {
	inv.ids = append(inv.ids, id)
	inv.ItemAdded.Emit(id)
}

// RemoveAt removes the item in slot index
func (inv *Inventory) RemoveAt(index int) error {
	if index < 0 || index >= len(inv.ids) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(inv.ids))
	}
	inv.ids = slices.Delete(inv.ids, index, index+1)
	return nil
}

// At returns the id in slot index
func (inv *Inventory) At(index int) (int, error) {
	if index < 0 || index >= len(inv.ids) {
		return 0, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(inv.ids))
	}
	return inv.ids[index], nil
}

// IDs returns a copy of the carried ids
func (inv *Inventory) IDs() []int {
	return slices.Clone(inv.ids)
}

// Len returns the number of carried items
func (inv *Inventory) Len() int {
	return len(inv.ids)
}

// Reset replaces the contents without notifying
func (inv *Inventory) Reset(ids []int) {
	inv.ids = slices.Clone(ids)
}

// ItemUser consumes inventory items
type ItemUser struct {
	catalog   *ItemCatalog
	inventory *Inventory
	health    *HealthController
	effects   *StatusEffectController

	Used entity.Feed[entity.ItemBlueprint]
}

// NewItemUser creates a new item user. effects may be nil, in which case
// boosters only heal.
func NewItemUser(catalog *ItemCatalog, inventory *Inventory, health *HealthController, effects *StatusEffectController) *ItemUser {
	return &ItemUser{catalog: catalog, inventory: inventory, health: health, effects: effects}
}

// Use consumes the item in slot index.
// A healing item is rejected while health is full.
func (u *ItemUser) Use(index int) error {
	id, err := u.inventory.At(index)
	if err != nil {
		return err
	}
	bp, ok := u.catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownItem, id)
	}
	if bp.HealAmount > 0 && u.health.Current() >= u.health.Max() {
		return fmt.Errorf("%w: %s needs missing health", ErrItemRejected, bp.Name)
	}
	if bp.HealAmount <= 0 && !bp.IsBooster() {
		return fmt.Errorf("%w: %s has no use", ErrItemRejected, bp.Name)
	}

	if bp.IsBooster() && u.effects != nil {
		u.effects.Apply(*bp.Effect)
	}
	u.health.Heal(bp.HealAmount)
	if err := u.inventory.RemoveAt(index); err != nil {
		return err
	}
	u.Used.Emit(bp)
	return nil
}
