// Package components defines ECS components and rule tables for the food chain game.
package components

// Kind discriminates the two entity variants that can occupy a board cell.
type Kind uint8

const (
	KindFood   Kind = iota // Passive, consumable
	KindAnimal             // Active, has a role and era
)

// Role determines edibility rules and ability geometry.
type Role uint8

const (
	RoleApex Role = iota
	RolePredator
	RolePrey
)

// Era selects the ability geometry table and cooldown defaults.
type Era uint8

const (
	EraPast Era = iota
	EraPresent
	EraFuture
)

// MoveKind classifies a requested relocation.
type MoveKind uint8

const (
	MoveInvalid MoveKind = iota // Not reachable this turn
	MoveWalk                    // Ordinary adjacent step
	MoveAbility                 // Special move, requires cooldown 0
	MoveStay                    // Target is the current cell
)

// Roles returns all roles in declaration order.
func Roles() []Role {
	return []Role{RoleApex, RolePredator, RolePrey}
}

// Eras returns all eras in declaration order.
func Eras() []Era {
	return []Era{EraPast, EraPresent, EraFuture}
}

// Tag is carried by every entity on the board.
// Kind is the union discriminant; Animal entities additionally carry an Animal component.
type Tag struct {
	Kind   Kind
	Name   string
	Symbol rune
}

// NewFoodTag returns the tag for a food entity.
func NewFoodTag(name string) Tag {
	return Tag{Kind: KindFood, Name: name, Symbol: 'F'}
}

// NewAnimalTag returns the tag for an animal entity; the symbol is the first letter of its name.
func NewAnimalTag(name string) Tag {
	symbol := '?'
	for _, r := range name {
		symbol = r
		break
	}
	return Tag{Kind: KindAnimal, Name: name, Symbol: symbol}
}
