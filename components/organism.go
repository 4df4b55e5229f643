package components

// Animal holds the mutable state of an active agent.
// Position is owned by the board, not stored here.
type Animal struct {
	Role        Role
	Era         Era
	Alive       bool
	Score       int // signed, no floor or ceiling
	Cooldown    int // ticks until the ability is ready, in [0, MaxCooldown]
	MaxCooldown int
}

// NewAnimal returns a living animal with its cooldown at the role/era maximum.
func NewAnimal(role Role, era Era) Animal {
	p := ProfileFor(era, role)
	return Animal{
		Role:        role,
		Era:         era,
		Alive:       true,
		Cooldown:    p.MaxCooldown,
		MaxCooldown: p.MaxCooldown,
	}
}

// Profile returns the role/era constants for this animal.
func (a *Animal) Profile() Profile {
	return ProfileFor(a.Era, a.Role)
}

// Classify determines what kind of move from -> to would be.
// Occupancy and edibility are not considered here.
func (a *Animal) Classify(from, to Cell) MoveKind {
	if !a.Alive {
		return MoveInvalid
	}
	if from == to {
		return MoveStay
	}

	dx, dy := from.Delta(to)
	if max(dx, dy) == 1 {
		return MoveWalk
	}
	if !a.AbilityAvailable() {
		return MoveInvalid
	}
	if a.Profile().Allows(dx, dy) {
		return MoveAbility
	}
	return MoveInvalid
}

// CanEat reports whether this animal may consume an occupant of the given kind.
// victimRole is ignored for food.
func (a *Animal) CanEat(kind Kind, victimRole Role) bool {
	switch a.Role {
	case RolePrey:
		return kind == KindFood
	case RoleApex:
		return kind == KindAnimal && victimRole != RoleApex
	case RolePredator:
		return kind == KindAnimal && victimRole == RolePrey
	}
	return false
}

// AbilityAvailable reports whether a special move may be used this turn.
func (a *Animal) AbilityAvailable() bool {
	if a.Profile().AlwaysReady {
		return true
	}
	return a.Cooldown == 0
}

// AbilityRange is the half-width of the window searched for ability targets.
func (a *Animal) AbilityRange() int {
	return a.Profile().Range
}

// SearchRange is AbilityRange when the ability is ready, otherwise 1.
func (a *Animal) SearchRange() int {
	if !a.AbilityAvailable() {
		return 1
	}
	return a.AbilityRange()
}

// TriggerCooldown resets the cooldown after an ability use.
func (a *Animal) TriggerCooldown() {
	if a.MaxCooldown <= 0 {
		return
	}
	a.Cooldown = a.MaxCooldown
}

// Tick decrements the cooldown by one, floored at zero.
func (a *Animal) Tick() {
	if a.Cooldown > 0 {
		a.Cooldown--
	}
}

// SetCooldown sets the cooldown, clamped to [0, MaxCooldown].
func (a *Animal) SetCooldown(v int) {
	a.Cooldown = min(max(v, 0), a.MaxCooldown)
}

// AddScore adjusts the score by delta (which may be negative).
func (a *Animal) AddScore(delta int) {
	a.Score += delta
}

// Die marks the animal as eaten.
func (a *Animal) Die() {
	a.Alive = false
}

// Revive brings the animal back after a respawn.
func (a *Animal) Revive() {
	a.Alive = true
}
