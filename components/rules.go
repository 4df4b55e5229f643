package components

import "fmt"

// Delta is an absolute (dx, dy) displacement.
type Delta struct {
	DX, DY int
}

// Profile holds the role/era dependent constants of an animal.
type Profile struct {
	MaxCooldown int    // Cooldown after an ability use (0 = no cooldown)
	AlwaysReady bool   // Ability never gated by cooldown
	Range       int    // Search window for ability targets
	Ability     string // Display name of the special move
	shapes      map[Delta]bool
}

// Allows reports whether the absolute delta matches one of the ability shapes.
func (p Profile) Allows(dx, dy int) bool {
	return p.shapes[Delta{DX: dx, DY: dy}]
}

// Shapes returns the number of distinct deltas the ability can reach.
func (p Profile) Shapes() int {
	return len(p.shapes)
}

const (
	roleCount = int(RolePrey) + 1
	eraCount  = int(EraFuture) + 1
)

// Default profile constants.
const (
	DefaultMaxCooldown = 2
	DefaultRange       = 2
)

var abilityNames = [roleCount]string{
	RoleApex:     "Sprint",
	RolePredator: "Dash",
	RolePrey:     "Hop",
}

// profiles is indexed [era][role]. Every entry is filled by buildProfiles.
var profiles = buildProfiles()

func buildProfiles() [eraCount][roleCount]Profile {
	var t [eraCount][roleCount]Profile

	set := func(era Era, role Role, maxCooldown, rng int, deltas ...[]Delta) {
		shapes := make(map[Delta]bool)
		for _, group := range deltas {
			for _, d := range group {
				shapes[d] = true
			}
		}
		t[era][role] = Profile{
			MaxCooldown: maxCooldown,
			Range:       rng,
			Ability:     abilityNames[role],
			shapes:      shapes,
		}
	}

	set(EraPast, RoleApex, DefaultMaxCooldown, DefaultRange, straight(2))
	set(EraPast, RolePredator, DefaultMaxCooldown, DefaultRange, straight(2))
	set(EraPast, RolePrey, DefaultMaxCooldown, DefaultRange, exact(Delta{1, 1}, Delta{2, 1}, Delta{1, 2}))

	set(EraPresent, RoleApex, 3, 3, straight(1, 2, 3), diagonal(1, 2, 3))
	set(EraPresent, RolePredator, 0, DefaultRange, within(2))
	set(EraPresent, RolePrey, 3, DefaultRange, straight(2), diagonal(2))

	set(EraFuture, RoleApex, 3, 3, within(3))
	set(EraFuture, RolePredator, DefaultMaxCooldown, DefaultRange, straight(2), diagonal(2))
	set(EraFuture, RolePrey, DefaultMaxCooldown, 3, straight(3), diagonal(3))

	// Present predators dash whenever they like; kept explicit rather than
	// relying on a zero max cooldown.
	t[EraPresent][RolePredator].AlwaysReady = true

	return t
}

// ProfileFor returns the profile of the (era, role) pair.
func ProfileFor(era Era, role Role) Profile {
	if int(era) >= eraCount || int(role) >= roleCount {
		panic(fmt.Sprintf("components: no profile for era=%d role=%d", era, role))
	}
	return profiles[era][role]
}

func straight(lengths ...int) []Delta {
	out := make([]Delta, 0, len(lengths)*2)
	for _, l := range lengths {
		out = append(out, Delta{0, l}, Delta{l, 0})
	}
	return out
}

func diagonal(lengths ...int) []Delta {
	out := make([]Delta, 0, len(lengths))
	for _, l := range lengths {
		out = append(out, Delta{l, l})
	}
	return out
}

func within(r int) []Delta {
	var out []Delta
	for dx := 0; dx <= r; dx++ {
		for dy := 0; dy <= r; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out = append(out, Delta{dx, dy})
		}
	}
	return out
}

func exact(ds ...Delta) []Delta {
	return ds
}
