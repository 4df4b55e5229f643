package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/foodchain/components"
)

//go:embed foodchains.yaml
var foodChainsYAML []byte

// ErrNoFoodChain is returned when an era has no usable food chain.
var ErrNoFoodChain = errors.New("no food chain for era")

// FoodChain names the four species of one game.
type FoodChain struct {
	Apex     string `yaml:"apex"`
	Predator string `yaml:"predator"`
	Prey     string `yaml:"prey"`
	Food     string `yaml:"food"`
}

// ForRole returns the name of the animal playing role.
func (fc FoodChain) ForRole(r components.Role) string {
	switch r {
	case components.RoleApex:
		return fc.Apex
	case components.RolePredator:
		return fc.Predator
	default:
		return fc.Prey
	}
}

func (fc FoodChain) complete() bool {
	for _, n := range []string{fc.Apex, fc.Predator, fc.Prey, fc.Food} {
		if strings.TrimSpace(n) == "" {
			return false
		}
	}
	return true
}

// FoodChains holds the chains available per era, keyed by lower-case era name.
type FoodChains map[string][]FoodChain

// LoadFoodChains reads chains from path, or the embedded set if path is empty.
func LoadFoodChains(path string) (FoodChains, error) {
	data := foodChainsYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading food chains: %w", err)
		}
	}
	return ParseFoodChains(data)
}

// ParseFoodChains decodes a food chain document.
func ParseFoodChains(data []byte) (FoodChains, error) {
	raw := make(map[string][]FoodChain)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing food chains: %w", err)
	}
	chains := make(FoodChains, len(raw))
	for key, list := range raw {
		era, err := components.ParseEra(key)
		if err != nil {
			return nil, fmt.Errorf("food chains: %w", err)
		}
		k := strings.ToLower(era.String())
		for i, fc := range list {
			if !fc.complete() {
				return nil, fmt.Errorf("food chains: %s entry %d needs apex, predator, prey and food", k, i)
			}
		}
		chains[k] = append(chains[k], list...)
	}
	return chains, nil
}

// Names picks one chain for era using rng.
func (c FoodChains) Names(era components.Era, rng *rand.Rand) (FoodChain, error) {
	list := c[strings.ToLower(era.String())]
	if len(list) == 0 {
		return FoodChain{}, fmt.Errorf("%w %s", ErrNoFoodChain, era)
	}
	return list[rng.Intn(len(list))], nil
}
