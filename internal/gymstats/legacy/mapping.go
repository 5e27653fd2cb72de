package legacy

import (
	"errors"
	"fmt"
	"math"

	"github.com/BurntSushi/toml"
)

var ErrInvalidMapping = errors.New("invalid superset mapping")

// SupersetRule splits one combined exercise into its target exercises.
type SupersetRule struct {
	Source  string   `toml:"source"`
	Targets []string `toml:"targets"`
	// WeightAdjust scales the source weight per target, e.g. 0.8 when one
	// side of the superset is trained lighter.
	WeightAdjust map[string]float64 `toml:"weight_adjust"`
}

type Mapping struct {
	Supersets []SupersetRule `toml:"superset"`
}

func LoadMapping(path string) (*Mapping, error) {
	var m Mapping
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("decode mapping %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Mapping) Validate() error {
	if len(m.Supersets) == 0 {
		return fmt.Errorf("%w: no superset rules", ErrInvalidMapping)
	}
	seen := make(map[string]bool)
	for i, rule := range m.Supersets {
		if rule.Source == "" {
			return fmt.Errorf("%w: rule %d has no source", ErrInvalidMapping, i)
		}
		if seen[rule.Source] {
			return fmt.Errorf("%w: source %q listed twice", ErrInvalidMapping, rule.Source)
		}
		seen[rule.Source] = true
		if len(rule.Targets) == 0 {
			return fmt.Errorf("%w: %q has no targets", ErrInvalidMapping, rule.Source)
		}
		for _, target := range rule.Targets {
			if target == "" || target == rule.Source {
				return fmt.Errorf("%w: %q has an invalid target %q", ErrInvalidMapping, rule.Source, target)
			}
		}
		for target, factor := range rule.WeightAdjust {
			if factor <= 0 {
				return fmt.Errorf("%w: %q weight adjust for %q must be positive", ErrInvalidMapping, rule.Source, target)
			}
		}
	}
	return nil
}

// TargetWeight applies the rule's weight adjustment, rounded to 0.1 kg.
func (rule SupersetRule) TargetWeight(target string, weight float64) float64 {
	factor, ok := rule.WeightAdjust[target]
	if !ok {
		return weight
	}
	return math.Floor(weight*factor*10+0.5) / 10
}
