package physics

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// Config is the engine tuning surface. A non-positive budget or epsilon falls
// back to its default at engine construction; gravity is taken as-is.
type Config struct {
	// Gravity is seeded into every dynamic object's acceleration at
	// registration time.
	Gravity [3]float32 `yaml:"gravity"`
	// ResolutionBudget caps the per-tick penetration correction iterations per
	// object before it is flagged stuck.
	ResolutionBudget int `yaml:"resolution_budget"`
	// ContactEpsilon is the clearance below which a separated pair counts as a
	// touching contact for velocity rejection.
	ContactEpsilon float32 `yaml:"contact_epsilon"`
}

func DefaultConfig() Config {
	return Config{
		Gravity:          [3]float32{0, -10, 0},
		ResolutionBudget: 128,
		ContactEpsilon:   1e-3,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("physics config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("physics config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) gravity() rl.Vector3 {
	return rl.Vector3{X: c.Gravity[0], Y: c.Gravity[1], Z: c.Gravity[2]}
}
