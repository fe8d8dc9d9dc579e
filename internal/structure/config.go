package structure

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Handler kinds.
const (
	KindMidpoint = "midpoint" // one waypoint at the centre of the bounding box
	KindCorners  = "corners"  // four waypoints at the top corners of the bounding box
	KindSkip     = "skip"     // ignore the structure
)

// Rule tells the scanner how to turn one structure start into waypoints.
type Rule struct {
	// Name is the waypoint display name.
	Name string `yaml:"name"`
	// Kind is one of KindMidpoint, KindCorners or KindSkip.
	Kind string `yaml:"kind"`
	// Dimensions overrides Config.Dimensions for this structure.
	Dimensions []int `yaml:"dimensions,omitempty"`
}

// Template holds the waypoint fields that do not depend on the structure.
type Template struct {
	Icon       string `yaml:"icon"`
	R          int    `yaml:"r"`
	G          int    `yaml:"g"`
	B          int    `yaml:"b"`
	Enable     bool   `yaml:"enable"`
	Type       string `yaml:"type"`
	Origin     string `yaml:"origin"`
	Persistent bool   `yaml:"persistent"`
}

// Config configures a Scanner. It can be loaded from YAML:
//
//	output_dir: json
//	dimensions: [0]
//	structures:
//	  village: {name: Village, kind: midpoint}
//	  "quark:big_dungeon": {name: Big Dungeon Corner, kind: corners}
//	  fortress: {kind: skip}
type Config struct {
	OutputDir  string          `yaml:"output_dir"`
	Dimensions []int           `yaml:"dimensions"`
	Waypoint   Template        `yaml:"waypoint"`
	Structures map[string]Rule `yaml:"structures"`
}

// DefaultConfig returns the built-in rules for vanilla structures plus the quark big
// dungeon, writing journeymap waypoints into ./json.
//
// Midpoint rules are tagged with dimension 3 and big dungeon corners with dimension 1.
// Dimensions applies to rules that carry none, such as those added from YAML.
func DefaultConfig() *Config {
	midpoint := func(name string) Rule { return Rule{Name: name, Kind: KindMidpoint, Dimensions: []int{3}} }

	return &Config{
		OutputDir:  "json",
		Dimensions: []int{0},
		Waypoint: Template{
			Icon:       "waypoint-normal.png",
			Enable:     true,
			Type:       "Normal",
			Origin:     "journeymap",
			Persistent: true,
		},
		Structures: map[string]Rule{
			"ocean_ruin":        midpoint("Ocean Ruin"),
			"shipwreck":         midpoint("Shipwreck"),
			"mineshaft":         midpoint("Mineshaft"),
			"igloo":             midpoint("Igloo"),
			"jungle_pyramid":    midpoint("Jungle Pyramid"),
			"desert_pyramid":    midpoint("Desert Pyramid"),
			"pillager_outpost":  midpoint("Pillager Outpost"),
			"swamp_hut":         midpoint("Swamp Hut"),
			"village":           midpoint("Village"),
			"quark:big_dungeon": {Name: "Big Dungeon Corner", Kind: KindCorners, Dimensions: []int{1}},
		},
	}
}

// LoadConfig reads a YAML config file and merges it over DefaultConfig.
//
// Structure keys are normalized with NormalizeID, so "minecraft:Village" and "village"
// name the same rule.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if override.OutputDir != "" {
		cfg.OutputDir = override.OutputDir
	}
	if len(override.Dimensions) > 0 {
		cfg.Dimensions = override.Dimensions
	}
	if override.Waypoint != (Template{}) {
		cfg.Waypoint = override.Waypoint
	}
	for key, rule := range override.Structures {
		cfg.Structures[NormalizeID(key)] = rule
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// OverrideDimensions sets dims for every waypoint, dropping per-rule dimensions.
func (c *Config) OverrideDimensions(dims []int) {
	c.Dimensions = append([]int(nil), dims...)
	for key, rule := range c.Structures {
		rule.Dimensions = nil
		c.Structures[key] = rule
	}
}

// Validate checks that every rule has a known kind and a name to display.
func (c *Config) Validate() error {
	for key, rule := range c.Structures {
		switch rule.Kind {
		case KindMidpoint, KindCorners:
			if rule.Name == "" {
				return fmt.Errorf("structure %q: missing name", key)
			}
		case KindSkip:
		default:
			return fmt.Errorf("structure %q: unknown kind %q", key, rule.Kind)
		}
	}

	return nil
}

// Rule returns the rule for a structure key or id.
func (c *Config) Rule(id string) (Rule, bool) {
	rule, ok := c.Structures[NormalizeID(id)]
	return rule, ok
}

// NormalizeID lowercases a structure id and strips the vanilla namespace. Older worlds
// key starts by names such as "Ocean_Ruin", newer ones by "minecraft:ocean_ruin".
func NormalizeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	return strings.TrimPrefix(id, "minecraft:")
}
