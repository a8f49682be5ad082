package config

import "gopkg.in/yaml.v3"

// Switch is a tri-ish boolean that reads naturally in a YAML options file
// ("enabled"/"disabled") instead of a bare true/false, matching how the
// spec's Options surface (§6) names every toggle Enabled|Disabled.
type Switch bool

const (
	Enabled  Switch = true
	Disabled Switch = false
)

func (s *Switch) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		var b bool
		if err2 := value.Decode(&b); err2 != nil {
			return err
		}
		*s = Switch(b)
		return nil
	}
	switch text {
	case "Enabled", "enabled", "true":
		*s = Enabled
	case "Disabled", "disabled", "false", "":
		*s = Disabled
	default:
		return &InvalidSwitchError{Value: text}
	}
	return nil
}

func (s Switch) MarshalYAML() (interface{}, error) {
	if s {
		return "Enabled", nil
	}
	return "Disabled", nil
}

// InvalidSwitchError reports a YAML Switch value that was neither
// "Enabled" nor "Disabled".
type InvalidSwitchError struct {
	Value string
}

func (e *InvalidSwitchError) Error() string {
	return "apisearch: invalid switch value: " + e.Value
}

// Mode selects the Initialization Strategy (§4.4).
type Mode int

const (
	Primary Mode = iota
	Secondary
)

func (m Mode) String() string {
	if m == Secondary {
		return "Secondary"
	}
	return "Primary"
}

func (m Mode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}
	switch text {
	case "Secondary", "secondary":
		*m = Secondary
	default:
		*m = Primary
	}
	return nil
}

// Options is the configuration record recognized across the matching
// pipeline (§6). It is immutable once constructed; every matcher reads it
// off the Context it was seeded into.
type Options struct {
	GreedyMatching        Switch `yaml:"greedyMatching"`
	RespectNameDifference Switch `yaml:"respectNameDifference"`
	IgnoreParameterStyle  Switch `yaml:"ignoreParameterStyle"`
	IgnoreCase            Switch `yaml:"ignoreCase"`
	SwapOrderDepth        int    `yaml:"swapOrderDepth"`
	ComplementDepth       int    `yaml:"complementDepth"`
	Parallel              Switch `yaml:"parallel"`
	Mode                  Mode   `yaml:"mode"`
}

// DefaultOptions returns the spec's default Options (§6): both reshape
// budgets at 2, every switch Disabled except IgnoreParameterStyle which a
// bare structural search needs to be useful out of the box, Primary mode.
func DefaultOptions() Options {
	return Options{
		GreedyMatching:        Disabled,
		RespectNameDifference: Disabled,
		IgnoreParameterStyle:  Enabled,
		IgnoreCase:            Disabled,
		SwapOrderDepth:        DefaultSwapOrderDepth,
		ComplementDepth:       DefaultComplementDepth,
		Parallel:              Disabled,
		Mode:                  Primary,
	}
}

// Clamp enforces §7's "options out of range are clamped at construction":
// negative depths become 0 rather than erroring.
func (o Options) Clamp() Options {
	if o.SwapOrderDepth < 0 {
		o.SwapOrderDepth = 0
	}
	if o.ComplementDepth < 0 {
		o.ComplementDepth = 0
	}
	return o
}

// ParseOptionsYAML parses an Options record from a YAML document, applying
// DefaultOptions first so a partial file only overrides what it sets.
func ParseOptionsYAML(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, err
	}
	return opts.Clamp(), nil
}
