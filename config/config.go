// Package config provides the typed, validated configuration for a
// BioSpring simulation: one group per engine subsystem, bootstrapped from
// embedded defaults and overridable either by loading a YAML overlay or by
// setting individual "group.key = value" entries at runtime.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lbt-cnrs/biospring/bioerr"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every simulation configuration group.
type Config struct {
	Simulation      SimulationConfig      `yaml:"simulation"`
	Spring          SpringConfig          `yaml:"spring"`
	Steric          StericConfig          `yaml:"steric"`
	Hydrophobicity  HydrophobicityConfig  `yaml:"hydrophobicity"`
	Coulomb         CoulombConfig         `yaml:"coulomb"`
	Impala          ImpalaConfig          `yaml:"impala"`
	InsertionVector InsertionVectorConfig `yaml:"insertionvector"`
	Viscosity       ViscosityConfig       `yaml:"viscosity"`
	Probe           ProbeConfig           `yaml:"probe"`
	RigidBody       RigidBodyConfig       `yaml:"rigidbody"`
	PDBTrajectory   TrajectoryConfig      `yaml:"pdbtrajectory"`
	XTCTrajectory   TrajectoryConfig      `yaml:"xtctrajectory"`
	CSVSampling     TrajectoryConfig      `yaml:"csvsampling"`
	PotentialGrid   GridFileConfig        `yaml:"potentialgrid"`
	DensityGrid     GridFileConfig        `yaml:"densitygrid"`

	set map[string]bool
}

// SimulationConfig controls the integration loop.
type SimulationConfig struct {
	NbSteps    int     `yaml:"nbsteps"`
	Timestep   float64 `yaml:"timestep"`
	SampleRate int     `yaml:"samplerate"`
}

// SpringConfig controls the Hookean spring kernel.
type SpringConfig struct {
	Enable bool    `yaml:"enable"`
	Scale  float64 `yaml:"scale"`
	Cutoff float64 `yaml:"cutoff"`
}

// StericConfig controls the steric repulsion kernel.
type StericConfig struct {
	Enable    bool    `yaml:"enable"`
	GridScale float64 `yaml:"gridscale"`
	Cutoff    float64 `yaml:"cutoff"`
	Mode      string  `yaml:"mode"`
}

// HydrophobicityConfig controls the hydrophobic coupling kernel.
type HydrophobicityConfig struct {
	Enable bool    `yaml:"enable"`
	Scale  float64 `yaml:"scale"`
	Cutoff float64 `yaml:"cutoff"`
}

// CoulombConfig controls the electrostatic kernel.
type CoulombConfig struct {
	Enable     bool    `yaml:"enable"`
	Scale      float64 `yaml:"scale"`
	Cutoff     float64 `yaml:"cutoff"`
	Dielectric float64 `yaml:"dielectric"`
}

// ImpalaConfig controls the IMPALA membrane-insertion kernel. The
// upper/lower offset and curvature pairs describe the (possibly curved,
// possibly doubled) membrane midsurface(s) a particle's burial is measured
// against. All four are zero for a single flat membrane centred at z = 0;
// any non-zero value switches the kernel to two offset membranes.
type ImpalaConfig struct {
	Enable         bool    `yaml:"enable"`
	Scale          float64 `yaml:"scale"`
	UpperOffset    float64 `yaml:"upperoffset"`
	LowerOffset    float64 `yaml:"loweroffset"`
	UpperCurvature float64 `yaml:"uppercurvature"`
	LowerCurvature float64 `yaml:"lowercurvature"`
}

// InsertionVectorConfig names the two particles (by external id) whose
// separation defines the automatic insertion-angle sampling axis.
type InsertionVectorConfig struct {
	Enable bool  `yaml:"enable"`
	Vector [2]int `yaml:"vector"`
}

// ViscosityConfig controls the damping force applied to dynamic particles.
type ViscosityConfig struct {
	Enable bool    `yaml:"enable"`
	Value  float64 `yaml:"value"`
}

// ProbeConfig controls the optional free probe particle used to sample
// interaction energies at a point.
type ProbeConfig struct {
	Enable              bool    `yaml:"enable"`
	EnableElectrostatic bool    `yaml:"enableelectrostatic"`
	EnableSteric        bool    `yaml:"enablesteric"`
	X                   float64 `yaml:"x"`
	Y                   float64 `yaml:"y"`
	Z                   float64 `yaml:"z"`
	Mass                float64 `yaml:"mass"`
	Epsilon             float64 `yaml:"epsilon"`
	Radius              float64 `yaml:"radius"`
	Charge              float64 `yaml:"charge"`
}

// RigidBodyConfig controls rigid-body group integration, and its two
// sampling variants: IMPALA automatic insertion-angle sweep and Monte
// Carlo Metropolis sampling.
type RigidBodyConfig struct {
	Enable                    bool    `yaml:"enable"`
	EnableSampling            bool    `yaml:"enablesampling"`
	EnableMonteCarlo          bool    `yaml:"enablemontecarlo"`
	MonteCarloTranslationNorm float64 `yaml:"montecarlo_translation_norm"`
	MonteCarloRotationNorm    float64 `yaml:"montecarlo_rotation_norm"`
	MonteCarloTemperature     float64 `yaml:"montecarlo_temperature"`
}

// TrajectoryConfig controls one trajectory output stream.
type TrajectoryConfig struct {
	Enable    bool   `yaml:"enable"`
	Path      string `yaml:"path"`
	Frequency int    `yaml:"frequency"`
}

// GridFileConfig controls one grid-sampled field input.
type GridFileConfig struct {
	Enable bool    `yaml:"enable"`
	Path   string  `yaml:"path"`
	Scale  float64 `yaml:"scale"`
}

var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load builds a configuration from the embedded defaults, overlaying a
// YAML file at path if one is given.
func Load(path string) (*Config, error) {
	cfg := &Config{set: make(map[string]bool)}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, bioerr.Wrap(bioerr.KindResource, err, "reading configuration file %q", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, bioerr.Wrap(bioerr.KindConfiguration, err, "parsing configuration file %q", path)
		}
	}
	return cfg, nil
}

// Set assigns a single "group.key = value" configuration entry. It is the
// in-memory equivalent of one line of the original MSP configuration
// format, without the file parser: group/key resolution and value
// conversion follow the same die-fast policy — an unrecognized group, an
// unrecognized key within a known group, a value that cannot convert to
// the field's type, or the same key given twice in one load, are all
// fatal configuration errors.
func (c *Config) Set(key, value string) error {
	group, field, ok := strings.Cut(key, ".")
	if !ok {
		return bioerr.New(bioerr.KindConfiguration, "malformed configuration key %q: expected \"group.key\"", key)
	}

	setter, ok := c.fieldSetters()[group]
	if !ok {
		return bioerr.New(bioerr.KindConfiguration, "unknown configuration group %q", group)
	}

	if c.set == nil {
		c.set = make(map[string]bool)
	}
	if c.set[key] {
		return bioerr.New(bioerr.KindConfiguration, "duplicate configuration key %q", key)
	}

	if err := setter(field, value); err != nil {
		return err
	}
	c.set[key] = true
	return nil
}

type fieldSetter func(field, value string) error

func (c *Config) fieldSetters() map[string]fieldSetter {
	return map[string]fieldSetter{
		"simulation": func(field, value string) error {
			switch field {
			case "nbsteps":
				return setInt(&c.Simulation.NbSteps, value)
			case "timestep":
				return setFloat(&c.Simulation.Timestep, value)
			case "samplerate":
				return setInt(&c.Simulation.SampleRate, value)
			}
			return unknownKey("simulation", field)
		},
		"spring": func(field, value string) error {
			switch field {
			case "enable":
				return setBool(&c.Spring.Enable, value)
			case "scale":
				return setFloat(&c.Spring.Scale, value)
			case "cutoff":
				return setFloat(&c.Spring.Cutoff, value)
			}
			return unknownKey("spring", field)
		},
		"steric": func(field, value string) error {
			switch field {
			case "enable":
				return setBool(&c.Steric.Enable, value)
			case "gridscale":
				return setFloat(&c.Steric.GridScale, value)
			case "cutoff":
				return setFloat(&c.Steric.Cutoff, value)
			case "mode":
				c.Steric.Mode = value
				return nil
			}
			return unknownKey("steric", field)
		},
		"hydrophobicity": func(field, value string) error {
			switch field {
			case "enable":
				return setBool(&c.Hydrophobicity.Enable, value)
			case "scale":
				return setFloat(&c.Hydrophobicity.Scale, value)
			case "cutoff":
				return setFloat(&c.Hydrophobicity.Cutoff, value)
			}
			return unknownKey("hydrophobicity", field)
		},
		"coulomb": func(field, value string) error {
			switch field {
			case "enable":
				return setBool(&c.Coulomb.Enable, value)
			case "scale":
				return setFloat(&c.Coulomb.Scale, value)
			case "cutoff":
				return setFloat(&c.Coulomb.Cutoff, value)
			case "dielectric":
				return setFloat(&c.Coulomb.Dielectric, value)
			}
			return unknownKey("coulomb", field)
		},
		"impala": func(field, value string) error {
			switch field {
			case "enable":
				return setBool(&c.Impala.Enable, value)
			case "scale":
				return setFloat(&c.Impala.Scale, value)
			case "upperoffset":
				return setFloat(&c.Impala.UpperOffset, value)
			case "loweroffset":
				return setFloat(&c.Impala.LowerOffset, value)
			case "uppercurvature":
				return setFloat(&c.Impala.UpperCurvature, value)
			case "lowercurvature":
				return setFloat(&c.Impala.LowerCurvature, value)
			}
			return unknownKey("impala", field)
		},
		"insertionvector": func(field, value string) error {
			switch field {
			case "enable":
				return setBool(&c.InsertionVector.Enable, value)
			case "vector":
				return setIntPair(&c.InsertionVector.Vector, value)
			}
			return unknownKey("insertionvector", field)
		},
		"viscosity": func(field, value string) error {
			switch field {
			case "enable":
				return setBool(&c.Viscosity.Enable, value)
			case "value":
				return setFloat(&c.Viscosity.Value, value)
			}
			return unknownKey("viscosity", field)
		},
		"probe": func(field, value string) error {
			switch field {
			case "enable":
				return setBool(&c.Probe.Enable, value)
			case "enableelectrostatic":
				return setBool(&c.Probe.EnableElectrostatic, value)
			case "enablesteric":
				return setBool(&c.Probe.EnableSteric, value)
			case "x":
				return setFloat(&c.Probe.X, value)
			case "y":
				return setFloat(&c.Probe.Y, value)
			case "z":
				return setFloat(&c.Probe.Z, value)
			case "mass":
				return setFloat(&c.Probe.Mass, value)
			case "epsilon":
				return setFloat(&c.Probe.Epsilon, value)
			case "radius":
				return setFloat(&c.Probe.Radius, value)
			case "charge":
				return setFloat(&c.Probe.Charge, value)
			}
			return unknownKey("probe", field)
		},
		"rigidbody": func(field, value string) error {
			switch field {
			case "enable":
				return setBool(&c.RigidBody.Enable, value)
			case "enablesampling":
				return setBool(&c.RigidBody.EnableSampling, value)
			case "enablemontecarlo":
				return setBool(&c.RigidBody.EnableMonteCarlo, value)
			case "montecarlo_translation_norm":
				return setFloat(&c.RigidBody.MonteCarloTranslationNorm, value)
			case "montecarlo_rotation_norm":
				return setFloat(&c.RigidBody.MonteCarloRotationNorm, value)
			case "montecarlo_temperature":
				return setFloat(&c.RigidBody.MonteCarloTemperature, value)
			}
			return unknownKey("rigidbody", field)
		},
		"pdbtrajectory": trajectorySetter(&c.PDBTrajectory),
		"xtctrajectory": trajectorySetter(&c.XTCTrajectory),
		"csvsampling":   trajectorySetter(&c.CSVSampling),
		"potentialgrid": gridFileSetter(&c.PotentialGrid),
		"densitygrid":   gridFileSetter(&c.DensityGrid),
	}
}

func trajectorySetter(cfg *TrajectoryConfig) fieldSetter {
	return func(field, value string) error {
		switch field {
		case "enable":
			return setBool(&cfg.Enable, value)
		case "path":
			cfg.Path = value
			return nil
		case "frequency":
			return setInt(&cfg.Frequency, value)
		}
		return unknownKey("trajectory", field)
	}
}

func gridFileSetter(cfg *GridFileConfig) fieldSetter {
	return func(field, value string) error {
		switch field {
		case "enable":
			return setBool(&cfg.Enable, value)
		case "path":
			cfg.Path = value
			return nil
		case "scale":
			return setFloat(&cfg.Scale, value)
		}
		return unknownKey("grid", field)
	}
}

func unknownKey(group, field string) error {
	return bioerr.New(bioerr.KindConfiguration, "unknown parameter %q in group %q", field, group)
}

func setInt(dst *int, value string) error {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return bioerr.Wrap(bioerr.KindConfiguration, err, "cannot convert %q to an integer", value)
	}
	*dst = v
	return nil
}

func setFloat(dst *float64, value string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return bioerr.Wrap(bioerr.KindConfiguration, err, "cannot convert %q to a float", value)
	}
	*dst = v
	return nil
}

func setIntPair(dst *[2]int, value string) error {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return bioerr.New(bioerr.KindConfiguration, "expected two comma-separated integers, got %q", value)
	}
	var pair [2]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return bioerr.Wrap(bioerr.KindConfiguration, err, "cannot convert %q to an integer", p)
		}
		pair[i] = v
	}
	*dst = pair
	return nil
}

// boolTrueValues and boolFalseValues mirror the original parser's accepted
// spellings.
var (
	boolTrueValues  = map[string]bool{"true": true, "True": true, "1": true, "on": true, "yes": true}
	boolFalseValues = map[string]bool{"false": true, "False": true, "0": true, "off": true, "no": true}
)

func setBool(dst *bool, value string) error {
	v := strings.TrimSpace(value)
	if boolTrueValues[v] {
		*dst = true
		return nil
	}
	if boolFalseValues[v] {
		*dst = false
		return nil
	}
	return bioerr.New(bioerr.KindConfiguration, "cannot convert %q to a boolean", value)
}
