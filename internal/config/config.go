package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/goldeneas/vox-sub000/internal/logging"
	"github.com/goldeneas/vox-sub000/internal/meshing"
	"github.com/goldeneas/vox-sub000/internal/voxel"
)

//go:embed config.schema.json
var schemaJSON []byte

const schemaURL = "mem://vox/config.schema.json"

// ErrInvalidConfig wraps schema and semantic validation failures.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the on-disk configuration shared by the command line tools.
type Config struct {
	Log       LogConfig         `yaml:"log"`
	Remesh    RemeshConfig      `yaml:"remesh"`
	Registry  []RegistryEntry   `yaml:"registry"`
	Materials map[string]uint32 `yaml:"materials"`
	Worldgen  WorldgenConfig    `yaml:"worldgen"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

type RemeshConfig struct {
	Workers      int   `yaml:"workers"`
	CacheMaxCost int64 `yaml:"cache_max_cost"`
}

// RegistryEntry assigns a voxel id to a type name.
type RegistryEntry struct {
	Type string `yaml:"type"`
	ID   uint16 `yaml:"id"`
}

type WorldgenConfig struct {
	Seed       int64 `yaml:"seed"`
	BaseHeight int   `yaml:"base_height"`
	Amplitude  int   `yaml:"amplitude"`
	SeaLevel   int   `yaml:"sea_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info", MaxSizeMB: 10, MaxBackups: 3},
		Remesh: RemeshConfig{Workers: 0, CacheMaxCost: 1 << 20},
		Worldgen: WorldgenConfig{
			Seed:       1337,
			BaseHeight: 20,
			Amplitude:  12,
			SeaLevel:   18,
		},
	}
}

// Load reads and validates a YAML file. Missing keys keep their defaults.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates raw against the embedded schema and decodes it over
// Default().
func Parse(raw []byte) (Config, error) {
	if err := validateSchema(raw); err != nil {
		return Config{}, err
	}
	cfg := Default()
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config: %w", err)
		}
	}
	cfg.clamp()
	return cfg, nil
}

func validateSchema(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	// jsonschema expects encoding/json shaped values.
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	var v any
	if err := json.Unmarshal(js, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("config schema: %w", err)
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("config schema: %w", err)
	}
	return sch, nil
}

func (c *Config) clamp() {
	if c.Remesh.Workers < 0 {
		c.Remesh.Workers = 0
	}
	if c.Remesh.Workers > 64 {
		c.Remesh.Workers = 64
	}
	if c.Remesh.CacheMaxCost <= 0 {
		c.Remesh.CacheMaxCost = Default().Remesh.CacheMaxCost
	}
	if c.Worldgen.SeaLevel > c.Worldgen.BaseHeight+c.Worldgen.Amplitude {
		c.Worldgen.SeaLevel = c.Worldgen.BaseHeight + c.Worldgen.Amplitude
	}
}

// LogOptions maps the log section onto logging.Options.
func (c Config) LogOptions() logging.Options {
	return logging.Options{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
	}
}

// NewRegistry builds the voxel registry. An empty registry section yields
// the default assignment; otherwise every listed entry is registered in
// order and air must be among them.
func (c Config) NewRegistry(opts ...voxel.RegistryOption) (*voxel.Registry, error) {
	if len(c.Registry) == 0 {
		return voxel.NewDefaultRegistry(opts...), nil
	}
	reg := voxel.NewRegistry(opts...)
	for _, e := range c.Registry {
		t, err := voxel.ParseType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: registry: %w", ErrInvalidConfig, err)
		}
		if err := reg.Register(t, voxel.ID(e.ID)); err != nil {
			return nil, fmt.Errorf("%w: registry: %w", ErrInvalidConfig, err)
		}
	}
	if _, ok := reg.ID(voxel.Air); !ok {
		return nil, fmt.Errorf("%w: registry has no air entry", ErrInvalidConfig)
	}
	return reg, nil
}

// MaterialResolver turns the materials map (type name -> material) into a
// resolver for reg. Without a materials section every face gets material 0.
func (c Config) MaterialResolver(reg *voxel.Registry) (meshing.MaterialResolver, error) {
	if len(c.Materials) == 0 {
		return meshing.ConstantMaterial(0), nil
	}
	names := make([]string, 0, len(c.Materials))
	for name := range c.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	table := meshing.MaterialTable{ByID: make(map[voxel.ID]uint32, len(names))}
	for _, name := range names {
		t, err := voxel.ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("%w: materials: %w", ErrInvalidConfig, err)
		}
		id, ok := reg.ID(t)
		if !ok {
			return nil, fmt.Errorf("%w: materials: %s is not registered", ErrInvalidConfig, t)
		}
		table.ByID[id] = c.Materials[name]
	}
	return table, nil
}
