package simulation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchema string

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("config.schema.json", configSchema)
})

type Config struct {
	// Population
	Population int `json:"population"`
	SubSteps   int `json:"subSteps"`

	// Connectivity hash: fract((1 + sin(i*K1 + j*K2)) * Scale) < Threshold
	HashK1              float64 `json:"hashK1"`
	HashK2              float64 `json:"hashK2"`
	HashScale           float64 `json:"hashScale"`
	ConnectionThreshold float64 `json:"connectionThreshold"`

	// Forces. The centering pull grows with r^4, attraction only acts on
	// connected pairs and stops growing past AttractionCap, the inverse square
	// repulsion acts on all pairs. Damping follows every force application.
	CenteringFactor  float64 `json:"centeringFactor"`
	AttractionFactor float64 `json:"attractionFactor"`
	AttractionCap    float64 `json:"attractionCap"`
	RepulsionFactor  float64 `json:"repulsionFactor"`
	RepulsionCap     float64 `json:"repulsionCap"`
	Damping          float64 `json:"damping"`

	// Initialization: velocity components are drawn from [-InitialSpeed, InitialSpeed).
	// A zero Seed seeds from the clock.
	InitialSpeed float64 `json:"initialSpeed"`
	Seed         uint64  `json:"seed"`

	// Display
	CanvasSize      int     `json:"canvasSize"`
	ParticleRadius  float64 `json:"particleRadius"`
	ShowConnections bool    `json:"showConnections"`
}

func DefaultConfig() *Config {
	return &Config{
		Population:          100,
		SubSteps:            5,
		HashK1:              314159,
		HashK2:              2653,
		HashScale:           200,
		ConnectionThreshold: 0.01,
		CenteringFactor:     0.0005,
		AttractionFactor:    0.0001,
		AttractionCap:       0.5,
		RepulsionFactor:     1e-7,
		RepulsionCap:        0.01,
		Damping:             0.9995,
		InitialSpeed:        0.005,
		CanvasSize:          400,
		ParticleRadius:      3.5,
		ShowConnections:     true,
	}
}

// LoadConfig loads configuration from a JSON file and validates it against the embedded schema.
// Fields absent from the file keep their DefaultConfig value.
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	cfg, err := DefaultConfig().Merge(b)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", configFile, err)
	}
	return cfg, nil
}

// Merge returns a copy of c with the fields of the JSON object patch applied.
// The merged document is validated against the schema before it is decoded,
// so a rejected patch never yields a partially applied Config.
func (c *Config) Merge(patch []byte) (*Config, error) {
	var overrides map[string]interface{}
	if err := json.Unmarshal(patch, &overrides); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}

	doc, err := c.document()
	if err != nil {
		return nil, err
	}
	for k, v := range overrides {
		doc[k] = v
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode merged config: %w", err)
	}
	merged := *c
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &merged, nil
}

// Validate checks c against the same schema used for config files.
func (c *Config) Validate() error {
	doc, err := c.document()
	if err != nil {
		return err
	}
	return validateDocument(doc)
}

func (c *Config) document() (map[string]interface{}, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	return doc, nil
}

func validateDocument(doc map[string]interface{}) error {
	sch, err := compileSchema()
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, describe(verr))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// describe flattens the leaves of a validation error tree into one line.
func describe(verr *jsonschema.ValidationError) string {
	if len(verr.Causes) == 0 {
		loc := verr.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return loc + ": " + verr.Message
	}
	parts := make([]string, 0, len(verr.Causes))
	for _, cause := range verr.Causes {
		parts = append(parts, describe(cause))
	}
	return strings.Join(parts, "; ")
}
