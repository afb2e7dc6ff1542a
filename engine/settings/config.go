package settings

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the user's viewer preferences, read from a TOML file. Every ViewSettings record
// is built from a Config plus the mesh payload of the document being viewed.
type Config struct {
	ShowInfo           bool           `toml:"showInfo"`
	ShowAxes           bool           `toml:"showAxes"`
	ShowBoundingBox    bool           `toml:"showBoundingBox"`
	ShowViewButtons    bool           `toml:"showViewButtons"`
	ViewOffset         float32        `toml:"viewOffset"`
	ShowGrid           bool           `toml:"showGrid"`
	GridColor          string         `toml:"gridColor"`
	MeshMaterialType   string         `toml:"meshMaterialType"`
	MeshMaterialConfig map[string]any `toml:"meshMaterialConfig"`
}

// DefaultConfig returns the preferences used when no config file exists.
//
// Returns:
//   - Config: the defaults
func DefaultConfig() Config {
	return Config{
		ShowAxes:         true,
		ShowViewButtons:  true,
		ViewOffset:       DefaultViewOffset,
		ShowGrid:         true,
		GridColor:        "#5a5a5a",
		MeshMaterialType: "lambert",
		MeshMaterialConfig: map[string]any{
			"color": "#049ef4",
		},
	}
}

// LoadConfig reads a TOML config file over the defaults. A path that does not exist yields the
// defaults; keys the file omits keep their default values.
//
// Parameters:
//   - path: the config file path, may be empty
//
// Returns:
//   - Config: the merged config
//   - error: error if the file exists but cannot be read or parsed
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig parses TOML from r over the defaults. Unknown keys are rejected so typos surface.
//
// Parameters:
//   - r: the TOML source
//
// Returns:
//   - Config: the merged config
//   - error: error if the document is not valid TOML or names an unknown key
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	defaultMaterial := cfg.MeshMaterialConfig
	cfg.MeshMaterialConfig = nil

	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.MeshMaterialConfig == nil {
		cfg.MeshMaterialConfig = defaultMaterial
	}
	return cfg, nil
}

// Encode writes the config as TOML.
//
// Parameters:
//   - w: the destination
//
// Returns:
//   - error: error if encoding fails
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Settings builds the settings record for a mesh payload.
//
// Parameters:
//   - payload: the raw mesh file contents
//
// Returns:
//   - ViewSettings: the settings snapshot
//   - error: error if the grid colour or material config cannot be represented
func (c Config) Settings(payload []byte) (ViewSettings, error) {
	grid, err := common.ParseColor(c.GridColor)
	if err != nil {
		return ViewSettings{}, fmt.Errorf("invalid gridColor: %w", err)
	}

	var materialConfig json.RawMessage
	if len(c.MeshMaterialConfig) > 0 {
		materialConfig, err = json.Marshal(c.MeshMaterialConfig)
		if err != nil {
			return ViewSettings{}, fmt.Errorf("invalid meshMaterialConfig: %w", err)
		}
	}

	s := ViewSettings{
		ShowViewButtons: c.ShowViewButtons,
		ViewOffset:      c.ViewOffset,
		ShowInfo:        c.ShowInfo,
		ShowAxes:        c.ShowAxes,
		ShowBoundingBox: c.ShowBoundingBox,
		Grid:            GridSettings{Enable: c.ShowGrid, Color: grid},
		MeshMaterial:    MaterialSettings{Type: c.MeshMaterialType, Config: materialConfig},
		Data:            base64.StdEncoding.EncodeToString(payload),
	}
	return s.Normalized(), nil
}
