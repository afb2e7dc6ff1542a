package settings

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/Carmen-Shannon/oxy-stl/common"
)

// DefaultViewOffset is the framing distance used when the record carries no usable offset.
const DefaultViewOffset = 40

// GridSettings toggles and colours the ground grid.
type GridSettings struct {
	Enable bool         `json:"enable"`
	Color  common.Color `json:"color"`
}

// MaterialSettings names the mesh material variant and carries its raw parameters.
// The parameters are decoded by the material package once the variant is known.
type MaterialSettings struct {
	Type   string          `json:"type"`
	Config json.RawMessage `json:"config,omitempty"`
}

// ViewSettings is the immutable settings snapshot a viewer session is built from.
type ViewSettings struct {
	ShowViewButtons bool             `json:"showViewButtons"`
	ViewOffset      float32          `json:"viewOffset"`
	ShowInfo        bool             `json:"showInfo"`
	ShowAxes        bool             `json:"showAxes"`
	ShowBoundingBox bool             `json:"showBoundingBox"`
	Grid            GridSettings     `json:"grid"`
	MeshMaterial    MaterialSettings `json:"meshMaterial"`
	Data            string           `json:"data"`
}

// Parse decodes a settings record. A missing record, a record that is not a JSON object, or a
// record without a data key fails with *MissingSettingsError. An empty data string is kept: the
// loader reports it as a truncated mesh. A view offset that is absent is replaced with
// DefaultViewOffset; any configured value, zero included, is kept.
//
// Parameters:
//   - record: the JSON settings record
//
// Returns:
//   - ViewSettings: the parsed settings
//   - error: a *MissingSettingsError
func Parse(record []byte) (ViewSettings, error) {
	record = bytes.TrimSpace(record)
	if len(record) == 0 || bytes.Equal(record, []byte("null")) {
		return ViewSettings{}, &MissingSettingsError{Reason: "no settings record"}
	}

	var s ViewSettings
	if err := json.Unmarshal(record, &s); err != nil {
		return ViewSettings{}, &MissingSettingsError{Reason: "settings record is not valid", Err: err}
	}

	// keys that were given, as opposed to zero values
	var present struct {
		ViewOffset *float32 `json:"viewOffset"`
		Data       *string  `json:"data"`
	}
	if err := json.Unmarshal(record, &present); err != nil {
		return ViewSettings{}, &MissingSettingsError{Reason: "settings record is not valid", Err: err}
	}
	if present.Data == nil {
		return ViewSettings{}, &MissingSettingsError{Reason: "settings record carries no mesh data"}
	}
	if present.ViewOffset == nil {
		s.ViewOffset = DefaultViewOffset
	}
	return s.Normalized(), nil
}

// Normalized returns a copy with a non-finite view offset replaced by DefaultViewOffset.
// Finite values are kept as configured.
//
// Returns:
//   - ViewSettings: the normalized copy
func (s ViewSettings) Normalized() ViewSettings {
	if f := float64(s.ViewOffset); math.IsNaN(f) || math.IsInf(f, 0) {
		s.ViewOffset = DefaultViewOffset
	}
	return s
}

// Encode serializes the settings as the record the browser page embeds.
//
// Returns:
//   - []byte: the JSON record
//   - error: error if encoding fails
func (s ViewSettings) Encode() ([]byte, error) {
	return json.Marshal(s)
}
