package state

import (
	"encoding/json"
	"math"

	"github.com/Carmen-Shannon/oxy-stl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraKey is the field of the persisted record that holds the camera position.
const cameraKey = "cameraPosition"

// CameraState is the persisted camera position.
type CameraState struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// CameraStateOf converts a position vector.
//
// Parameters:
//   - v: the camera position
//
// Returns:
//   - CameraState: the persisted form
func CameraStateOf(v mgl32.Vec3) CameraState {
	return CameraState{X: float64(v.X()), Y: float64(v.Y()), Z: float64(v.Z())}
}

// Vec3 converts the state back to a position vector.
//
// Returns:
//   - mgl32.Vec3: the camera position
func (c CameraState) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X), float32(c.Y), float32(c.Z)}
}

func (c CameraState) finite() bool {
	for _, f := range []float64{c.X, c.Y, c.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Bridge reads and writes the camera position in a StateStore. The store holds a JSON object;
// fields other than the camera position belong to someone else and are carried through every save.
type Bridge struct {
	store  StateStore
	logger common.Logger
}

// NewBridge wraps a store. A nil logger disables diagnostics.
//
// Parameters:
//   - store: the backing store
//   - logger: destination for diagnostics about unreadable records
//
// Returns:
//   - *Bridge: the bridge
func NewBridge(store StateStore, logger common.Logger) *Bridge {
	return &Bridge{store: store, logger: common.LoggerOrNop(logger)}
}

// Load returns the persisted camera position. A missing, malformed or non-finite record is
// reported as absent.
//
// Returns:
//   - CameraState: the persisted position
//   - bool: false if there is no usable position
func (b *Bridge) Load() (CameraState, bool) {
	fields, ok := b.fields()
	if !ok {
		return CameraState{}, false
	}
	raw, ok := fields[cameraKey]
	if !ok {
		return CameraState{}, false
	}

	var fieldsPresent map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fieldsPresent); err != nil {
		b.logger.Debugf("ignoring malformed camera record: %v", err)
		return CameraState{}, false
	}
	for _, k := range []string{"x", "y", "z"} {
		if _, ok := fieldsPresent[k]; !ok {
			b.logger.Debugf("ignoring camera record without %q", k)
			return CameraState{}, false
		}
	}

	var cs CameraState
	if err := json.Unmarshal(raw, &cs); err != nil || !cs.finite() {
		b.logger.Debugf("ignoring malformed camera record: %v", err)
		return CameraState{}, false
	}
	return cs, true
}

// Save writes the camera position, keeping every other field of the record. A malformed prior
// record is replaced.
//
// Parameters:
//   - cs: the camera position
//
// Returns:
//   - error: error if the record cannot be encoded
func (b *Bridge) Save(cs CameraState) error {
	fields, ok := b.fields()
	if !ok {
		fields = make(map[string]json.RawMessage, 1)
	}

	raw, err := json.Marshal(cs)
	if err != nil {
		return err
	}
	fields[cameraKey] = raw

	out, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	b.store.Set(out)
	return nil
}

// fields decodes the stored record as a JSON object.
func (b *Bridge) fields() (map[string]json.RawMessage, bool) {
	data, ok := b.store.Get()
	if !ok {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		b.logger.Debugf("ignoring malformed state record: %v", err)
		return nil, false
	}
	return fields, true
}
