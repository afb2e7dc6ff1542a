package host

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-stl/engine"
	"github.com/Carmen-Shannon/oxy-stl/engine/settings"
)

// fileDocument is a mesh file on disk shown with a viewer configuration. Every call to Settings
// re-reads the file, so a rebuild always sees the current contents.
type fileDocument struct {
	path string
	cfg  settings.Config
}

var _ engine.Document = &fileDocument{}

func (d *fileDocument) Key() string {
	return d.path
}

func (d *fileDocument) Settings() ([]byte, error) {
	payload, err := os.ReadFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", d.path, err)
	}
	vs, err := d.cfg.Settings(payload)
	if err != nil {
		return nil, err
	}
	return vs.Encode()
}
