package nativemsg

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
)

// hostNamePattern is the set of names a browser accepts for a native host.
var hostNamePattern = regexp.MustCompile(`^[a-z0-9_]+(\.[a-z0-9_]+)*$`)

var ErrInvalidManifest = errors.New("invalid native messaging host manifest")

// Manifest describes a native messaging host.
type Manifest struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Path              string   `json:"path"`
	Type              string   `json:"type"`
	AllowedOrigins    []string `json:"allowed_origins,omitempty"`
	AllowedExtensions []string `json:"allowed_extensions,omitempty"`

	// File is where the manifest was loaded from.
	File string `json:"-"`
}

// ValidHostName reports whether name is acceptable as a native host name.
func ValidHostName(name string) bool {
	return hostNamePattern.MatchString(name)
}

// LoadManifest reads and validates the manifest at path.
// A relative host path is resolved against the manifest's directory.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: %s: %v", ErrInvalidManifest, path, err)
	}
	m.File = path

	if m.Path != "" && !filepath.IsAbs(m.Path) {
		m.Path = filepath.Join(filepath.Dir(path), m.Path)
	}

	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Validate checks the fields a browser requires before starting a host.
func (m Manifest) Validate() error {
	switch {
	case !ValidHostName(m.Name):
		return fmt.Errorf("%w: bad name %q", ErrInvalidManifest, m.Name)
	case m.Path == "":
		return fmt.Errorf("%w: %s: missing path", ErrInvalidManifest, m.Name)
	case m.Type != "stdio":
		return fmt.Errorf("%w: %s: unsupported type %q", ErrInvalidManifest, m.Name, m.Type)
	}
	return nil
}

// Allows reports whether the caller origin may talk to the host.
// Chromium origins ("chrome-extension://<id>/") are checked against
// allowed_origins, Firefox extension IDs against allowed_extensions.
func (m Manifest) Allows(origin string) bool {
	return slices.Contains(m.AllowedOrigins, origin) || slices.Contains(m.AllowedExtensions, origin)
}
