package nativemsg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aretw0/opennormal/pkg/ports"
)

// Locator finds host manifests in an ordered list of directories.
// The first directory holding <name>.json wins.
type Locator struct {
	Dirs []string
}

// DefaultDirs returns the per-user and system manifest directories of
// Chromium, Google Chrome and Firefox on Linux, user directories first.
func DefaultDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".config", "chromium", "NativeMessagingHosts"),
			filepath.Join(home, ".config", "google-chrome", "NativeMessagingHosts"),
			filepath.Join(home, ".mozilla", "native-messaging-hosts"),
		)
	}
	return append(dirs,
		"/etc/chromium/native-messaging-hosts",
		"/etc/opt/chrome/native-messaging-hosts",
		"/usr/lib/mozilla/native-messaging-hosts",
		"/usr/lib64/mozilla/native-messaging-hosts",
	)
}

// Find loads the manifest for the named host.
// It returns ports.ErrHostNotFound when no directory has one.
func (l Locator) Find(name string) (Manifest, error) {
	if !ValidHostName(name) {
		return Manifest{}, fmt.Errorf("%w: invalid host name %q", ports.ErrHostNotFound, name)
	}

	for _, dir := range l.Dirs {
		path := filepath.Join(dir, name+".json")
		m, err := LoadManifest(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Manifest{}, fmt.Errorf("%w: %w", ports.ErrHostNotFound, err)
		}
		if m.Name != name {
			return Manifest{}, fmt.Errorf("%w: %s declares name %q", ports.ErrHostNotFound, path, m.Name)
		}
		return m, nil
	}
	return Manifest{}, ports.ErrHostNotFound
}
