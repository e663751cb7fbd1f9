package nativemsg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/opennormal/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, file, body string) string {
	t.Helper()
	path := filepath.Join(dir, file)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestValidHostName(t *testing.T) {
	assert.True(t, ValidHostName("fi.ssrc.open_normal"))
	assert.True(t, ValidHostName("host"))
	assert.False(t, ValidHostName("Fi.ssrc.open_normal"))
	assert.False(t, ValidHostName("fi..ssrc"))
	assert.False(t, ValidHostName(".fi"))
	assert.False(t, ValidHostName("../etc/passwd"))
	assert.False(t, ValidHostName(""))
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()

	t.Run("Relative Path Resolved", func(t *testing.T) {
		path := writeManifest(t, dir, "fi.ssrc.open_normal.json", `{
			"name": "fi.ssrc.open_normal",
			"description": "Open URLs in the normal browser",
			"path": "bin/open-normal",
			"type": "stdio",
			"allowed_origins": ["chrome-extension://abc/"]
		}`)

		m, err := LoadManifest(path)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "bin", "open-normal"), m.Path)
		assert.Equal(t, path, m.File)
		assert.True(t, m.Allows("chrome-extension://abc/"))
		assert.False(t, m.Allows("chrome-extension://evil/"))
		assert.False(t, m.Allows(""))
	})

	t.Run("Firefox Extensions", func(t *testing.T) {
		path := writeManifest(t, dir, "ff.json", `{"name":"fi.ssrc.open_normal","path":"/usr/bin/x","type":"stdio","allowed_extensions":["open-normal@ssrc.fi"]}`)
		m, err := LoadManifest(path)
		require.NoError(t, err)
		assert.True(t, m.Allows("open-normal@ssrc.fi"))
	})

	invalid := map[string]string{
		"Bad JSON":     `{"name":`,
		"Bad Name":     `{"name":"Bad Name","path":"/x","type":"stdio"}`,
		"Missing Path": `{"name":"fi.ssrc.x","type":"stdio"}`,
		"Bad Type":     `{"name":"fi.ssrc.x","path":"/x","type":"socket"}`,
	}
	for name, body := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := LoadManifest(writeManifest(t, dir, "invalid.json", body))
			assert.ErrorIs(t, err, ErrInvalidManifest)
		})
	}
}

func TestLocator_Find(t *testing.T) {
	userDir, systemDir := t.TempDir(), t.TempDir()
	writeManifest(t, systemDir, "fi.ssrc.open_normal.json", `{"name":"fi.ssrc.open_normal","path":"/system/host","type":"stdio"}`)

	loc := Locator{Dirs: []string{filepath.Join(userDir, "missing"), userDir, systemDir}}

	m, err := loc.Find("fi.ssrc.open_normal")
	require.NoError(t, err)
	assert.Equal(t, "/system/host", m.Path)

	// User directory shadows system directory.
	writeManifest(t, userDir, "fi.ssrc.open_normal.json", `{"name":"fi.ssrc.open_normal","path":"/user/host","type":"stdio"}`)
	m, err = loc.Find("fi.ssrc.open_normal")
	require.NoError(t, err)
	assert.Equal(t, "/user/host", m.Path)

	_, err = loc.Find("fi.ssrc.not_installed")
	assert.ErrorIs(t, err, ports.ErrHostNotFound)

	_, err = loc.Find("../../etc/passwd")
	assert.ErrorIs(t, err, ports.ErrHostNotFound)

	writeManifest(t, userDir, "fi.ssrc.renamed.json", `{"name":"fi.ssrc.other","path":"/x","type":"stdio"}`)
	_, err = loc.Find("fi.ssrc.renamed")
	assert.ErrorIs(t, err, ports.ErrHostNotFound)
}

func TestDefaultDirs(t *testing.T) {
	dirs := DefaultDirs()
	assert.Contains(t, dirs, "/etc/opt/chrome/native-messaging-hosts")
	assert.Contains(t, dirs, "/etc/chromium/native-messaging-hosts")
}
