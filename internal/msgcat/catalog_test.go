package msgcat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsRender(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)

	out, err := c.Render("event.capture", map[string]string{
		"Mover": "white", "Captured": "pawn", "Move": "e4d5",
	})
	require.NoError(t, err)
	assert.Equal(t, "white takes a pawn with e4d5", out)

	out, err = c.Render("event.checkmate", map[string]string{"Mover": "black"})
	require.NoError(t, err)
	assert.Equal(t, "checkmate. black wins", out)
}

func TestMissingKeyAndTemplateErrors(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)

	_, err = c.Render("event.nonexistent", nil)
	assert.Error(t, err)

	_, err = c.Render("event.capture", map[string]string{"Mover": "white"})
	assert.Error(t, err, "missing template data must error")
}

func TestOverrideDirectoryWins(t *testing.T) {
	dir := t.TempDir()
	override := "event:\n  check: \"careful, that is check\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "override.yaml"), []byte(override), 0o644))

	c, err := New(dir)
	require.NoError(t, err)

	out, err := c.Render("event.check", nil)
	require.NoError(t, err)
	assert.Equal(t, "careful, that is check", out)

	// Untouched keys keep their embedded defaults.
	out, err = c.Render("event.stalemate", nil)
	require.NoError(t, err)
	assert.Equal(t, "stalemate. the game is drawn", out)
}

func TestDuplicateOverrideKeysRejected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("cli:\n  welcome: \"hi {{.Version}}\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("cli:\n  welcome: \"hello {{.Version}}\"\n"), 0o644))

	_, err := New(dir)
	assert.Error(t, err)
}
