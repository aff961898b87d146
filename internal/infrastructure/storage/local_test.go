package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin/internal/domain"
)

// Cabecera PNG mínima: suficiente para la detección por contenido.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type countMetrics map[string]int

func (c countMetrics) UploadStored(outcome string) { c[outcome]++ }

func TestLocalStore_GuardaYBorra(t *testing.T) {
	dir := t.TempDir()
	m := countMetrics{}
	s, err := NewLocalStore(dir, 1024, m)
	require.NoError(t, err)

	url, err := s.Save("main_image", "Foto Celular!.PNG", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, URLPrefix+"foto-celular-"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	_, err = os.Stat(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)

	require.NoError(t, s.Remove(url))
	_, err = os.Stat(filepath.Join(dir, filepath.Base(url)))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, s.Remove(url), "borrar dos veces no es error")
	assert.Equal(t, 1, m["stored"])
}

func TestLocalStore_NombresDistintos(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), 1024, nil)
	require.NoError(t, err)
	a, err := s.Save("f", "x.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	b, err := s.Save("f", "x.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestLocalStore_RechazaTipoYTamano(t *testing.T) {
	m := countMetrics{}
	s, err := NewLocalStore(t.TempDir(), 8, m)
	require.NoError(t, err)

	_, err = s.Save("main_image", "a.png", bytes.NewReader(pngHeader))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "main_image", verr.Field)

	s.maxBytes = 1024
	_, err = s.Save("main_image", "script.png", strings.NewReader("<?php echo 1; ?>"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 2, m["rejected"])
}

func TestLocalStore_RemoveIgnoraURLAjenas(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), 1024, nil)
	require.NoError(t, err)
	assert.NoError(t, s.Remove("https://cdn.example.com/a.png"))
	assert.NoError(t, s.Remove(URLPrefix+"../../etc/passwd"))
}
