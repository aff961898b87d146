package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/jhoicas/tienda-admin/internal/domain"
)

// Tipos de imagen aceptados y la extensión con la que se guardan.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// URLPrefix ruta pública bajo la que se sirven los archivos.
const URLPrefix = "/uploads/"

// Metrics contador opcional de subidas.
type Metrics interface {
	UploadStored(outcome string)
}

// LocalStore guarda imágenes de productos en un directorio local servido como estático.
type LocalStore struct {
	dir      string
	maxBytes int64
	metrics  Metrics
	now      func() time.Time
}

// NewLocalStore crea el directorio si no existe.
func NewLocalStore(dir string, maxBytes int64, metrics Metrics) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &LocalStore{dir: dir, maxBytes: maxBytes, metrics: metrics, now: time.Now}, nil
}

// Dir directorio físico (para montar el estático).
func (s *LocalStore) Dir() string { return s.dir }

// Save valida tamaño y tipo real del contenido y guarda el archivo con un nombre único.
// field es el campo del formulario, usado en los errores de validación.
func (s *LocalStore) Save(field, originalName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		s.observe("failed")
		return "", fmt.Errorf("leer archivo: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		s.observe("rejected")
		return "", &domain.ValidationError{Field: field,
			Message: fmt.Sprintf("la imagen supera el máximo de %d MB", s.maxBytes/(1024*1024))}
	}
	mt := mimetype.Detect(data)
	ext, ok := extensionFor(mt)
	if !ok {
		s.observe("rejected")
		return "", &domain.ValidationError{Field: field, Message: "solo se permiten imágenes jpeg, png o webp"}
	}

	name := s.fileName(originalName, ext)
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.observe("failed")
		return "", fmt.Errorf("crear archivo: %w", err)
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		s.observe("failed")
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	if err := f.Close(); err != nil {
		s.observe("failed")
		return "", fmt.Errorf("cerrar archivo: %w", err)
	}
	s.observe("stored")
	return URLPrefix + name, nil
}

// Remove borra el archivo de una URL devuelta por Save. Si ya no existe no es error.
func (s *LocalStore) Remove(url string) error {
	if !strings.HasPrefix(url, URLPrefix) {
		return nil
	}
	name := path.Base(url)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("borrar %s: %w", name, err)
	}
	return nil
}

func extensionFor(mt *mimetype.MIME) (string, bool) {
	for m := mt; m != nil; m = m.Parent() {
		if ext, ok := allowedTypes[m.String()]; ok {
			return ext, true
		}
	}
	return "", false
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// fileName base-<millis>-<uuid8>.ext; la base sale del nombre original saneado.
func (s *LocalStore) fileName(original, ext string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(base), "-"), "-")
	if base == "" {
		base = "image"
	}
	if len(base) > 40 {
		base = base[:40]
	}
	return fmt.Sprintf("%s-%d-%s%s", base, s.now().UnixMilli(), uuid.NewString()[:8], ext)
}

func (s *LocalStore) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.UploadStored(outcome)
	}
}
