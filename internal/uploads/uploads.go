package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNoFile    = errors.New("no file part")
	ErrEmptyFile = errors.New("no selected file")
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

const (
	// MaxFilenameLength bounds the sanitized name; the stored name adds a 37-byte uuid prefix.
	MaxFilenameLength = 100
	maxExtLength      = 16
)

// Store keeps uploaded resumes in a single directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

type File struct {
	Path    string
	ModTime time.Time
}

func New(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	return &Store{dir: abs, logger: logger}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// SanitizeFilename reduces a client-supplied name to a safe base name of at
// most MaxFilenameLength bytes, keeping a short extension when it truncates.
// It returns "" when nothing usable remains.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, "._")
	if name == "." || name == ".." {
		return ""
	}
	if len(name) > MaxFilenameLength {
		ext := filepath.Ext(name)
		if len(ext) > maxExtLength {
			ext = ""
		}
		name = name[:MaxFilenameLength-len(ext)] + ext
	}
	return name
}

// Save writes the uploaded file under a unique name and returns its absolute path.
func (s *Store) Save(header *multipart.FileHeader) (string, error) {
	if header == nil {
		return "", ErrNoFile
	}
	if header.Filename == "" || header.Size == 0 {
		return "", ErrEmptyFile
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	return s.write(header.Filename, src)
}

func (s *Store) write(original string, content io.Reader) (string, error) {
	name := SanitizeFilename(original)
	if name == "" {
		name = "resume"
	}
	path := filepath.Join(s.dir, uuid.NewString()+"_"+name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(dst, content); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close file: %w", err)
	}

	s.logger.Debug("upload saved", zap.String("path", path))

	return path, nil
}

// Remove deletes a stored file. Paths outside the upload dir are refused.
func (s *Store) Remove(path string) error {
	if filepath.Dir(filepath.Clean(path)) != s.dir {
		return fmt.Errorf("remove %s: outside upload dir", path)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// List returns the regular files of the upload dir.
func (s *Store) List() ([]File, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}

	files := make([]File, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, File{
			Path:    filepath.Join(s.dir, e.Name()),
			ModTime: info.ModTime(),
		})
	}
	return files, nil
}
