package uploads

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "resume.pdf", want: "resume.pdf"},
		{input: "My Resume 2024.pdf", want: "My_Resume_2024.pdf"},
		{input: "../../etc/passwd", want: "passwd"},
		{input: `C:\Users\jo\cv.docx`, want: "cv.docx"},
		{input: ".bashrc", want: "bashrc"},
		{input: "résumé.pdf", want: "rsum.pdf"},
		{input: "..", want: ""},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func newFileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write(content)
	w.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	return req.MultipartForm.File[field][0]
}

func TestSave(t *testing.T) {
	store, err := New(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	path, err := store.Save(newFileHeader(t, "resume", "../my cv.pdf", []byte("cv body")))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if filepath.Dir(path) != store.Dir() {
		t.Errorf("file saved outside upload dir: %s", path)
	}
	if !strings.HasSuffix(path, "_my_cv.pdf") {
		t.Errorf("unexpected stored name %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "cv body" {
		t.Errorf("Expected content 'cv body', got '%s'", data)
	}
}

func TestSanitizeFilenameLongNames(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantExt string
	}{
		{name: "keeps extension", input: strings.Repeat("a", 200) + ".pdf", wantExt: ".pdf"},
		{name: "no extension", input: strings.Repeat("b", 300), wantExt: ""},
		{name: "overlong extension", input: "cv." + strings.Repeat("x", 250), wantExt: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.input)
			if len(got) != MaxFilenameLength {
				t.Errorf("Expected length %d, got %d", MaxFilenameLength, len(got))
			}
			if tt.wantExt != "" && !strings.HasSuffix(got, tt.wantExt) {
				t.Errorf("Expected extension %s kept, got %s", tt.wantExt, got)
			}
		})
	}
}

func TestSaveLongFilename(t *testing.T) {
	store, err := New(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	path, err := store.Save(newFileHeader(t, "resume", strings.Repeat("resume", 40)+".pdf", []byte("cv")))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	// uuid (36) + "_" + capped name
	if got := len(filepath.Base(path)); got != 37+MaxFilenameLength {
		t.Errorf("Expected stored name of %d bytes, got %d", 37+MaxFilenameLength, got)
	}
	if !strings.HasSuffix(path, ".pdf") {
		t.Errorf("extension lost: %s", filepath.Base(path))
	}
}

func TestSaveSameNameTwice(t *testing.T) {
	store, _ := New(t.TempDir(), zap.NewNop())

	a, err := store.Save(newFileHeader(t, "resume", "cv.pdf", []byte("a")))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	b, err := store.Save(newFileHeader(t, "resume", "cv.pdf", []byte("b")))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if a == b {
		t.Fatal("two uploads with the same name must not share a path")
	}
}

func TestSaveRejectsMissingOrEmpty(t *testing.T) {
	store, _ := New(t.TempDir(), zap.NewNop())

	if _, err := store.Save(nil); !errors.Is(err, ErrNoFile) {
		t.Errorf("Expected ErrNoFile, got %v", err)
	}
	if _, err := store.Save(newFileHeader(t, "resume", "empty.pdf", nil)); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("Expected ErrEmptyFile, got %v", err)
	}

	files, err := store.List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Expected no files after rejected uploads, got %d", len(files))
	}
}

func TestRemoveAndList(t *testing.T) {
	dir := t.TempDir()
	store, _ := New(dir, zap.NewNop())

	path, err := store.Save(newFileHeader(t, "resume", "cv.txt", []byte("x")))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	os.Mkdir(filepath.Join(store.Dir(), "nested"), 0o755)

	files, _ := store.List()
	if len(files) != 1 || files[0].Path != path {
		t.Fatalf("unexpected listing %+v", files)
	}

	if err := store.Remove(path); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if err := store.Remove(path); err != nil {
		t.Errorf("removing a missing file should be a no-op, got %v", err)
	}
	if err := store.Remove(filepath.Join(os.TempDir(), "elsewhere.txt")); err == nil {
		t.Error("Expected error removing a path outside the upload dir")
	}
}
