package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePathWithinDirectory(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "plots"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "file in dir", path: filepath.Join(base, "circle.html")},
		{name: "new file in subdir", path: filepath.Join(base, "plots", "circle.png")},
		{name: "new nested dirs", path: filepath.Join(base, "a", "b", "c.png")},
		{name: "dir itself", path: base},
		{name: "dot dot escape", path: filepath.Join(base, "..", "escape.html"), wantErr: true},
		{name: "absolute elsewhere", path: "/etc/passwd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathWithinDirectory(tt.path, base)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePathWithinDirectory(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePathWithinDirectory_SymlinkEscape(t *testing.T) {
	base := t.TempDir()
	outside := t.TempDir()
	link := filepath.Join(base, "out")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if err := ValidatePathWithinDirectory(filepath.Join(link, "figure.png"), base); err == nil {
		t.Error("expected symlinked parent pointing outside to be rejected")
	}
}

func TestValidatePathWithinDirectory_MissingSafeDir(t *testing.T) {
	if err := ValidatePathWithinDirectory("x.png", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing safe directory")
	}
}

func TestValidateOutputPath(t *testing.T) {
	if err := ValidateOutputPath("circle.html"); err != nil {
		t.Errorf("relative path in working directory rejected: %v", err)
	}
	if err := ValidateOutputPath(filepath.Join(os.TempDir(), "rovplot", "circle.png")); err != nil {
		t.Errorf("temp dir path rejected: %v", err)
	}
	if err := ValidateOutputPath("/proc/rovplot.png"); err == nil {
		t.Error("expected path outside allowed dirs to be rejected")
	}
}
