package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveLogFilePathUsesDefaultDir(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	if filepath.Base(got) != defaultLogFilename {
		t.Fatalf("unexpected log filename: %s", filepath.Base(got))
	}

	// TempDir 可能是符号链接，比较前先解析
	wantDir, err := filepath.EvalSymlinks(filepath.Join(tmpDir, defaultLogDirName))
	if err != nil {
		t.Fatalf("resolve expected dir failed: %v", err)
	}
	gotDir, err := filepath.EvalSymlinks(filepath.Dir(got))
	if err != nil {
		t.Fatalf("resolve got dir failed: %v", err)
	}
	if gotDir != wantDir {
		t.Fatalf("unexpected log dir: got=%s want=%s", gotDir, wantDir)
	}
}

func TestReleaseModeWritesStructuredFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "storefront.log"})
	log.Sugar().Infow("cart_line_added", "product_id", 42)
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "storefront.log"))
	if err != nil {
		t.Fatalf("read log file failed: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "cart_line_added") {
		t.Fatalf("expected structured message in log, got=%s", text)
	}
	if !strings.Contains(text, "product_id") {
		t.Fatalf("expected structured field in log, got=%s", text)
	}
}

func TestDebugModeSkipsLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{Dir: tmpDir, Filename: "storefront.log"})
	log.Info("console-only-entry")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "storefront.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create a log file")
	}
}
