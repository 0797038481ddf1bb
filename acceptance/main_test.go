package acceptance_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var linkcheckBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "linkcheck-acceptance-*")
	if err != nil {
		panic(err)
	}

	linkcheckBinary = filepath.Join(tmpDir, "linkcheck")
	build := exec.Command("go", "build", "-o", linkcheckBinary, "github.com/dmdocs/linkcheck")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		os.RemoveAll(tmpDir)
		panic("failed to build linkcheck binary: " + err.Error())
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}
