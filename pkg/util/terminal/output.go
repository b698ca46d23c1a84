package terminal

import (
	"bytes"
	"os"
)

// CaptureOutput runs f with stdout and stderr redirected and returns what was written to them.
// Table rendering and colored prints are tested through it.
func CaptureOutput(f func() error) (string, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}

	origStdout, origStderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = w, w
	defer func() {
		os.Stdout, os.Stderr = origStdout, origStderr
	}()

	captured := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		r.Close()
		captured <- buf.String()
	}()

	err = f()

	w.Close()
	return <-captured, err
}
