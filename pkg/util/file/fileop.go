package file

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// copy source to target, creating the target's parent directories
func Copy(fs afero.Fs, sourcePath string, targetPath string) error {
	source, err := fs.Open(sourcePath)
	if err != nil {
		return err
	}
	defer source.Close()

	err = fs.MkdirAll(filepath.Dir(targetPath), os.ModePerm)
	if err != nil {
		return err
	}
	target, err := fs.OpenFile(targetPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer target.Close()

	_, err = io.Copy(target, source)
	return err
}

// path exists?
func Exists(fs afero.Fs, path string) bool {
	ok, err := afero.Exists(fs, path)
	return ok && err == nil
}
