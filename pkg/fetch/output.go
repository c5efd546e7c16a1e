package fetch

import (
	"errors"
	"path/filepath"

	"github.com/Manu343726/opscrape/pkg/utils"
	"github.com/spf13/afero"
)

var ErrWrite = errors.New("cannot write output")

// Writes text to path through a temporary file in the same directory,
// renamed over path once fully written. Readers never see a partial file.
func WriteAtomic(fs afero.Fs, path string, text string) (err error) {
	dir := filepath.Dir(path)

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return utils.MakeError(ErrWrite, "%v", err)
	}

	defer func() {
		if err != nil {
			fs.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.WriteString(text); err != nil {
		tmp.Close()
		return utils.MakeError(ErrWrite, "%v", err)
	}

	if err = tmp.Close(); err != nil {
		return utils.MakeError(ErrWrite, "%v", err)
	}

	if err = fs.Rename(tmp.Name(), path); err != nil {
		return utils.MakeError(ErrWrite, "%v", err)
	}

	return nil
}
