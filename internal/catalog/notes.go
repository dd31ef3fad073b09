package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Notes reads the speaker notes for slidePath. A missing notes file is
// reported as ok == false with a nil error.
func Notes(slidePath, suffix string) (string, bool, error) {
	if suffix == "" {
		return "", false, nil
	}
	data, err := os.ReadFile(slidePath + suffix)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read notes: %w", err)
	}
	return string(data), true, nil
}
