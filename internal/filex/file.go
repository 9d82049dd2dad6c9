package filex

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ReadImage reads the file at path once and returns its bytes together with a
// data URL preview built from the same bytes. Relative paths are resolved
// against the working directory. Content is not checked: any file is staged
// as the logo.
func ReadImage(path string) ([]byte, string, error) {
	abs, err := filepath.Abs(strings.TrimSpace(path))
	if err != nil {
		return nil, "", fmt.Errorf("resolve %s: %w", path, err)
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", abs, err)
	}
	if fi.IsDir() {
		return nil, "", fmt.Errorf("%s is a directory", abs)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", abs, err)
	}
	return data, DataURL(data), nil
}

// DataURL encodes data as a base64 data URL with a sniffed media type.
func DataURL(data []byte) string {
	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
