package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var bundled embed.FS

// Dir is the on-disk prefab directory. Files found there shadow the
// bundled copies so edits take effect without a rebuild.
var Dir = "prefabs"

// Load returns a yaml prefab such as "tuning.yaml".
func Load(name string) ([]byte, error) {
	return read(relPath(name, ""))
}

// LoadScript returns a tengo script. name may be bare ("guard.tengo") or
// carry a scripts/ or prefabs/scripts/ prefix.
func LoadScript(name string) ([]byte, error) {
	return read(relPath(name, "scripts"))
}

func read(rel string) ([]byte, error) {
	if rel == "" {
		return nil, fs.ErrNotExist
	}
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return bundled.ReadFile(rel)
}

// relPath maps name to a slash path under the prefab root, placing it in
// sub when it does not already name one.
func relPath(name, sub string) string {
	if name == "" {
		return ""
	}
	p := strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
	if sub == "" {
		return p
	}
	p = strings.TrimPrefix(p, sub+"/")
	return path.Join(sub, p)
}
