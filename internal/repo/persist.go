package repo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"jjdivide/internal/errs"
)

// configFile is the on-disk shape of the repository configuration file
// (spec §6): repeated [[repositories]] tables in TOML, or the JSON
// equivalent {"repositories":[...]}.
type configFile struct {
	Repositories []configRepo `toml:"repositories" json:"repositories"`
}

type configRepo struct {
	Name         string   `toml:"name" json:"name"`
	Path         string   `toml:"path" json:"path"`
	Dependencies []string `toml:"dependencies" json:"dependencies"`
}

// Load reads a repository configuration file, format chosen by extension
// (".toml" or anything else treated as JSON). On parse failure it retries
// with the other format before giving up. Relative repository paths are
// resolved against the directory containing path (spec §6).
//
// On any error Load returns a non-nil *errs.Error of kind ConfigLoadError
// alongside an empty, ready-to-use Manager — per spec §7, a load failure is
// non-fatal and the caller should keep going with an empty manager.
func Load(path string) (*Manager, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return New(), errs.Wrap(errs.ConfigLoadError, "reading repository config "+path, err)
	}

	cfg, err := decodeConfig(path, raw)
	if err != nil {
		return New(), errs.Wrap(errs.ConfigLoadError, "parsing repository config "+path, err)
	}

	baseDir := filepath.Dir(path)
	m := New()
	for _, r := range cfg.Repositories {
		p := r.Path
		if p != "" && !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		m.Add(r.Name, p, r.Dependencies)
	}
	return m, nil
}

// decodeConfig tries the format implied by path's extension first, then
// falls back to the other (spec §6: "format errors fall back to the
// other").
func decodeConfig(path string, raw []byte) (configFile, error) {
	var cfg configFile
	preferTOML := strings.EqualFold(filepath.Ext(path), ".toml")

	if preferTOML {
		if _, err := toml.Decode(string(raw), &cfg); err == nil {
			return cfg, nil
		}
		if err := json.Unmarshal(raw, &cfg); err == nil {
			return cfg, nil
		}
	} else {
		if err := json.Unmarshal(raw, &cfg); err == nil {
			return cfg, nil
		}
		if _, err := toml.Decode(string(raw), &cfg); err == nil {
			return cfg, nil
		}
	}
	return configFile{}, errs.New(errs.ConfigLoadError, "unrecognized config format: "+path)
}

// Save writes m to path, format chosen by extension (".toml" or JSON
// otherwise). Paths are written relative to path's directory when they sit
// under it, absolute otherwise — matching Load's resolution so a
// save-then-load round-trips (spec §8 P8).
func Save(m *Manager, path string) error {
	baseDir := filepath.Dir(path)
	var cfg configFile
	for _, name := range m.SortedNames() {
		r, _ := m.Get(name)
		p := r.Path
		if rel, err := filepath.Rel(baseDir, p); err == nil && !strings.HasPrefix(rel, "..") {
			p = rel
		}
		cfg.Repositories = append(cfg.Repositories, configRepo{
			Name:         r.Name,
			Path:         p,
			Dependencies: r.Dependencies,
		})
	}

	var buf []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		buf, err = encodeTOML(cfg)
	} else {
		buf, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return errs.Wrap(errs.ConfigSaveError, "encoding repository config", err)
	}

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return errs.Wrap(errs.ConfigSaveError, "writing repository config "+path, err)
	}
	return nil
}

func encodeTOML(cfg configFile) ([]byte, error) {
	var sb strings.Builder
	enc := toml.NewEncoder(&sb)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}
