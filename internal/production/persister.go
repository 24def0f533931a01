// Package production provides production integrations: snapshot persistence, frame
// publishing, run chart visualization and Prometheus metrics.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/comalice/scouter"
)

// ErrBadName is returned for snapshot names that are empty or contain a path.
var ErrBadName = errors.New("bad snapshot name")

// Persister saves and loads controller snapshots by name.
type Persister interface {
	Save(ctx context.Context, name string, snapshot scouter.Snapshot) error
	Load(ctx context.Context, name string) (scouter.Snapshot, error)
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return nil
}

// JSONPersister is a file-based persister using JSON serialization.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, name string, snapshot scouter.Snapshot) error {
	if err := checkName(name); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	fn := filepath.Join(p.dir, name+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p *JSONPersister) Load(ctx context.Context, name string) (scouter.Snapshot, error) {
	if err := checkName(name); err != nil {
		return scouter.Snapshot{}, err
	}
	fn := filepath.Join(p.dir, name+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return scouter.Snapshot{}, fmt.Errorf("snapshot %q: %w", name, os.ErrNotExist)
		}
		return scouter.Snapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot scouter.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return scouter.Snapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := snapshot.Config.Validate(); err != nil {
		return scouter.Snapshot{}, fmt.Errorf("config validation after load: %w", err)
	}
	return snapshot, nil
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, name string, snapshot scouter.Snapshot) error {
	if err := checkName(name); err != nil {
		return err
	}
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	fn := filepath.Join(p.dir, name+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p *YAMLPersister) Load(ctx context.Context, name string) (scouter.Snapshot, error) {
	if err := checkName(name); err != nil {
		return scouter.Snapshot{}, err
	}
	fn := filepath.Join(p.dir, name+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return scouter.Snapshot{}, fmt.Errorf("snapshot %q: %w", name, os.ErrNotExist)
		}
		return scouter.Snapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot scouter.Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return scouter.Snapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := snapshot.Config.Validate(); err != nil {
		return scouter.Snapshot{}, fmt.Errorf("config validation after load: %w", err)
	}
	return snapshot, nil
}
