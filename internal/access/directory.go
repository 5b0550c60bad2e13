package access

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Policy is the YAML layout of a role binding file:
//
//	bindings:
//	  - identity: farmer-1
//	    role: farmer
type Policy struct {
	Bindings []Binding `yaml:"bindings"`
}

type Binding struct {
	Identity string `yaml:"identity"`
	Role     Role   `yaml:"role"`
}

// Directory is a static identity→role table.
type Directory struct {
	mu     sync.RWMutex
	roles  map[string]Role
	owners OwnerLookup
}

func NewDirectory(owners OwnerLookup) *Directory {
	return &Directory{
		roles:  make(map[string]Role),
		owners: owners,
	}
}

// LoadDirectory reads a policy file.
func LoadDirectory(path string, owners OwnerLookup) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy: %w", err)
	}
	return ParseDirectory(raw, owners)
}

func ParseDirectory(raw []byte, owners OwnerLookup) (*Directory, error) {
	var p Policy
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode policy: %w", err)
	}

	d := NewDirectory(owners)
	for i, b := range p.Bindings {
		if b.Identity == "" {
			return nil, fmt.Errorf("binding %d: empty identity", i)
		}
		if !b.Role.Valid() {
			return nil, fmt.Errorf("binding %d: unknown role %q", i, b.Role)
		}
		d.roles[b.Identity] = b.Role
	}
	return d, nil
}

func (d *Directory) Bind(identity string, role Role) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.roles[identity] = role
}

func (d *Directory) RoleOf(_ context.Context, identity string) Role {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if r, ok := d.roles[identity]; ok {
		return r
	}
	return RoleNone
}

func (d *Directory) IsAuthorized(ctx context.Context, identity string, capability Capability) bool {
	if identity == "" {
		return false
	}
	return d.RoleOf(ctx, identity).Grants(capability)
}

func (d *Directory) OwnerOf(ctx context.Context, batchID string) (string, error) {
	if d.owners == nil {
		return "", fmt.Errorf("no owner lookup configured")
	}
	return d.owners.OwnerOf(ctx, batchID)
}
