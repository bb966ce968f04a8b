package manifest

import "strings"

// Project represents a depot manifest.
type Project struct {
	Name             string            `yaml:"name" json:"name" toml:"name" hcl:"name"`
	Version          string            `yaml:"version,omitempty" json:"version,omitempty" toml:"version,omitempty" hcl:"version"`
	ProjectPaths     []string          `yaml:"projects,omitempty" json:"projects,omitempty" toml:"projects,omitempty" hcl:"projects"`
	Dependencies     []Dependency      `yaml:"dependencies,omitempty" json:"dependencies,omitempty" toml:"dependencies,omitempty" hcl:"dependency"`
	ResolveOverrides map[string]string `yaml:"resolve_overrides,omitempty" json:"resolve_overrides,omitempty" toml:"resolve_overrides,omitempty" hcl:"resolve_overrides"`
}

// Dependency is a single external repository declared by a project.
type Dependency struct {
	Name       string `yaml:"name" json:"name" toml:"name" hcl:",key"`
	Repository string `yaml:"repository" json:"repository" toml:"repository" hcl:"repository"`
	Branch     string `yaml:"branch,omitempty" json:"branch,omitempty" toml:"branch,omitempty" hcl:"branch"`
	// Project is the sub-project entry point selected when the dependency
	// was added. It does not change on later syncs.
	Project string `yaml:"project,omitempty" json:"project,omitempty" toml:"project,omitempty" hcl:"project"`
}

// Key returns the identity used for lock entries: "{Repository}/{Name}".
func (d Dependency) Key() string {
	return d.Repository + "/" + d.Name
}

// CloneURL returns the URL passed to the version control client.
func (d Dependency) CloneURL() string {
	if strings.HasSuffix(d.Name, ".git") {
		return d.Key()
	}
	return d.Key() + ".git"
}

// Find returns the index of the dependency with the given name, or -1.
func (p *Project) Find(name string) int {
	for i, d := range p.Dependencies {
		if d.Name == name {
			return i
		}
	}
	return -1
}

// Override returns the resolve override registered for a dependency name.
func (p *Project) Override(name string) (string, bool) {
	if p.ResolveOverrides == nil {
		return "", false
	}
	path, ok := p.ResolveOverrides[name]
	return path, ok && path != ""
}
