package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	// ErrNotFound is returned when no manifest file exists where one is expected.
	ErrNotFound = errors.New("manifest not found")

	// ErrInvalidIdentity is returned when a dependency URL cannot be split
	// into a repository and a name.
	ErrInvalidIdentity = errors.New("invalid dependency url")
)

// ParseDependency builds a Dependency from "repository-url/name", splitting
// at the last "/". A trailing ".git" is trimmed from the name.
func ParseDependency(url, branch string) (Dependency, error) {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	idx := strings.LastIndex(url, "/")
	if idx <= 0 || idx == len(url)-1 {
		return Dependency{}, fmt.Errorf("%w: %q (expected <repository>/<name>)", ErrInvalidIdentity, url)
	}
	name := strings.TrimSuffix(url[idx+1:], ".git")
	if name == "" || name == "." || name == ".." {
		return Dependency{}, fmt.Errorf("%w: %q has no usable name segment", ErrInvalidIdentity, url)
	}
	return Dependency{
		Name:       name,
		Repository: url[:idx],
		Branch:     strings.TrimSpace(branch),
	}, nil
}

// Validate checks a manifest about to be written. On top of the checks
// applied when reading, Version must be a semantic version.
func Validate(p *Project) error {
	if err := validate(p); err != nil {
		return err
	}
	if p.Version != "" {
		if _, err := semver.NewVersion(p.Version); err != nil {
			return fmt.Errorf("manifest: version %q is not a semantic version: %w", p.Version, err)
		}
	}
	return nil
}

// validate checks what any manifest, including a fetched one, must satisfy.
func validate(p *Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("manifest: name is required")
	}

	seen := make(map[string]bool, len(p.Dependencies))
	for i, d := range p.Dependencies {
		if err := validateDependency(i, d, seen); err != nil {
			return err
		}
		seen[d.Name] = true
	}

	for name, path := range p.ResolveOverrides {
		if name == "" {
			return fmt.Errorf("manifest: resolve_overrides contains an empty dependency name")
		}
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("manifest: resolve_overrides[%s] has an empty path", name)
		}
	}
	return nil
}

func validateDependency(i int, d Dependency, seen map[string]bool) error {
	if d.Name == "" {
		return fmt.Errorf("manifest: dependencies[%d].name is required", i)
	}
	if d.Name == "." || d.Name == ".." || strings.ContainsAny(d.Name, "/\\") {
		return fmt.Errorf("manifest: dependencies[%d]: invalid name %q", i, d.Name)
	}
	if d.Repository == "" {
		return fmt.Errorf("manifest: dependencies[%d] (%s).repository is required", i, d.Name)
	}
	if seen[d.Name] {
		return fmt.Errorf("manifest: duplicate dependency name %q", d.Name)
	}
	return nil
}
