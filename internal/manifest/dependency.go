package manifest

import (
	"cmp"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Scope controls which classpaths a dependency appears on
type Scope string

const (
	ScopeCompile Scope = "compile"
	ScopeRuntime Scope = "runtime"
)

// Dependency is a normalised entry of [dependencies] or [dev-dependencies]
type Dependency struct {
	Group    string
	Artifact string
	Version  string
	Scope    Scope

	// Expose puts the dependency on consumers' compile classpath. Libraries only.
	Expose bool
}

// Coordinate returns "group:artifact"
func (d Dependency) Coordinate() string {
	return d.Group + ":" + d.Artifact
}

// Dependencies parses [dependencies], sorted by group then artifact
func (m *Manifest) Dependencies() ([]Dependency, error) {
	return parseDependencies(m.RawDependencies)
}

// DevDependencies parses [dev-dependencies], sorted by group then artifact
func (m *Manifest) DevDependencies() ([]Dependency, error) {
	return parseDependencies(m.RawDevDependencies)
}

func parseDependencies(raw map[string]any) ([]Dependency, error) {
	coords := maps.Keys(raw)
	slices.Sort(coords)

	deps := make([]Dependency, 0, len(coords))

	for _, coord := range coords {
		value := raw[coord]

		group, artifact, err := parseCoordinate(coord)
		if err != nil {
			return nil, err
		}

		dep := Dependency{Group: group, Artifact: artifact, Scope: ScopeCompile}

		switch v := value.(type) {
		case string:
			dep.Version = v
		case map[string]any:
			if err := decodeExpanded(coord, v, &dep); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: dependency %q must be a version string or a table", ErrInvalidManifest, coord)
		}

		deps = append(deps, dep)
	}

	slices.SortFunc(deps, func(a, b Dependency) int {
		return cmp.Or(cmp.Compare(a.Group, b.Group), cmp.Compare(a.Artifact, b.Artifact))
	})

	return deps, nil
}

func decodeExpanded(coord string, table map[string]any, dep *Dependency) error {
	version, ok := table["version"].(string)
	if !ok || version == "" {
		return fmt.Errorf("%w: dependency %q is missing a version", ErrInvalidManifest, coord)
	}
	dep.Version = version

	if raw, present := table["scope"]; present {
		scope, _ := raw.(string)
		switch Scope(scope) {
		case ScopeCompile, ScopeRuntime:
			dep.Scope = Scope(scope)
		default:
			return fmt.Errorf("%w: unknown scope %q for %q", ErrInvalidManifest, raw, coord)
		}
	}

	if raw, present := table["expose"]; present {
		expose, ok := raw.(bool)
		if !ok {
			return fmt.Errorf("%w: expose for %q must be true or false", ErrInvalidManifest, coord)
		}
		dep.Expose = expose
	}

	return nil
}

// parseCoordinate splits "groupId:artifactId"
func parseCoordinate(coord string) (string, string, error) {
	group, artifact, ok := strings.Cut(coord, ":")
	if !ok || group == "" || artifact == "" {
		return "", "", fmt.Errorf("%w: invalid dependency coordinate %q: expected groupId:artifactId", ErrInvalidManifest, coord)
	}

	return group, artifact, nil
}
