// Package manifest reads and writes jpack.toml.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/Norgate-AV/jpack/internal/build"
	"github.com/Norgate-AV/jpack/internal/codes"
)

const (
	// DefaultVersion is the version of newly created packages
	DefaultVersion = "0.1.0"

	// DefaultJava is the Java release of newly created packages
	DefaultJava = "21"

	// DefaultMainClass is used when main-class is not set
	DefaultMainClass = "Main"
)

var (
	// ErrManifestNotFound is returned by Load when jpack.toml does not exist
	ErrManifestNotFound = fmt.Errorf("%w: jpack.toml not found in current directory", codes.ErrInvalidConfig)

	// ErrInvalidManifest wraps every parse and validation failure
	ErrInvalidManifest = fmt.Errorf("%w: failed to parse jpack.toml", codes.ErrInvalidConfig)
)

// Manifest is the contents of jpack.toml
type Manifest struct {
	Package Package     `toml:"package"`
	Run     *RunSection `toml:"run,omitempty"`

	// Raw dependency tables; values are either a version string or an
	// inline table with version, scope and expose keys
	RawDependencies    map[string]any `toml:"dependencies,omitempty"`
	RawDevDependencies map[string]any `toml:"dev-dependencies,omitempty"`
}

// Package is the [package] table
type Package struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Type        string `toml:"type"`
	Java        string `toml:"java"`
	BasePackage string `toml:"base-package,omitempty"`
	MainClass   string `toml:"main-class,omitempty"`
}

// RunSection is the optional [run] table
type RunSection struct {
	JVMArgs []string `toml:"jvm-args,omitempty"`
}

// NewApp returns the manifest of a new application
func NewApp(name string) *Manifest {
	return &Manifest{
		Package: Package{
			Name:    name,
			Version: DefaultVersion,
			Type:    string(build.KindApp),
			Java:    DefaultJava,
		},
	}
}

// NewLib returns the manifest of a new library with an explicit base package
func NewLib(name, basePackage string) *Manifest {
	return &Manifest{
		Package: Package{
			Name:        name,
			Version:     DefaultVersion,
			Type:        string(build.KindLib),
			Java:        DefaultJava,
			BasePackage: basePackage,
		},
	}
}

// Load reads and parses a jpack.toml file
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrManifestNotFound
		}

		return nil, codes.FSError("read", path, err)
	}

	return Parse(data)
}

// Parse decodes and validates manifest contents
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, fmt.Errorf("%w: line %d, column %d: %v", ErrInvalidManifest, row, col, decodeErr)
		}

		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	if m.Package.Type == "" {
		m.Package.Type = string(build.KindApp)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *Manifest) validate() error {
	var missing []string

	if m.Package.Name == "" {
		missing = append(missing, "name")
	}
	if m.Package.Version == "" {
		missing = append(missing, "version")
	}
	if m.Package.Java == "" {
		missing = append(missing, "java")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: [package] is missing %s", ErrInvalidManifest, strings.Join(missing, ", "))
	}

	switch build.Kind(m.Package.Type) {
	case build.KindApp, build.KindLib:
	default:
		return fmt.Errorf("%w: unknown type %q (expected \"app\" or \"lib\")", ErrInvalidManifest, m.Package.Type)
	}

	return nil
}

// Marshal encodes the manifest as TOML
func (m *Manifest) Marshal() ([]byte, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize jpack.toml: %w", err)
	}

	return data, nil
}

// BasePackage returns base-package, or the name with hyphens removed
func (m *Manifest) BasePackage() string {
	if m.Package.BasePackage != "" {
		return m.Package.BasePackage
	}

	return DeriveBasePackage(m.Package.Name)
}

// MainClass returns main-class, or "Main"
func (m *Manifest) MainClass() string {
	if m.Package.MainClass != "" {
		return m.Package.MainClass
	}

	return DefaultMainClass
}

// IsApp reports whether the package is an application
func (m *Manifest) IsApp() bool {
	return m.Package.Type == string(build.KindApp)
}

// JVMArgs returns [run].jvm-args, or nil
func (m *Manifest) JVMArgs() []string {
	if m.Run == nil {
		return nil
	}

	return m.Run.JVMArgs
}

// Configuration converts the manifest into the build settings for root
func (m *Manifest) Configuration(root string) build.Configuration {
	cfg := build.Configuration{
		ProjectRoot: root,
		Name:        m.Package.Name,
		Version:     m.Package.Version,
		BasePackage: m.BasePackage(),
		JavaVersion: m.Package.Java,
		Kind:        build.Kind(m.Package.Type),
		RunArgs:     m.JVMArgs(),
	}

	if cfg.IsApp() {
		cfg.MainClass = m.MainClass()
	}

	return cfg
}

// DeriveBasePackage strips hyphens from a package name: "my-app" becomes "myapp"
func DeriveBasePackage(name string) string {
	return strings.ReplaceAll(name, "-", "")
}

// ValidateName checks a package name: it must start with a lowercase ASCII
// letter, contain only lowercase letters, digits and hyphens, and not end
// with a hyphen
func ValidateName(name string) error {
	invalid := func(reason string) error {
		return fmt.Errorf("%w: invalid package name %q: %s", codes.ErrInvalidConfig, name, reason)
	}

	if name == "" {
		return invalid("name cannot be empty")
	}

	first := name[0]
	if (first < 'a' || first > 'z') && (first < 'A' || first > 'Z') {
		return invalid("must start with a letter")
	}

	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return invalid("must contain only lowercase letters, digits, and hyphens")
		}
	}

	if strings.HasSuffix(name, "-") {
		return invalid("must not end with a hyphen")
	}

	return nil
}
