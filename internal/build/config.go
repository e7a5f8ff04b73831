package build

import (
	"errors"
	"fmt"

	"github.com/Norgate-AV/jpack/internal/codes"
	"github.com/Norgate-AV/jpack/internal/utils"
)

// Kind is the project type
type Kind string

const (
	KindApp Kind = "app"
	KindLib Kind = "lib"
)

// ErrNotAnApp is returned when an app-only operation is requested for a library
var ErrNotAnApp = fmt.Errorf(`%w: this command requires an app project (type = "app")`, codes.ErrInvalidConfig)

// Configuration holds the resolved settings for one build
type Configuration struct {
	ProjectRoot string
	Name        string
	Version     string
	BasePackage string
	JavaVersion string
	Kind        Kind

	// MainClass is the simple name of the entry class, e.g. "Main"
	MainClass string

	// Classpath entries are absolute and passed through untouched
	Classpath []string

	// RunArgs are JVM arguments used by the run command only
	RunArgs []string
}

// Validate checks the configuration before any filesystem work
func (c Configuration) Validate() error {
	var errs []error

	if c.ProjectRoot == "" {
		errs = append(errs, errors.New("project root is empty"))
	}

	if c.Name == "" {
		errs = append(errs, errors.New("package name is empty"))
	}

	if _, err := utils.PackageSegments(c.BasePackage); err != nil {
		errs = append(errs, err)
	}

	if c.JavaVersion == "" {
		errs = append(errs, errors.New("java version is empty"))
	}

	switch c.Kind {
	case KindApp:
		if c.MainClass == "" {
			errs = append(errs, errors.New("main class is empty"))
		}
	case KindLib:
	default:
		errs = append(errs, fmt.Errorf("unknown project type %q (expected app or lib)", c.Kind))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", codes.ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// IsApp reports whether the project produces an executable archive
func (c Configuration) IsApp() bool {
	return c.Kind == KindApp
}

// QualifiedMainClass returns "<base-package>.<MainClass>" for apps and "" for libraries
func (c Configuration) QualifiedMainClass() string {
	if !c.IsApp() {
		return ""
	}

	return c.BasePackage + "." + c.MainClass
}
