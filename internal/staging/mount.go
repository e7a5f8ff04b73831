package staging

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/Norgate-AV/jpack/internal/codes"
	"github.com/Norgate-AV/jpack/internal/utils"
)

// Mounter makes realDir visible at virtualPath. Like os.Symlink, a relative
// realDir is resolved from the directory containing virtualPath.
type Mounter interface {
	Mount(realDir, virtualPath string) error
}

// errPrivilegeNotHeld is ERROR_PRIVILEGE_NOT_HELD, returned by Windows when
// the user may not create symlinks
const errPrivilegeNotHeld = syscall.Errno(1314)

// SymlinkMounter links virtualPath to realDir with a relative symlink
type SymlinkMounter struct{}

func (SymlinkMounter) Mount(realDir, virtualPath string) error {
	target := realDir
	if filepath.IsAbs(realDir) {
		rel, err := filepath.Rel(filepath.Dir(virtualPath), realDir)
		if err != nil {
			return codes.FSError("resolve link target for", virtualPath, err)
		}
		target = rel
	}

	return codes.FSError("create symlink", virtualPath, os.Symlink(target, virtualPath))
}

// CopyMounter copies realDir to virtualPath. Used where links are unavailable.
type CopyMounter struct{}

func (CopyMounter) Mount(realDir, virtualPath string) error {
	src := resolve(realDir, virtualPath)

	if !utils.IsDir(src) {
		// Mirror a dangling symlink: nothing to copy, but the leaf must exist
		return codes.FSError("create directory", virtualPath, os.MkdirAll(virtualPath, 0o755))
	}

	return utils.CopyDir(src, virtualPath)
}

// FallbackMounter tries Primary and, if the host refuses links, clears any
// partial result and uses Fallback. Other primary errors are returned as is.
type FallbackMounter struct {
	Primary  Mounter
	Fallback Mounter

	// OnFallback is called with the primary error before falling back
	OnFallback func(err error)
}

func (m FallbackMounter) Mount(realDir, virtualPath string) error {
	err := m.Primary.Mount(realDir, virtualPath)
	if err == nil {
		return nil
	}

	if !LinksRefused(err) {
		return err
	}

	if m.OnFallback != nil {
		m.OnFallback(err)
	}

	if rmErr := os.RemoveAll(virtualPath); rmErr != nil {
		return codes.FSError("remove", virtualPath, rmErr)
	}

	return m.Fallback.Mount(realDir, virtualPath)
}

// DefaultMounter prefers a symlink and copies when the host cannot link
func DefaultMounter() FallbackMounter {
	return FallbackMounter{Primary: SymlinkMounter{}, Fallback: CopyMounter{}}
}

// LinksRefused reports whether err means the host or filesystem does not
// allow symlinks, as opposed to an ordinary I/O failure
func LinksRefused(err error) bool {
	return errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, errors.ErrUnsupported) ||
		errors.Is(err, errPrivilegeNotHeld)
}

func resolve(realDir, virtualPath string) string {
	if filepath.IsAbs(realDir) {
		return realDir
	}

	return filepath.Join(filepath.Dir(virtualPath), realDir)
}
