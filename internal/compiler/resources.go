package compiler

import (
	"github.com/Norgate-AV/jpack/internal/layout"
	"github.com/Norgate-AV/jpack/internal/utils"
)

// CopyResources merges resources/ into output/classes. A project without a
// resources directory is left untouched.
func CopyResources(projectRoot string) error {
	l := layout.New(projectRoot)

	if !utils.IsDir(l.Resources()) {
		return nil
	}

	return utils.CopyDir(l.Resources(), l.Classes())
}
