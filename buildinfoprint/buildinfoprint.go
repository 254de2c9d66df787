// buildinfoprint is imported for the side effect of printing the build
// provenance to os.Stderr
package buildinfoprint

import "github.com/lilab-monash/protpeptigram/buildinfo"

func init() {
	buildinfo.PrintToStdErr()
}
