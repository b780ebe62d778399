// Package cichecks validates DCO sign-offs on commits and SPDX license
// headers in source files, for use in CI pipelines and git hooks.
//
// Related packages: config, signoff, header, runner, model, vcs, vcs/gitcli
package cichecks

import "github.com/spinedocs/cichecks/config"

// Config holds most of the configuration variables for the checks. This
// struct is intended for command-line use, so not all of its attributes are
// applicable to every operation.
//
// See "go doc github.com/spinedocs/cichecks/config Config" for more
// information.
type Config = config.Config
