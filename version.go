package sitegen

import _ "embed"

// Version is the release version of sitegen.
//
//go:embed VERSION
var Version string
