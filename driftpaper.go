package driftpaper

import _ "embed"

//go:embed version.txt
var Version string

//go:embed driftpaper.toml
var DefaultConfig string
