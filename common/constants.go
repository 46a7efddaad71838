package common

const (
	SrcFileExtension = ".meld"
	ModuleFileName   = "meld-mod.toml"
	MeldVersion      = "0.1.0"
)
