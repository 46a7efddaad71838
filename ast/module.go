package ast

// Symbol represents an interned source-level name.  Two symbols are the same
// name iff they compare equal; symbols are immutable once created.
type Symbol string

// ModuleID uniquely identifies a module.  Identity is based on the module
// path; the tag is a registry-assigned numeric discriminator used to namespace
// the module's private names during linking.  ModuleIDs are comparable and can
// be used as map keys.
type ModuleID struct {
	path string
	tag  uint32
}

// MakeModuleID constructs a module ID from a path and a tag.  Only the
// component that interns module paths (eg. `mods.Registry`) should call this:
// tags must be unique per path for renaming to be collision-free.
func MakeModuleID(path string, tag uint32) ModuleID {
	return ModuleID{path: path, tag: tag}
}

// Path returns the module path this ID was interned from
func (id ModuleID) Path() string {
	return id.path
}

// Tag returns the module's unique numeric namespace discriminator
func (id ModuleID) Tag() uint32 {
	return id.tag
}

// IsValid indicates whether the ID refers to an interned module
func (id ModuleID) IsValid() bool {
	return id.path != ""
}

func (id ModuleID) String() string {
	return id.path
}

// Interner is the interface used to turn a module path encountered in source
// code (ie. the operand of a `require`) into a module ID
type Interner interface {
	Intern(path string) ModuleID
}
