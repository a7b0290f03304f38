package memutils

// Validatable is used by the DebugValidate method to allow it to act upon
// all types with a Validate method. Layout descriptors and block metadata both
// implement it.
type Validatable interface {
	Validate() error
}
