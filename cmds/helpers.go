package cmds

// Var defines a flag taking one value of type T, returning a pointer to the
// parsed value.
func Var[T any](name string) *T {
	var value T
	Define(name, Func(func(v T) {
		value = v
	}))
	return &value
}

// Switch defines a boolean flag settable with name and clearable with !name.
func Switch(name string) *bool {
	var value bool
	Define(name, Func(func() {
		value = true
	}))
	Define("!"+name, Func(func() {
		value = false
	}))
	return &value
}
