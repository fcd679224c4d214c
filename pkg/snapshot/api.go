package snapshot

// Text asserts a text snapshot with the Default store.
func Text(got string, opts ...Option) error { return Default().Text(got, opts...) }

// JSON asserts a JSON snapshot with the Default store.
func JSON(got any, opts ...Option) error { return Default().JSON(got, opts...) }

// YAML asserts a YAML snapshot with the Default store.
func YAML(got any, opts ...Option) error { return Default().YAML(got, opts...) }

// Dump asserts a Go value dump with the Default store.
func Dump(got any, opts ...Option) error { return Default().Dump(got, opts...) }

// HTML asserts an HTML snapshot with the Default store.
func HTML(got string, opts ...Option) error { return Default().HTML(got, opts...) }

// Binary asserts a binary snapshot with the Default store.
func Binary(got []byte, opts ...Option) error { return Default().Binary(got, opts...) }

// Names resolves snapshot directory and name with the Default store.
func Names(opts ...Option) (dir, name string, err error) { return Default().Names(opts...) }

// File resolves a snapshot path with the Default store.
func File(opts ...Option) (string, error) { return Default().File(opts...) }
