package location

import "errors"

// ErrLocationExists is returned on an insert with a duplicate name.
var ErrLocationExists = errors.New("location already exists")
