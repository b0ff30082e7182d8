package registry

import "errors"

// ErrBuiltIn is returned on any attempt to delete or edit a built-in source.
var ErrBuiltIn = errors.New("built-in sources cannot be modified")
