package solution

import "errors"

// ErrCapacityNotPositive is returned by NewStore when capacity <= 0.
var ErrCapacityNotPositive = errors.New("solution: store capacity must be positive")
