package finance

import "errors"

// ErrInvalidInput is wrapped by every validation failure. Nothing is
// computed when it is returned.
var ErrInvalidInput = errors.New("entrada inválida")
