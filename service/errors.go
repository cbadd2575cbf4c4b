package services

import "errors"

// ErrRunInProgress is wrapped by the ConfigurationError returned when
// another batch run holds the domain's run lock.
var ErrRunInProgress = errors.New("another batch run is in progress for this domain")

var errEmptyCatalog = errors.New("catalog is empty")
