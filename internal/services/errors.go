package services

import "errors"

// ErrNoDataset signals that no dataset has been loaded into the session
// yet. The transport layer maps it to a 404.
var ErrNoDataset = errors.New("no dataset loaded")
