// Package app wires the CFEM dashboard service together: configuration,
// structured logging, the session store, the dataset service and the
// HTTP router with its middleware chain. The container is built once at
// startup and owns the server lifecycle, including graceful shutdown on
// SIGINT/SIGTERM.
package app
