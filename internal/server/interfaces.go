package server

// Server is the lifecycle contract for the directory's transport server.
//
// [Server.RunServer] blocks until a stop signal arrives or the listener
// fails; [Server.Shutdown] drains in-flight requests and releases the
// listener.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
