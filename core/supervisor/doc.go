// Package supervisor runs the HTTP serving loop and keeps it alive across
// client disconnect faults. Each cycle binds a listener, builds a fiber app
// around the sealed routing table and waits for a fault, a shutdown request
// or the loop exiting. Disconnects trigger a short backoff and a restart;
// anything else is fatal and returned from Run.
package supervisor
