// Package sessions tracks live client connections and flags reconnect
// churn.
//
// Each established connection is assigned a dense Slot ID: the lowest free
// ID is always reused first, so a client that repeatedly connects, fails and
// reconnects keeps landing on the same slot. The Tracker counts recent
// connections per slot inside a sliding window; when one slot's count
// reaches the configured threshold, Established reports a warning (and logs
// it), then stays quiet for a configurable period so a flapping client
// cannot flood the log.
//
// # Usage
//
//	tracker, err := sessions.New(sessions.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	slot, warn := tracker.Established()
//	if warn {
//	    // one peer is reconnecting in a tight loop
//	}
//	defer tracker.Closed(slot)
//
// A process-wide shared instance is available through the package-level
// Established and Closed functions.
//
// # Logging and metrics
//
// The package logs through a zap logger configured with SetLogger (no-op by
// default) and registers Prometheus counters for connection events and churn
// warnings on the default registry.
package sessions
