// Package cli provides the interactive tripmate command-line client.
//
// It wires configuration, encrypted local storage, the resilient HTTP caller
// and the session, trip and places services behind a small REPL. On start
// the stored session is restored; when there is none the user is asked to
// log in.
//
// Commands map to the screens of the mobile app: home, trips, mytrips,
// stats, account, plantrip and nearby, plus the auth commands login,
// signup, logout and dev.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
