// Package cli implements taskctl, the command-line client for taskhub.
//
// Commands: register, login, whoami, tasks and logout. login stores the
// signed session cookie value in the configured session file; the other
// commands resume it through the session bridge.
package cli
