// Package suggest implements an autocomplete text input.
//
// A Controller owns the suggestion state: what the user typed, the current
// result list and which entry is highlighted. Every search it starts is
// stamped with a generation number; a result is applied only if no newer
// search was started in the meantime, so the list always belongs to the last
// query regardless of the order in which backend calls finish.
//
// Controller.Mount returns the Input, the bubbletea component that draws the
// text field and list, resolves keys to logical Actions and listens for
// pointer presses. Input.Close releases that subscription.
package suggest
