// Package pages binds the backend client and local store to the router.
//
// Each screen gets a controller closure that fetches what it needs and
// renders into the screen handle it was dispatched with. Actions that
// mutate backend state (sign in, save order, add songs) live here too so
// the terminal UI and the CLI share one code path.
package pages
