// Package librl implements a client for the rolelist shared trip checklist
// server: the REST mutation surface, the websocket event stream and a local
// mirror that converges to server state without polling.
package librl
