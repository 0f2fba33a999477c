// Package device orchestrates display updates for one iPIXEL panel.
//
// A Session binds a device address to a transport and exposes the
// user-facing operations: power, device info, text display, and clock
// mode. It enforces the protocol's single-request discipline (write one
// frame, await at most one notification, then the next frame) and
// caches the panel geometry for the life of the connection.
//
// Display modes form a closed set. Text/image and clock are
// implemented; rhythm and fun are terminal stubs that return a typed
// unsupported-mode failure so callers never mistake them for success.
// Unknown mode names fall back to text/image with a warning.
//
// Errors carry a category (connection, timeout, protocol,
// unsupported mode, render) so callers can decide between retrying,
// degrading, and reporting. The device-info query is the only command
// whose missing response matters, and even there the session degrades
// to a documented default geometry instead of failing the update.
package device
