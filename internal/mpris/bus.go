// Package mpris drives media players over the MPRIS D-Bus interface on
// the session bus.
package mpris

import (
	"github.com/godbus/dbus/v5"
)

// BusClient defines the interface for D-Bus operations.
// This abstraction allows us to mock D-Bus interactions in tests.
//
//go:generate mockgen -destination=mocks/bus_client_mock.go -package=mocks github.com/keytune/keytune/internal/mpris BusClient
type BusClient interface {
	// Close closes the D-Bus connection
	Close() error

	// NameHasOwner reports whether a well-known name is owned on the bus
	NameHasOwner(name string) (bool, error)

	// Call invokes a method on a D-Bus object
	// dest: The bus name (e.g., "org.mpris.MediaPlayer2.spotify")
	// path: The object path (e.g., "/org/mpris/MediaPlayer2")
	// method: The fully qualified method (e.g., "org.mpris.MediaPlayer2.Player.Next")
	Call(dest, path, method string, args ...any) error

	// GetProperty retrieves a property from a D-Bus object
	GetProperty(dest, path, prop string) (dbus.Variant, error)

	// SetProperty writes a property on a D-Bus object. The value must
	// already be a variant so it marshals with the 'v' signature.
	SetProperty(dest, path, prop string, value dbus.Variant) error
}

// StdBusClient is the real implementation using godbus
type StdBusClient struct {
	conn *dbus.Conn
}

// NewStdBusClient creates a real D-Bus client connected to the session bus
func NewStdBusClient() (*StdBusClient, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, err
	}
	return &StdBusClient{conn: conn}, nil
}

// Close closes the D-Bus connection
func (c *StdBusClient) Close() error {
	return c.conn.Close()
}

// NameHasOwner reports whether a well-known name is owned on the bus
func (c *StdBusClient) NameHasOwner(name string) (bool, error) {
	var has bool
	err := c.conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, name).Store(&has)
	return has, err
}

// Call invokes a method on a D-Bus object
func (c *StdBusClient) Call(dest, path, method string, args ...any) error {
	obj := c.conn.Object(dest, dbus.ObjectPath(path))
	return obj.Call(method, 0, args...).Err
}

// GetProperty retrieves a property from a D-Bus object
func (c *StdBusClient) GetProperty(dest, path, prop string) (dbus.Variant, error) {
	obj := c.conn.Object(dest, dbus.ObjectPath(path))
	return obj.GetProperty(prop)
}

// SetProperty writes a property on a D-Bus object
func (c *StdBusClient) SetProperty(dest, path, prop string, value dbus.Variant) error {
	obj := c.conn.Object(dest, dbus.ObjectPath(path))
	return obj.SetProperty(prop, value)
}
