// Package config resolves and defaults the obs-websocket connection descriptor.
package config

import (
	"net"
	"strconv"
)

// Connection is the immutable endpoint descriptor for one obsctl run.
type Connection struct {
	Host string
	Port uint16
	// Password is nil when the connection string carries no credential.
	Password *string
}

// Address renders host:port, bracketing IPv6 hosts.
func (c Connection) Address() string {
	return net.JoinHostPort(c.Host, strconv.FormatUint(uint64(c.Port), 10))
}

// URL renders the websocket endpoint dialed for this connection.
func (c Connection) URL() string {
	return "ws://" + c.Address()
}

// HasPassword reports whether a credential (possibly empty) was supplied.
func (c Connection) HasPassword() bool {
	return c.Password != nil
}
