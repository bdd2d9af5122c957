package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

const Scheme = "obsws"

var (
	ErrInvalidURL  = errors.New("invalid URL format, use the format obsws://hostname:port/password")
	ErrMissingPort = errors.New("please specify a port in the format obsws://hostname:port/password")
)

// ParseURL reads an obsws://host:port[/password] connection string.
//
// The password is the raw path with its leading separator removed; further
// slashes are part of the password.
func ParseURL(raw string) (Connection, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Connection{}, ErrInvalidURL
	}
	if u.Scheme != Scheme {
		return Connection{}, ErrInvalidURL
	}

	host := u.Hostname()
	if host == "" {
		return Connection{}, ErrInvalidURL
	}

	portText := u.Port()
	if portText == "" {
		return Connection{}, ErrMissingPort
	}
	port, err := strconv.ParseUint(portText, 10, 16)
	if err != nil {
		return Connection{}, fmt.Errorf("%w: port %q", ErrInvalidURL, portText)
	}

	conn := Connection{Host: host, Port: uint16(port)}
	if path := u.EscapedPath(); path != "" {
		password := path[1:]
		conn.Password = &password
	}
	return conn, nil
}
