package config

const (
	DefaultHost     = "localhost"
	DefaultPort     = 4455
	DefaultPassword = "secret"
)

// Default returns the connection used when no --websocket flag is given.
func Default() Connection {
	password := DefaultPassword
	return Connection{
		Host:     DefaultHost,
		Port:     DefaultPort,
		Password: &password,
	}
}
