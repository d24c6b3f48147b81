package settings

import (
	"fmt"

	"github.com/lumapos/lumapos/internal/shared"
)

// EngineType names the database engine the connection panel simulates.
type EngineType string

const (
	EngineSQLite EngineType = "sqlite"
	EngineMySQL  EngineType = "mysql"
)

// ConnectionMode selects how AI analysis requests are routed.
type ConnectionMode string

const (
	// ModeDirect calls the Gemini API with the server-held credential.
	ModeDirect ConnectionMode = "direct"
	// ModeProxy forwards the data to an operator-supplied backend URL.
	ModeProxy ConnectionMode = "proxy"
)

// DbConfig is the connection panel state. The database fields are cosmetic,
// only ConnectionMode and ProxyURL change runtime behaviour.
type DbConfig struct {
	Type           EngineType     `json:"type"`
	Host           string         `json:"host,omitempty"`
	User           string         `json:"user,omitempty"`
	Password       string         `json:"password,omitempty"`
	Database       string         `json:"database,omitempty"`
	Connected      bool           `json:"connected"`
	ConnectionMode ConnectionMode `json:"connectionMode"`
	ProxyURL       string         `json:"proxyUrl,omitempty"`
}

// DefaultConfig mirrors the out-of-the-box panel state.
func DefaultConfig() DbConfig {
	return DbConfig{
		Type:           EngineSQLite,
		Database:       "sales_db.sqlite",
		Connected:      true,
		ConnectionMode: ModeDirect,
	}
}

// Redacted returns a copy safe to ship to clients.
func (c DbConfig) Redacted() DbConfig {
	c.Password = ""
	return c
}

// Validate checks the enum fields.
func (c DbConfig) Validate() error {
	switch c.Type {
	case EngineSQLite, EngineMySQL:
	default:
		return fmt.Errorf("%w: unknown engine %q", shared.ErrInvalidInput, c.Type)
	}
	switch c.ConnectionMode {
	case ModeDirect, ModeProxy:
	default:
		return fmt.Errorf("%w: unknown connection mode %q", shared.ErrInvalidInput, c.ConnectionMode)
	}
	return nil
}
