// Package config handles configuration loading for equipos-api.
//
// Configuration is loaded from a YAML file with ${VAR_NAME} environment
// variable expansion. Example:
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//	database:
//	  path: "/var/lib/equipos/equipos.db"
//	auth:
//	  jwt_secret: "${EQUIPOS_JWT_SECRET}"
//	  token_ttl: "1h"
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// Load() validates required fields (server address, database path, JWT
// secret of at least 32 bytes) and parses duration strings with Go's
// time.ParseDuration syntax.
package config
