package dsn

import (
	"capsight_backend/internal/service/config"
	"fmt"
	"strings"
)

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// FromConfig собирает DSN строку из конфигурации базы
func FromConfig(db config.DatabaseConfig) string {
	if db.Host == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		quote(db.Host), quote(db.Port), quote(db.User), quote(db.Pass), quote(db.Name), quote(db.SSLMode),
		int(db.ConnectTimeout.Seconds()))
}

// quote wraps a value in single quotes, escaping backslashes and quotes.
func quote(v string) string {
	return "'" + quoteEscaper.Replace(v) + "'"
}
