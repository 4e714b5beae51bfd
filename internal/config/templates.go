package config

import (
	"fmt"
	"os"
)

// WriteTemplate writes a commented starter fixlex.toml to path.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(Template), 0o600)
}

const Template = `# field separator on input: "soh", a single character such as "|", or "\x01"
separator = "soh"
max_message_bytes = 65536
# largest POST /parse body the server buffers
max_request_bytes = 1048576
# 0 uses GOMAXPROCS
workers = 0
format = "text"

listen_addr = ":9400"
cors_origins = ["http://localhost:3000"]

# unset: FIXLEX_LOG_LEVEL, else info
# log_level = "info"
`
