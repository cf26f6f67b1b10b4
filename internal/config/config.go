package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/raphi011/cfgpair/internal/storage"
)

// DefaultConfigFile is the tracked file used when no path is given.
const DefaultConfigFile = "app.cfg"

const defaultTrackedConfig = `# cfgpair tracked configuration
#
# Commit this file. Secrets and machine-specific values belong in the local
# sibling (app.cfg -> app_local.cfg), which should stay untracked.
# Any key set there wins over the same key here.
#
# Values may reference other keys: ${key} in the same section or
# ${SECTION:key} in another one. Write $$ for a literal dollar sign.

[LOGGING]
# DEBUG, INFO, WARNING, ERROR or CRITICAL
log_level = INFO

# rotation interval: S, M, H, D or MIDNIGHT
log_freq = MIDNIGHT

# number of rotated files to keep
log_total = 7

# directory for log files
log_path = logs

# forward records at or above discord_level to a Discord webhook.
# Keep the webhook URL in the local file.
# discord_webhook = https://discordapp.com/api/webhooks/<id>/<token>
discord_level = ERROR
webhook_retries = 3

# mail CRITICAL records once every email_* key is set.
# Keep email_username and email_secret in the local file.
# email_source = alerts@example.com
# email_recipients = ops@example.com,dev@example.com
# email_server = smtp.example.com
# email_port = 587
`

const defaultLocalConfig = `# cfgpair local overrides
#
# Keep this file out of version control. Keys here win over the tracked
# file; anything not set falls back to it.

# [LOGGING]
# log_level = DEBUG
# discord_webhook = https://discordapp.com/api/webhooks/<id>/<token>
# email_username = alerts
# email_secret = <password>
`

// DefaultTrackedConfig returns the starter template for a tracked file.
func DefaultTrackedConfig() string {
	return defaultTrackedConfig
}

// DefaultLocalConfig returns the starter template for a local override file.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}

// Init writes content to path, creating parent directories.
// If force is false, an existing file is left alone and an error returned.
func Init(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
	}

	if err := storage.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
