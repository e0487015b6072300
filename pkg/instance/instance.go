package instance

import "os"

// GetID returns the bot instance identifier or a default value.
func GetID() string {
	if id := os.Getenv("STOREBOT_INSTANCE_ID"); id != "" {
		return id
	}
	return "bot-0"
}
