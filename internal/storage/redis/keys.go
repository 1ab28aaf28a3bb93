package redis

import "fmt"

// Key prefix for all journal data
const keyPrefix = "pjournal"

// credentialKey returns the Redis key for a user's credential document
func credentialKey(username string) string {
	return fmt.Sprintf("%s:credential:%s", keyPrefix, username)
}

// activityLogKey returns the Redis key for a user's activity log document
func activityLogKey(username string) string {
	return fmt.Sprintf("%s:log:%s", keyPrefix, username)
}
