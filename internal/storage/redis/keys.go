package redis

import (
	"fmt"

	"github.com/yoBruxo/PTbotKND/internal/model"
)

// Key prefix for all party data
const keyPrefix = "ptbot"

// partyKey returns the Redis key for a Party
func partyKey(id model.PartyID) string {
	return fmt.Sprintf("%s:party:%d", keyPrefix, id)
}

// nextIDKey returns the Redis key for the party id counter
func nextIDKey() string {
	return fmt.Sprintf("%s:party:next_id", keyPrefix)
}
