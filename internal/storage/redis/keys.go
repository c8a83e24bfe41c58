package redis

import (
	"fmt"

	"github.com/intega-app/intega/internal/model"
)

// Key prefix for all account data
const keyPrefix = "intega"

// userIDCounterKey holds the monotonically increasing id allocator
func userIDCounterKey() string {
	return fmt.Sprintf("%s:counter:user_id", keyPrefix)
}

// userKey returns the Redis key for a UserRecord
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%d", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// profileKey returns the Redis key for a role-specific profile
func profileKey(role model.Role, userID model.UserID) string {
	return fmt.Sprintf("%s:profile:%s:%d", keyPrefix, role, userID)
}
