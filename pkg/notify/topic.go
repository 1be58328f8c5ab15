package notify

import (
	"fmt"
	"strings"

	"github.com/quickhelper/bookingkit/pkg/account"
)

// Topic returns the live-delivery topic for a receiver. Topics are scoped by
// role first because receiver ids are only unique within a role.
func Topic(role account.Role, receiverID string) string {
	return fmt.Sprintf("%s/%s/notifications", strings.ToLower(string(role)), receiverID)
}
