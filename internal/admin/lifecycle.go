package admin

import "github.com/arthur-debert/nanotable/nanotable/collection"

// Persistence keys
const (
	UsersKey         = "admin_users"
	KeysKey          = "api_keys"
	ActivityKey      = "activity_logs"
	NotificationsKey = "notification_config"
	SettingsKey      = "system_settings"
)

// Suspended users stay suspended; reinstating an operator means creating
// a new account.
func userLifecycle() *collection.Lifecycle {
	return collection.NewLifecycle(UserActive, UserInactive, UserSuspended).
		Allow(ActionDeactivate, UserInactive, UserActive).
		Allow(ActionSuspend, UserSuspended, UserActive, UserInactive)
}

func keyLifecycle() *collection.Lifecycle {
	return collection.NewLifecycle(KeyActive, KeyInactive, KeyExpired).
		Allow(ActionDeactivate, KeyInactive, KeyActive).
		Allow(ActionExpire, KeyExpired, KeyActive, KeyInactive)
}
