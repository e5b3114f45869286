package admin

// Seed data shown until the operator changes something. Each function
// returns a fresh value.

func SeedUsers() []User {
	return []User{
		{ID: "1", Name: "John Admin", Email: "john@sheetsway.com", Role: RoleSuperAdmin, Status: UserActive, LastLogin: "2024-01-15 14:30:00", Permissions: []string{"read", "write", "delete", "admin"}, CreatedAt: "2024-01-01"},
		{ID: "2", Name: "Sarah Manager", Email: "sarah@sheetsway.com", Role: RoleAdmin, Status: UserActive, LastLogin: "2024-01-14 09:15:00", Permissions: []string{"read", "write"}, CreatedAt: "2024-01-05"},
		{ID: "3", Name: "Mike Moderator", Email: "mike@sheetsway.com", Role: RoleModerator, Status: UserInactive, LastLogin: "2024-01-10 16:45:00", Permissions: []string{"read"}, CreatedAt: "2024-01-08"},
	}
}

func SeedAPIKeys() []APIKey {
	return []APIKey{
		{ID: "1", Name: "Production API Key", Key: "sk_live_1234567890abcdef", Permissions: []string{"read", "write"}, CreatedAt: "2024-01-01", LastUsed: "2024-01-15 14:30:00", Status: KeyActive},
		{ID: "2", Name: "Development API Key", Key: "sk_test_abcdef1234567890", Permissions: []string{"read"}, CreatedAt: "2024-01-10", LastUsed: "2024-01-14 09:15:00", Status: KeyActive},
	}
}

func SeedActivity() []ActivityLog {
	return []ActivityLog{
		{ID: "1", Action: "Login", User: "John Admin", At: "2024-01-15 14:30:00", Details: "User logged in successfully"},
		{ID: "2", Action: "Add Admin User", User: "John Admin", At: "2024-01-15 13:45:00", Details: "Added new admin user: sarah@sheetsway.com"},
		{ID: "3", Action: "Delete User", User: "Sarah Manager", At: "2024-01-14 11:20:00", Details: "Deleted user account: olduser@sheetsway.com"},
		{ID: "4", Action: "Update Settings", User: "John Admin", At: "2024-01-14 10:15:00", Details: "Updated system maintenance mode settings"},
		{ID: "5", Action: "Export Data", User: "Sarah Manager", At: "2024-01-13 16:30:00", Details: "Exported user data for compliance audit"},
	}
}

func SeedSystemLogs() []SystemLog {
	return []SystemLog{
		{ID: "1", At: "2024-01-15 14:30:00", Level: "INFO", Component: "Authentication", Message: "User login successful", Details: "User john@sheetsway.com logged in from IP 192.168.1.100", Environment: "production", RequestID: "req_123456789"},
		{ID: "2", At: "2024-01-15 13:45:00", Level: "WARNING", Component: "Database", Message: "Slow query detected", Details: "Query took 2.5 seconds to execute", Environment: "production", RequestID: "req_123456788"},
		{ID: "3", At: "2024-01-15 12:20:00", Level: "ERROR", Component: "API", Message: "Rate limit exceeded", Details: "User exceeded API rate limit of 100 requests per minute", Environment: "production", RequestID: "req_123456787"},
		{ID: "4", At: "2024-01-15 11:15:00", Level: "INFO", Component: "System", Message: "Backup completed", Details: "Daily backup completed successfully", Environment: "production", RequestID: "req_123456786"},
		{ID: "5", At: "2024-01-15 10:30:00", Level: "ERROR", Component: "Email Service", Message: "Failed to send email", Details: "SMTP connection timeout", Environment: "production", RequestID: "req_123456785",
			StackTrace: "Error: SMTP timeout\n    at EmailService.send (/app/services/email.js:45:12)\n    at async processEmail (/app/controllers/email.js:23:8)"},
	}
}

func DefaultNotifications() NotificationConfig {
	return NotificationConfig{
		Email:           true,
		SystemAlerts:    true,
		AuditLogs:       false,
		SecurityEvents:  true,
		MaintenanceMode: false,
		EmailRecipients: []string{"admin@sheetsway.com"},
	}
}

func DefaultSettings() SystemSettings {
	return SystemSettings{
		SiteName:       "SheetsWay Admin",
		AdminEmail:     "admin@sheetsway.com",
		Timezone:       "UTC",
		TwoFactorAuth:  true,
		SessionTimeout: 30,
		IPAddresses:    []string{},
		CacheEnabled:   true,
		CacheTTL:       3600,
	}
}
