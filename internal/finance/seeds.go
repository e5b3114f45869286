package finance

// Seed data shown until the operator changes something. Each function
// returns a fresh slice.

func SeedEscrows() []Escrow {
	return []Escrow{
		{ID: "ESC-001", EngagementID: "ENG-001", ClientName: "TechCorp Inc.", FreelancerName: "John Developer", Amount: 5000, Currency: "USD", Status: EscrowPending, CreatedAt: "2024-01-15T10:30:00Z", UpdatedAt: "2024-01-15T10:30:00Z", Description: "Website development milestone 1", MilestoneNumber: 1, TotalMilestones: 3, EscrowFee: 250, PlatformFee: 500},
		{ID: "ESC-002", EngagementID: "ENG-002", ClientName: "Design Studio", FreelancerName: "Sarah Designer", Amount: 3000, Currency: "USD", Status: EscrowReleased, CreatedAt: "2024-01-14T14:20:00Z", UpdatedAt: "2024-01-16T09:15:00Z", Description: "Logo design project", MilestoneNumber: 1, TotalMilestones: 2, EscrowFee: 150, PlatformFee: 300},
		{ID: "ESC-003", EngagementID: "ENG-003", ClientName: "Marketing Agency", FreelancerName: "Mike Writer", Amount: 2000, Currency: "USD", Status: EscrowDisputed, CreatedAt: "2024-01-13T16:45:00Z", UpdatedAt: "2024-01-17T11:30:00Z", Description: "Content writing services", MilestoneNumber: 2, TotalMilestones: 4, EscrowFee: 100, PlatformFee: 200},
		{ID: "ESC-004", EngagementID: "ENG-004", ClientName: "StartupXYZ", FreelancerName: "Lisa Developer", Amount: 8000, Currency: "USD", Status: EscrowFailed, CreatedAt: "2024-01-12T12:00:00Z", UpdatedAt: "2024-01-15T08:45:00Z", Description: "Mobile app development", MilestoneNumber: 1, TotalMilestones: 5, EscrowFee: 400, PlatformFee: 800},
	}
}

func SeedMilestones() []Milestone {
	return []Milestone{
		{ID: "MIL-001", EngagementID: "ENG-001", MilestoneNumber: 1, TotalMilestones: 3, ClientName: "TechCorp Inc.", FreelancerName: "John Developer", Amount: 5000, Currency: "USD", Status: MilestonePending, DueDate: "2024-01-25T00:00:00Z", Description: "Website development milestone 1", Progress: 75},
		{ID: "MIL-002", EngagementID: "ENG-002", MilestoneNumber: 2, TotalMilestones: 2, ClientName: "Design Studio", FreelancerName: "Sarah Designer", Amount: 3000, Currency: "USD", Status: MilestoneCompleted, DueDate: "2024-01-20T00:00:00Z", CompletedDate: "2024-01-18T15:30:00Z", Description: "Logo design project", Progress: 100},
		{ID: "MIL-003", EngagementID: "ENG-003", MilestoneNumber: 3, TotalMilestones: 4, ClientName: "Marketing Agency", FreelancerName: "Mike Writer", Amount: 1500, Currency: "USD", Status: MilestoneDisputed, DueDate: "2024-01-22T00:00:00Z", Description: "Content writing services", Progress: 60},
		{ID: "MIL-004", EngagementID: "ENG-004", MilestoneNumber: 1, TotalMilestones: 5, ClientName: "StartupXYZ", FreelancerName: "Lisa Developer", Amount: 8000, Currency: "USD", Status: MilestoneFailed, DueDate: "2024-01-30T00:00:00Z", Description: "Mobile app development", Progress: 25},
	}
}

func SeedRevenue() []Revenue {
	return []Revenue{
		{ID: "REV-001", Period: "2024-01", TotalRevenue: 45000, Currency: "USD", EscrowFees: 2250, PlatformFees: 4500, TransactionCount: 45, SuccessfulTransactions: 38, FailedTransactions: 4, DisputedTransactions: 3, AverageTransactionValue: 1000},
		{ID: "REV-002", Period: "2023-12", TotalRevenue: 38000, Currency: "USD", EscrowFees: 1900, PlatformFees: 3800, TransactionCount: 38, SuccessfulTransactions: 32, FailedTransactions: 3, DisputedTransactions: 3, AverageTransactionValue: 1000},
		{ID: "REV-003", Period: "2023-11", TotalRevenue: 42000, Currency: "USD", EscrowFees: 2100, PlatformFees: 4200, TransactionCount: 42, SuccessfulTransactions: 36, FailedTransactions: 4, DisputedTransactions: 2, AverageTransactionValue: 1000},
	}
}

func SeedFailed() []FailedTransaction {
	return []FailedTransaction{
		{ID: "FAIL-001", TransactionID: "ESC-004", Type: "escrow", ClientName: "StartupXYZ", FreelancerName: "Lisa Developer", Amount: 8000, Currency: "USD", FailureReason: "Insufficient funds in client account", ErrorCode: "INSUFFICIENT_FUNDS", Status: FailurePending, CreatedAt: "2024-01-15T08:45:00Z"},
		{ID: "FAIL-002", TransactionID: "MIL-004", Type: "milestone", ClientName: "StartupXYZ", FreelancerName: "Lisa Developer", Amount: 8000, Currency: "USD", FailureReason: "Payment gateway timeout", ErrorCode: "GATEWAY_TIMEOUT", Status: FailureResolved, CreatedAt: "2024-01-14T16:20:00Z", ResolvedAt: "2024-01-16T10:30:00Z", AdminNotes: "Payment retried successfully"},
		{ID: "FAIL-003", TransactionID: "ESC-005", Type: "escrow", ClientName: "Digital Solutions", FreelancerName: "Alex Designer", Amount: 2500, Currency: "USD", FailureReason: "Invalid payment method", ErrorCode: "INVALID_PAYMENT_METHOD", Status: FailurePending, CreatedAt: "2024-01-13T11:15:00Z"},
	}
}

func SeedDisputes() []Dispute {
	return []Dispute{
		{ID: "DISP-001", TransactionID: "ESC-003", Type: "escrow", ClientName: "Marketing Agency", FreelancerName: "Mike Writer", Amount: 2000, Currency: "USD", DisputeReason: "Quality of work not meeting requirements", Status: DisputeUnderReview, CreatedAt: "2024-01-17T11:30:00Z", Evidence: []string{"client_feedback.pdf", "work_samples.zip"}},
		{ID: "DISP-002", TransactionID: "MIL-003", Type: "milestone", ClientName: "Marketing Agency", FreelancerName: "Mike Writer", Amount: 1500, Currency: "USD", DisputeReason: "Delayed delivery", Status: DisputeOpen, CreatedAt: "2024-01-16T14:45:00Z"},
		{ID: "DISP-003", TransactionID: "ESC-006", Type: "escrow", ClientName: "Creative Studio", FreelancerName: "Emma Developer", Amount: 6000, Currency: "USD", DisputeReason: "Scope creep - additional work not agreed", Status: DisputeResolved, CreatedAt: "2024-01-10T09:20:00Z", ResolvedAt: "2024-01-15T16:30:00Z", AdminNotes: "Partial refund issued to client"},
	}
}
