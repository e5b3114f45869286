package finance

import "github.com/arthur-debert/nanotable/nanotable/collection"

// Persistence keys
const (
	EscrowKey    = "finance_escrow_transactions"
	MilestoneKey = "finance_milestone_payments"
	RevenueKey   = "finance_platform_revenue"
	FailedKey    = "finance_failed_transactions"
	DisputeKey   = "finance_disputed_transactions"
)

func escrowLifecycle() *collection.Lifecycle {
	return collection.NewLifecycle(EscrowPending, EscrowReleased, EscrowRefunded, EscrowDisputed, EscrowFailed).
		Allow(ActionRelease, EscrowReleased, EscrowPending, EscrowDisputed).
		Allow(ActionRefund, EscrowRefunded, EscrowPending, EscrowDisputed, EscrowFailed).
		Allow(ActionDispute, EscrowDisputed, EscrowPending).
		Allow(ActionFail, EscrowFailed, EscrowPending)
}

func milestoneLifecycle() *collection.Lifecycle {
	return collection.NewLifecycle(MilestonePending, MilestoneCompleted, MilestoneDisputed, MilestoneFailed).
		Allow(ActionApprove, MilestoneCompleted, MilestonePending, MilestoneDisputed).
		Allow(ActionDispute, MilestoneDisputed, MilestonePending).
		Allow(ActionFail, MilestoneFailed, MilestonePending)
}

func failureLifecycle() *collection.Lifecycle {
	return collection.NewLifecycle(FailurePending, FailureResolved, FailureRefunded).
		Allow(ActionResolve, FailureResolved, FailurePending).
		Allow(ActionRefund, FailureRefunded, FailurePending)
}

func disputeLifecycle() *collection.Lifecycle {
	return collection.NewLifecycle(DisputeOpen, DisputeUnderReview, DisputeResolved, DisputeRefunded).
		Allow(ActionReview, DisputeUnderReview, DisputeOpen).
		Allow(ActionResolve, DisputeResolved, DisputeOpen, DisputeUnderReview).
		Allow(ActionRefund, DisputeRefunded, DisputeOpen, DisputeUnderReview)
}
