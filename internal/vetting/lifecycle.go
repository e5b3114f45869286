package vetting

import "github.com/arthur-debert/nanotable/nanotable/collection"

// Persistence keys
const (
	AuditorsKey = "vetting_auditors"
	RequestsKey = "client_requests"
)

// An accreditation that lapsed into re-verification cannot be approved
// again; the firm reapplies as a new auditor.
func auditorLifecycle() *collection.Lifecycle {
	return collection.NewLifecycle(AuditorPending, AuditorActionRequired, AuditorActive, AuditorReverify, AuditorSuspended, AuditorRejected).
		Allow(ActionRequestInfo, AuditorActionRequired, AuditorPending).
		Allow(ActionApprove, AuditorActive, AuditorPending, AuditorActionRequired).
		Allow(ActionReject, AuditorRejected, AuditorPending, AuditorActionRequired, AuditorReverify).
		Allow(ActionReverify, AuditorReverify, AuditorActive).
		Allow(ActionSuspend, AuditorSuspended, AuditorActive, AuditorReverify)
}

func requestLifecycle() *collection.Lifecycle {
	return collection.NewLifecycle(RequestOpen, RequestAccepted, RequestClosed, RequestHidden).
		Allow(ActionAccept, RequestAccepted, RequestOpen).
		Allow(ActionClose, RequestClosed, RequestOpen, RequestAccepted).
		Allow(ActionHide, RequestHidden, RequestOpen, RequestAccepted, RequestClosed)
}
