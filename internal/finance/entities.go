package finance

import (
	"errors"
	"time"

	"github.com/arthur-debert/nanotable/internal/validation"
	"github.com/arthur-debert/nanotable/types"
)

// Escrow statuses
const (
	EscrowPending  = "pending"
	EscrowReleased = "released"
	EscrowRefunded = "refunded"
	EscrowDisputed = "disputed"
	EscrowFailed   = "failed"
)

// Milestone statuses
const (
	MilestonePending   = "pending"
	MilestoneCompleted = "completed"
	MilestoneDisputed  = "disputed"
	MilestoneFailed    = "failed"
)

// Failed transaction statuses
const (
	FailurePending  = "pending"
	FailureResolved = "resolved"
	FailureRefunded = "refunded"
)

// Dispute statuses
const (
	DisputeOpen        = "open"
	DisputeUnderReview = "under_review"
	DisputeResolved    = "resolved"
	DisputeRefunded    = "refunded"
)

// Lifecycle actions
const (
	ActionRelease = "release"
	ActionRefund  = "refund"
	ActionDispute = "dispute"
	ActionFail    = "fail"
	ActionApprove = "approve"
	ActionResolve = "resolve"
	ActionReview  = "review"
)

// RefundNote is recorded on failed transactions refunded in full
const RefundNote = "Full refund issued to client"

func stamp(at time.Time) string { return at.UTC().Format(time.RFC3339) }

// Escrow is money held between a client and a freelancer for one engagement
type Escrow struct {
	ID              string  `json:"id"`
	EngagementID    string  `json:"engagementId"`
	ClientName      string  `json:"clientName"`
	FreelancerName  string  `json:"freelancerName"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
	Description     string  `json:"description"`
	MilestoneNumber int     `json:"milestoneNumber,omitempty"`
	TotalMilestones int     `json:"totalMilestones,omitempty"`
	EscrowFee       float64 `json:"escrowFee"`
	PlatformFee     float64 `json:"platformFee"`
}

func (e Escrow) GetID() string { return e.ID }
func (e Escrow) WithID(id string) Escrow { e.ID = id; return e }
func (e Escrow) GetStatus() string { return e.Status }
func (e Escrow) WithStatus(s string) Escrow { e.Status = s; return e }
func (e Escrow) GetAmount() float64 { return e.Amount }
func (e Escrow) Timestamp() string { return e.CreatedAt }
func (e Escrow) ActorNames() []string { return []string{e.ClientName, e.FreelancerName} }
func (e Escrow) SearchText() []string {
	return []string{e.ID, e.EngagementID, e.ClientName, e.FreelancerName, e.Description}
}

// OnTransition stamps the update time
func (e Escrow) OnTransition(t types.Transition) Escrow {
	e.UpdatedAt = stamp(t.At)
	return e
}

func (e Escrow) Validate() error {
	return errors.Join(
		validation.Required("engagementId", e.EngagementID),
		validation.Required("clientName", e.ClientName),
		validation.Required("freelancerName", e.FreelancerName),
		validation.NonNegative("amount", e.Amount),
		validation.NonNegative("escrowFee", e.EscrowFee),
		validation.NonNegative("platformFee", e.PlatformFee),
		validation.Required("currency", e.Currency),
		validation.Timestamp("createdAt", e.CreatedAt),
		validation.Timestamp("updatedAt", e.UpdatedAt),
	)
}

// Milestone is one scheduled payment of a multi-part engagement.
// Progress is a percentage; a milestone at 100 is completed and vice versa.
type Milestone struct {
	ID              string  `json:"id"`
	EngagementID    string  `json:"engagementId"`
	MilestoneNumber int     `json:"milestoneNumber"`
	TotalMilestones int     `json:"totalMilestones"`
	ClientName      string  `json:"clientName"`
	FreelancerName  string  `json:"freelancerName"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
	DueDate         string  `json:"dueDate"`
	CompletedDate   string  `json:"completedDate,omitempty"`
	Description     string  `json:"description"`
	Progress        int     `json:"progress"`
	DisputeReason   string  `json:"disputeReason,omitempty"`
}

func (m Milestone) GetID() string { return m.ID }
func (m Milestone) WithID(id string) Milestone { m.ID = id; return m }
func (m Milestone) GetStatus() string { return m.Status }
func (m Milestone) WithStatus(s string) Milestone { m.Status = s; return m }
func (m Milestone) GetAmount() float64 { return m.Amount }
func (m Milestone) Timestamp() string { return m.DueDate }
func (m Milestone) ActorNames() []string { return []string{m.ClientName, m.FreelancerName} }
func (m Milestone) SearchText() []string {
	return []string{m.ID, m.EngagementID, m.ClientName, m.FreelancerName, m.Description}
}

// OnTransition completes the milestone on approval and keeps the reason
// given for a dispute
func (m Milestone) OnTransition(t types.Transition) Milestone {
	switch t.Action {
	case ActionApprove:
		m.Progress = 100
		m.CompletedDate = stamp(t.At)
	case ActionDispute:
		m.DisputeReason = t.Note
	}
	return m
}

func (m Milestone) Validate() error {
	var complete error
	if (m.Progress == 100) != (m.Status == MilestoneCompleted) {
		complete = errors.New("progress reaches 100 exactly when the milestone is completed")
	}
	return errors.Join(
		validation.Required("engagementId", m.EngagementID),
		validation.NonNegative("amount", m.Amount),
		validation.Range("progress", float64(m.Progress), 0, 100),
		complete,
		validation.Range("milestoneNumber", float64(m.MilestoneNumber), 1, float64(max(m.TotalMilestones, 1))),
		validation.Timestamp("dueDate", m.DueDate),
		validation.Timestamp("completedDate", m.CompletedDate),
	)
}

// Revenue summarizes platform earnings for one month
type Revenue struct {
	ID                      string  `json:"id"`
	Period                  string  `json:"period"`
	TotalRevenue            float64 `json:"totalRevenue"`
	Currency                string  `json:"currency"`
	EscrowFees              float64 `json:"escrowFees"`
	PlatformFees            float64 `json:"platformFees"`
	TransactionCount        int     `json:"transactionCount"`
	SuccessfulTransactions  int     `json:"successfulTransactions"`
	FailedTransactions      int     `json:"failedTransactions"`
	DisputedTransactions    int     `json:"disputedTransactions"`
	AverageTransactionValue float64 `json:"averageTransactionValue"`
}

func (r Revenue) GetID() string { return r.ID }
func (r Revenue) WithID(id string) Revenue { r.ID = id; return r }
func (r Revenue) GetAmount() float64 { return r.TotalRevenue }
func (r Revenue) SearchText() []string { return []string{r.ID, r.Period} }

// Timestamp is the first day of the period
func (r Revenue) Timestamp() string { return r.Period + "-01" }

// FailedTransaction is a payment the gateway could not complete
type FailedTransaction struct {
	ID             string  `json:"id"`
	TransactionID  string  `json:"transactionId"`
	Type           string  `json:"type"`
	ClientName     string  `json:"clientName"`
	FreelancerName string  `json:"freelancerName"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	FailureReason  string  `json:"failureReason"`
	ErrorCode      string  `json:"errorCode"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt"`
	ResolvedAt     string  `json:"resolvedAt,omitempty"`
	AdminNotes     string  `json:"adminNotes,omitempty"`
}

func (f FailedTransaction) GetID() string { return f.ID }
func (f FailedTransaction) WithID(id string) FailedTransaction { f.ID = id; return f }
func (f FailedTransaction) GetStatus() string { return f.Status }
func (f FailedTransaction) WithStatus(s string) FailedTransaction { f.Status = s; return f }
func (f FailedTransaction) GetAmount() float64 { return f.Amount }
func (f FailedTransaction) Timestamp() string { return f.CreatedAt }
func (f FailedTransaction) ActorNames() []string { return []string{f.ClientName, f.FreelancerName} }
func (f FailedTransaction) SearchText() []string {
	return []string{f.ID, f.TransactionID, f.ClientName, f.FreelancerName, f.FailureReason, f.ErrorCode}
}

// OnTransition records when and how the failure was closed
func (f FailedTransaction) OnTransition(t types.Transition) FailedTransaction {
	f.ResolvedAt = stamp(t.At)
	f.AdminNotes = t.Note
	if t.Action == ActionRefund && t.Note == "" {
		f.AdminNotes = RefundNote
	}
	return f
}

func (f FailedTransaction) Validate() error {
	return errors.Join(
		validation.Required("transactionId", f.TransactionID),
		validation.OneOf("type", f.Type, "escrow", "milestone", "payout"),
		validation.NonNegative("amount", f.Amount),
		validation.Timestamp("createdAt", f.CreatedAt),
		validation.Timestamp("resolvedAt", f.ResolvedAt),
	)
}

// Dispute is a contested escrow or milestone awaiting an admin decision
type Dispute struct {
	ID             string   `json:"id"`
	TransactionID  string   `json:"transactionId"`
	Type           string   `json:"type"`
	ClientName     string   `json:"clientName"`
	FreelancerName string   `json:"freelancerName"`
	Amount         float64  `json:"amount"`
	Currency       string   `json:"currency"`
	DisputeReason  string   `json:"disputeReason"`
	Status         string   `json:"status"`
	CreatedAt      string   `json:"createdAt"`
	ResolvedAt     string   `json:"resolvedAt,omitempty"`
	AdminNotes     string   `json:"adminNotes,omitempty"`
	Evidence       []string `json:"evidence,omitempty"`
}

func (d Dispute) GetID() string { return d.ID }
func (d Dispute) WithID(id string) Dispute { d.ID = id; return d }
func (d Dispute) GetStatus() string { return d.Status }
func (d Dispute) WithStatus(s string) Dispute { d.Status = s; return d }
func (d Dispute) GetAmount() float64 { return d.Amount }
func (d Dispute) Timestamp() string { return d.CreatedAt }
func (d Dispute) ActorNames() []string { return []string{d.ClientName, d.FreelancerName} }
func (d Dispute) SearchText() []string {
	return []string{d.ID, d.TransactionID, d.ClientName, d.FreelancerName, d.DisputeReason}
}

// OnTransition records the decision on closing transitions
func (d Dispute) OnTransition(t types.Transition) Dispute {
	if t.Action == ActionReview {
		return d
	}
	d.ResolvedAt = stamp(t.At)
	d.AdminNotes = t.Note
	return d
}

func (d Dispute) Validate() error {
	return errors.Join(
		validation.Required("transactionId", d.TransactionID),
		validation.OneOf("type", d.Type, "escrow", "milestone"),
		validation.Required("disputeReason", d.DisputeReason),
		validation.NonNegative("amount", d.Amount),
		validation.Timestamp("createdAt", d.CreatedAt),
		validation.Timestamp("resolvedAt", d.ResolvedAt),
	)
}

// Stats are the headline figures of the finance dashboard
type Stats struct {
	TotalEscrowAmount       float64 `json:"totalEscrowAmount"`
	TotalRevenue            float64 `json:"totalRevenue"`
	PendingTransactions     int     `json:"pendingTransactions"`
	FailedTransactions      int     `json:"failedTransactions"`
	DisputedTransactions    int     `json:"disputedTransactions"`
	AverageTransactionValue float64 `json:"averageTransactionValue"`
	MonthlyGrowth           float64 `json:"monthlyGrowth"`
}
