// Package finance is the finance hub of the admin console: escrow ledger,
// milestone payments, platform revenue and the failed and disputed
// transaction queues.
package finance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/nanotable/nanotable/collection"
	"github.com/arthur-debert/nanotable/nanotable/export"
	"github.com/arthur-debert/nanotable/types"
)

// ExportPrefix names finance export files
const ExportPrefix = "finance-hub"

// Resolution is how a dispute is settled
type Resolution string

const (
	// Release pays the freelancer
	Release Resolution = "release"
	// Refund returns the money to the client
	Refund Resolution = "refund"
)

// ParseResolution accepts release or refund
func ParseResolution(s string) (Resolution, error) {
	switch r := Resolution(s); r {
	case Release, Refund:
		return r, nil
	}
	return "", fmt.Errorf("%w: resolution action must be release or refund, got %q", types.ErrValidation, s)
}

// Hub owns the finance collections
type Hub struct {
	Escrows    *collection.Collection[Escrow]
	Milestones *collection.Collection[Milestone]
	Revenue    *collection.Collection[Revenue]
	Failed     *collection.Collection[FailedTransaction]
	Disputes   *collection.Collection[Dispute]

	logger *slog.Logger
}

// New creates an empty hub; call Refresh to hydrate it. opts apply to
// every collection, so pass collection.WithAdapter to persist.
func New(logger *slog.Logger, opts ...collection.Option) (*Hub, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts = append([]collection.Option{collection.WithLogger(logger)}, opts...)
	with := func(l *collection.Lifecycle) []collection.Option {
		return append(append([]collection.Option(nil), opts...), collection.WithLifecycle(l))
	}

	h := &Hub{logger: logger.With("component", "finance")}
	var err error
	if h.Escrows, err = collection.New[Escrow](EscrowKey, with(escrowLifecycle())...); err != nil {
		return nil, err
	}
	if h.Milestones, err = collection.New[Milestone](MilestoneKey, with(milestoneLifecycle())...); err != nil {
		return nil, err
	}
	if h.Revenue, err = collection.New[Revenue](RevenueKey, opts...); err != nil {
		return nil, err
	}
	if h.Failed, err = collection.New[FailedTransaction](FailedKey, with(failureLifecycle())...); err != nil {
		return nil, err
	}
	if h.Disputes, err = collection.New[Dispute](DisputeKey, with(disputeLifecycle())...); err != nil {
		return nil, err
	}
	return h, nil
}

// Refresh hydrates every collection from its snapshot, concurrently,
// falling back to the seed data for each one that has none
func (h *Hub) Refresh(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	hydrate := func(key string, fn func() bool) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !fn() {
				h.logger.Debug("using seed data", "collection", key)
			}
			return nil
		})
	}

	hydrate(EscrowKey, func() bool { return h.Escrows.Hydrate(SeedEscrows()) })
	hydrate(MilestoneKey, func() bool { return h.Milestones.Hydrate(SeedMilestones()) })
	hydrate(RevenueKey, func() bool { return h.Revenue.Hydrate(SeedRevenue()) })
	hydrate(FailedKey, func() bool { return h.Failed.Hydrate(SeedFailed()) })
	hydrate(DisputeKey, func() bool { return h.Disputes.Hydrate(SeedDisputes()) })

	if err := g.Wait(); err != nil {
		return fmt.Errorf("finance refresh: %w", err)
	}
	return nil
}

// ReleaseEscrow pays out a pending or disputed escrow
func (h *Hub) ReleaseEscrow(id string) (Escrow, error) {
	return h.Escrows.Transition(id, ActionRelease, "")
}

// RefundEscrow returns an escrow to the client
func (h *Hub) RefundEscrow(id string) (Escrow, error) {
	return h.Escrows.Transition(id, ActionRefund, "")
}

// ApproveMilestone completes a milestone
func (h *Hub) ApproveMilestone(id string) (Milestone, error) {
	return h.Milestones.Transition(id, ActionApprove, "")
}

// DisputeMilestone flags a pending milestone, keeping the reason
func (h *Hub) DisputeMilestone(id, reason string) (Milestone, error) {
	if reason == "" {
		return Milestone{}, fmt.Errorf("%w: a dispute reason is required", types.ErrValidation)
	}
	return h.Milestones.Transition(id, ActionDispute, reason)
}

// SetMilestoneProgress records progress on a milestone. Reaching 100
// approves it.
func (h *Hub) SetMilestoneProgress(id string, progress int) (Milestone, error) {
	if progress == 100 {
		return h.ApproveMilestone(id)
	}
	return h.Milestones.Update(id, func(m Milestone) Milestone {
		m.Progress = progress
		return m
	})
}

// ResolveFailed closes a failed transaction with the admin's notes
func (h *Hub) ResolveFailed(id, resolution string) (FailedTransaction, error) {
	if resolution == "" {
		return FailedTransaction{}, fmt.Errorf("%w: resolution notes are required", types.ErrValidation)
	}
	return h.Failed.Transition(id, ActionResolve, resolution)
}

// RefundFailed refunds a failed transaction in full
func (h *Hub) RefundFailed(id string) (FailedTransaction, error) {
	return h.Failed.Transition(id, ActionRefund, RefundNote)
}

// ReviewDispute moves an open dispute under review
func (h *Hub) ReviewDispute(id string) (Dispute, error) {
	return h.Disputes.Transition(id, ActionReview, "")
}

// ResolveDispute settles a dispute and applies the outcome to the disputed
// transaction: releasing pays out the escrow (or approves the milestone),
// refunding refunds the escrow. A related record that is missing or cannot
// take the outcome is logged and left alone; the dispute stays settled.
func (h *Hub) ResolveDispute(id, notes string, action Resolution) (Dispute, error) {
	if notes == "" {
		return Dispute{}, fmt.Errorf("%w: resolution notes are required", types.ErrValidation)
	}
	if _, err := ParseResolution(string(action)); err != nil {
		return Dispute{}, err
	}
	transition := ActionResolve
	if action == Refund {
		transition = ActionRefund
	}

	d, err := h.Disputes.Transition(id, transition, notes)
	if err != nil {
		return Dispute{}, err
	}

	var cascadeErr error
	switch {
	case d.Type == "escrow" && action == Release:
		_, cascadeErr = h.ReleaseEscrow(d.TransactionID)
	case d.Type == "escrow" && action == Refund:
		_, cascadeErr = h.RefundEscrow(d.TransactionID)
	case d.Type == "milestone" && action == Release:
		_, cascadeErr = h.ApproveMilestone(d.TransactionID)
	}
	if cascadeErr != nil {
		h.logger.Warn("dispute settled without updating the disputed transaction",
			"dispute", id, "transaction", d.TransactionID, "error", cascadeErr)
	}
	return d, nil
}

// Stats derives the dashboard figures from the current collections.
// Revenue figures come from the latest period; growth compares it with the
// period before, rounded to one decimal.
func (h *Hub) Stats() Stats {
	var s Stats
	for _, e := range h.Escrows.All() {
		s.TotalEscrowAmount += e.Amount
		if e.Status == EscrowPending {
			s.PendingTransactions++
		}
	}
	for _, m := range h.Milestones.All() {
		if m.Status == MilestonePending {
			s.PendingTransactions++
		}
	}
	for _, f := range h.Failed.All() {
		if f.Status == FailurePending {
			s.PendingTransactions++
		}
	}
	s.FailedTransactions = h.Failed.Len()
	s.DisputedTransactions = h.Disputes.Len()

	periods := h.Revenue.All()
	sort.SliceStable(periods, func(i, j int) bool { return periods[i].Period > periods[j].Period })
	if len(periods) > 0 {
		s.TotalRevenue = periods[0].TotalRevenue
		s.AverageTransactionValue = periods[0].AverageTransactionValue
	}
	if len(periods) > 1 && periods[1].TotalRevenue != 0 {
		growth := (periods[0].TotalRevenue - periods[1].TotalRevenue) / periods[1].TotalRevenue * 100
		s.MonthlyGrowth = math.Round(growth*10) / 10
	}
	return s
}

// Export bundles every finance collection plus the current stats
func (h *Hub) Export(date time.Time) export.Bundle {
	return export.Bundle{
		Prefix: ExportPrefix,
		Date:   date,
		Sections: []export.Section{
			{Key: "escrowTransactions", Sheet: "Escrow", Rows: h.Escrows.All()},
			{Key: "milestonePayments", Sheet: "Milestones", Rows: h.Milestones.All()},
			{Key: "failedTransactions", Sheet: "Failed", Rows: h.Failed.All()},
			{Key: "disputedTransactions", Sheet: "Disputed", Rows: h.Disputes.All()},
			{Key: "platformRevenue", Sheet: "Revenue", Rows: h.Revenue.All()},
			{Key: "stats", Sheet: "Stats", Rows: h.Stats()},
		},
	}
}
