// Package vetting is the trust side of the admin console: the auditor
// vetting center and the moderation queue of client requests.
package vetting

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/nanotable/nanotable/collection"
	"github.com/arthur-debert/nanotable/nanotable/export"
	"github.com/arthur-debert/nanotable/types"
)

// ExportPrefix names vetting export files
const ExportPrefix = "vetting-center"

// Center owns the auditor and client request collections
type Center struct {
	Auditors *collection.Collection[Auditor]
	Requests *collection.Collection[ClientRequest]

	// Operator signs the internal notes added through the center
	Operator string

	now    func() time.Time
	logger *slog.Logger
}

// New creates an empty center; call Refresh to hydrate it
func New(logger *slog.Logger, now func() time.Time, opts ...collection.Option) (*Center, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	opts = append([]collection.Option{collection.WithLogger(logger), collection.WithTimeFunc(now)}, opts...)
	with := func(l *collection.Lifecycle) []collection.Option {
		return append(append([]collection.Option(nil), opts...), collection.WithLifecycle(l))
	}

	c := &Center{
		Operator: "Admin",
		now:      now,
		logger:   logger.With("component", "vetting"),
	}
	var err error
	if c.Auditors, err = collection.New[Auditor](AuditorsKey, with(auditorLifecycle())...); err != nil {
		return nil, err
	}
	if c.Requests, err = collection.New[ClientRequest](RequestsKey, with(requestLifecycle())...); err != nil {
		return nil, err
	}
	return c, nil
}

// Refresh hydrates both collections from their snapshots, falling back to
// seed data
func (c *Center) Refresh(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	hydrate := func(key string, fn func() bool) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !fn() {
				c.logger.Debug("using seed data", "collection", key)
			}
			return nil
		})
	}

	hydrate(AuditorsKey, func() bool { return c.Auditors.Hydrate(SeedAuditors()) })
	hydrate(RequestsKey, func() bool { return c.Requests.Hydrate(SeedRequests()) })

	if err := g.Wait(); err != nil {
		return fmt.Errorf("vetting refresh: %w", err)
	}
	return nil
}

// Invitation is the input for InviteAuditor
type Invitation struct {
	FullName        string
	Email           string
	FirmName        string
	LicenseID       string
	VATID           string
	Specializations []string
}

// InviteAuditor opens a pending application for a firm. New firms carry
// the New risk tag until they are reviewed.
func (c *Center) InviteAuditor(in Invitation) (Auditor, error) {
	if in.Email == "" {
		return Auditor{}, fmt.Errorf("%w: an invitation needs an email address", types.ErrValidation)
	}
	a, err := c.Auditors.Add(Auditor{
		Name:            in.FirmName,
		ContactName:     in.FullName,
		Email:           in.Email,
		LicenseID:       in.LicenseID,
		VATID:           in.VATID,
		Specializations: slices.Clone(in.Specializations),
		Submitted:       day(c.now()),
		Documents:       []Document{},
		Notes:           []Note{},
		RiskTags:        []string{RiskNew},
	})
	if err != nil {
		return Auditor{}, err
	}
	c.logger.Info("auditor invited", "id", a.ID, "email", a.Email)
	return a, nil
}

// ApproveAuditor accredits a pending application for two years
func (c *Center) ApproveAuditor(id string) (Auditor, error) {
	return c.Auditors.Transition(id, ActionApprove, "")
}

// RejectAuditor turns an application down. A reason is kept as an
// internal note.
func (c *Center) RejectAuditor(id, reason string) (Auditor, error) {
	return c.transitionWithNote(id, ActionReject, reason)
}

// RequestInfo asks a pending applicant for more documents
func (c *Center) RequestInfo(id, note string) (Auditor, error) {
	return c.transitionWithNote(id, ActionRequestInfo, note)
}

// ReverifyAuditor sends an active auditor back for re-verification
func (c *Center) ReverifyAuditor(id string) (Auditor, error) {
	return c.Auditors.Transition(id, ActionReverify, "")
}

// SuspendAuditor suspends an accredited auditor
func (c *Center) SuspendAuditor(id, reason string) (Auditor, error) {
	return c.transitionWithNote(id, ActionSuspend, reason)
}

func (c *Center) transitionWithNote(id, action, note string) (Auditor, error) {
	a, err := c.Auditors.Transition(id, action, note)
	if err != nil || strings.TrimSpace(note) == "" {
		return a, err
	}
	return c.AddNote(id, note)
}

// FlagAuditor tags an auditor for review. Flagging with a tag the auditor
// already carries changes nothing.
func (c *Center) FlagAuditor(id, tag string) (Auditor, error) {
	if tag == "" {
		tag = RiskWatchlist
	}
	if !slices.Contains(RiskTags, tag) {
		return Auditor{}, fmt.Errorf("%w: risk tag must be one of %s, got %q", types.ErrValidation, strings.Join(RiskTags, ", "), tag)
	}
	current, err := c.Auditors.Get(id)
	if err != nil {
		return Auditor{}, err
	}
	if slices.Contains(current.RiskTags, tag) {
		return current, nil
	}
	return c.Auditors.Update(id, func(a Auditor) Auditor {
		a.RiskTags = append(slices.Clone(a.RiskTags), tag)
		return a
	})
}

// AddNote appends an internal note signed by the operator, newest first
func (c *Center) AddNote(id, note string) (Auditor, error) {
	if strings.TrimSpace(note) == "" {
		return Auditor{}, fmt.Errorf("%w: note is empty", types.ErrValidation)
	}
	return c.Auditors.Update(id, func(a Auditor) Auditor {
		entry := Note{Author: c.Operator, Date: day(c.now()), Note: note}
		a.Notes = append([]Note{entry}, a.Notes...)
		return a
	})
}

// AcceptRequest publishes an open request to auditors
func (c *Center) AcceptRequest(id string) (ClientRequest, error) {
	return c.Requests.Transition(id, ActionAccept, "")
}

// CloseRequest closes an open or accepted request
func (c *Center) CloseRequest(id string) (ClientRequest, error) {
	return c.Requests.Transition(id, ActionClose, "")
}

// HideRequest takes a request out of every listing
func (c *Center) HideRequest(id string) (ClientRequest, error) {
	return c.Requests.Transition(id, ActionHide, "")
}

// MarkRequest sets the risk marker of a request, as flagging it as spam or
// sensitive does
func (c *Center) MarkRequest(id, marker string) (ClientRequest, error) {
	return c.Requests.Update(id, func(r ClientRequest) ClientRequest {
		r.Risk = marker
		return r
	})
}

// DeleteRequest removes a request permanently
func (c *Center) DeleteRequest(id string) error {
	return c.Requests.Remove(id)
}

// Export bundles auditors and client requests
func (c *Center) Export(date time.Time) export.Bundle {
	return export.Bundle{
		Prefix: ExportPrefix,
		Date:   date,
		Sections: []export.Section{
			{Key: "auditors", Sheet: "Auditors", Rows: c.Auditors.All()},
			{Key: "clientRequests", Sheet: "Client Requests", Rows: c.Requests.All()},
		},
	}
}
