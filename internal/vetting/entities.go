package vetting

import (
	"errors"
	"fmt"
	"time"

	"github.com/arthur-debert/nanotable/internal/validation"
	"github.com/arthur-debert/nanotable/types"
)

// Auditor statuses
const (
	AuditorPending        = "pending"
	AuditorActionRequired = "action_required"
	AuditorActive         = "active"
	AuditorReverify       = "needs_reverification"
	AuditorSuspended      = "suspended"
	AuditorRejected       = "rejected"
)

// Client request statuses
const (
	RequestOpen     = "open"
	RequestAccepted = "accepted"
	RequestClosed   = "closed"
	RequestHidden   = "hidden"
)

// Lifecycle actions
const (
	ActionRequestInfo = "request_info"
	ActionApprove     = "approve"
	ActionReject      = "reject"
	ActionReverify    = "reverify"
	ActionSuspend     = "suspend"
	ActionAccept      = "accept"
	ActionClose       = "close"
	ActionHide        = "hide"
)

// Auditor risk tags
const (
	RiskHigh      = "High-Risk"
	RiskWatchlist = "Watchlist"
	RiskNew       = "New"
)

// RiskTags lists every auditor risk tag
var RiskTags = []string{RiskHigh, RiskWatchlist, RiskNew}

// Client request risk markers
const (
	MarkerNone      = "None"
	MarkerSpam      = "Spam"
	MarkerDuplicate = "Duplicate"
	MarkerSensitive = "Sensitive"
)

// Markers lists every request risk marker
var Markers = []string{MarkerNone, MarkerSpam, MarkerDuplicate, MarkerSensitive}

// Specializations an auditor can be invited for
var Specializations = []string{"Audit", "Tax", "Consulting", "Compliance"}

// accreditationYears is how long an approval lasts
const accreditationYears = 2

func day(t time.Time) string { return t.UTC().Format(time.DateOnly) }

// Document is a KYC file submitted with an application
type Document struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// Note is an internal reviewer note
type Note struct {
	Author string `json:"author"`
	Date   string `json:"date"`
	Note   string `json:"note"`
}

// Auditor is an audit firm applying for or holding accreditation
type Auditor struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	ContactName     string     `json:"contactName,omitempty"`
	Email           string     `json:"email,omitempty"`
	LicenseID       string     `json:"licenseId,omitempty"`
	VATID           string     `json:"vatId,omitempty"`
	Specializations []string   `json:"specializations,omitempty"`
	Submitted       string     `json:"submitted"`
	Status          string     `json:"status"`
	Documents       []Document `json:"documents"`
	Notes           []Note     `json:"notes"`
	ExpiryDate      string     `json:"expiryDate,omitempty"`
	RiskTags        []string   `json:"riskTags"`
}

func (a Auditor) GetID() string { return a.ID }
func (a Auditor) WithID(id string) Auditor { a.ID = id; return a }
func (a Auditor) GetStatus() string { return a.Status }
func (a Auditor) WithStatus(s string) Auditor { a.Status = s; return a }
func (a Auditor) Timestamp() string { return a.Submitted }
func (a Auditor) ActorNames() []string { return []string{a.ContactName} }
func (a Auditor) SearchText() []string {
	return []string{a.ID, a.Name, a.ContactName, a.Email, a.LicenseID}
}

// OnTransition starts a fresh accreditation period on approval
func (a Auditor) OnTransition(t types.Transition) Auditor {
	if t.To == AuditorActive {
		a.ExpiryDate = day(t.At.AddDate(accreditationYears, 0, 0))
	}
	return a
}

func (a Auditor) Validate() error {
	errs := []error{
		validation.Required("name", a.Name),
		validation.Timestamp("submitted", a.Submitted),
		validation.Timestamp("expiryDate", a.ExpiryDate),
		validation.Unique("riskTags", a.RiskTags),
		validation.Unique("specializations", a.Specializations),
	}
	if a.Email != "" {
		errs = append(errs, validation.Email("email", a.Email))
	}
	for _, tag := range a.RiskTags {
		errs = append(errs, validation.OneOf("riskTags", tag, RiskTags...))
	}
	for _, s := range a.Specializations {
		errs = append(errs, validation.OneOf("specializations", s, Specializations...))
	}
	for _, d := range a.Documents {
		errs = append(errs,
			validation.Required("documents.name", d.Name),
			validation.OneOf("documents.status", d.Status, "Verified", "Pending", "Rejected"))
	}
	return errors.Join(errs...)
}

// Attachment is a file sent with a client request
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ClientRequest is an engagement request posted by a client, moderated
// before auditors see it
type ClientRequest struct {
	ID            string       `json:"id"`
	ClientID      string       `json:"clientId"`
	ClientName    string       `json:"clientName"`
	Type          string       `json:"type"`
	FinancialYear int          `json:"financialYear"`
	Framework     string       `json:"framework"`
	BusinessSize  string       `json:"businessSize"`
	Urgency       string       `json:"urgency"`
	Deadline      string       `json:"deadline"`
	TaxRequired   bool         `json:"taxRequired"`
	Budget        float64      `json:"budget"`
	Notes         string       `json:"notes"`
	Attachments   []Attachment `json:"attachments"`
	Status        string       `json:"status"`
	Risk          string       `json:"risk"`
}

func (r ClientRequest) GetID() string { return r.ID }
func (r ClientRequest) WithID(id string) ClientRequest { r.ID = id; return r }
func (r ClientRequest) GetStatus() string { return r.Status }
func (r ClientRequest) WithStatus(s string) ClientRequest { r.Status = s; return r }
func (r ClientRequest) GetAmount() float64 { return r.Budget }
func (r ClientRequest) Timestamp() string { return r.Deadline }
func (r ClientRequest) ActorNames() []string { return []string{r.ClientName} }
func (r ClientRequest) SearchText() []string {
	return []string{r.ID, r.ClientID, r.ClientName, r.Notes}
}

func (r ClientRequest) Validate() error {
	errs := []error{
		validation.Required("clientName", r.ClientName),
		validation.OneOf("type", r.Type, "Audit", "Tax"),
		validation.OneOf("framework", r.Framework, "IFRS", "GAPSME"),
		validation.OneOf("businessSize", r.BusinessSize, "Small", "Medium", "Large", "Enterprise"),
		validation.OneOf("urgency", r.Urgency, "Normal", "Urgent"),
		validation.Timestamp("deadline", r.Deadline),
		validation.NonNegative("budget", r.Budget),
		validation.OneOf("risk", r.Risk, Markers...),
	}
	if r.FinancialYear < 1900 {
		errs = append(errs, fmt.Errorf("financialYear: %d is not a valid year", r.FinancialYear))
	}
	return errors.Join(errs...)
}
