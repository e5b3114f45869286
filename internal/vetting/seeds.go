package vetting

// Seed data shown until the operator changes something. Each function
// returns a fresh slice.

func kycBundle() []Document {
	return []Document{
		{Name: "business_license.pdf", Type: "PDF", Status: "Verified"},
		{Name: "director_id_card.jpg", Type: "JPG", Status: "Verified"},
		{Name: "insurance_cert.pdf", Type: "PDF", Status: "Pending"},
		{Name: "articles_of_inc.doc", Type: "DOC", Status: "Rejected"},
	}
}

func SeedAuditors() []Auditor {
	return []Auditor{
		{ID: "axiom-audit", Name: "Axiom Audit Inc.", Submitted: "2023-10-26", Status: AuditorPending, Documents: kycBundle(),
			Notes: []Note{
				{Author: "Admin Jane", Date: "2023-10-25", Note: "Insurance cert is pending manual verification."},
				{Author: "Admin John", Date: "2023-10-24", Note: "Flagged for review due to document mismatch."},
			},
			RiskTags: []string{RiskNew}},
		{ID: "veritas-global", Name: "Veritas Global", Submitted: "2023-10-25", Status: AuditorPending, Documents: kycBundle(), Notes: []Note{}, RiskTags: []string{RiskNew}},
		{ID: "secure-ledger", Name: "Secure Ledger LLC", Submitted: "2023-10-24", Status: AuditorActionRequired, Documents: []Document{}, Notes: []Note{}, RiskTags: []string{RiskNew}},
		{ID: "trust-inc", Name: "Trust Inc.", Submitted: "2023-01-15", Status: AuditorActive, Documents: []Document{}, Notes: []Note{}, ExpiryDate: "2025-01-15", RiskTags: []string{}},
		{ID: "audit-corp", Name: "Audit Corp", Submitted: "2023-02-20", Status: AuditorActive, Documents: []Document{}, Notes: []Note{}, ExpiryDate: "2025-02-20", RiskTags: []string{RiskWatchlist}},
		{ID: "fin-secure", Name: "Fin Secure", Submitted: "2022-03-01", Status: AuditorReverify, Documents: []Document{}, Notes: []Note{}, ExpiryDate: "2024-03-01", RiskTags: []string{RiskHigh}},
	}
}

func SeedRequests() []ClientRequest {
	return []ClientRequest{
		{ID: "R-7890", ClientID: "PHX-01", ClientName: "Phoenix Corp.", Type: "Audit", FinancialYear: 2023, Framework: "IFRS", BusinessSize: "Large", Urgency: "Normal", Deadline: "2024-03-31", TaxRequired: true, Budget: 15000,
			Notes: "Standard annual financial audit for the fiscal year 2023. We also require corporate tax filing assistance.", Attachments: []Attachment{}, Status: RequestAccepted, Risk: MarkerNone},
		{ID: "R-7889", ClientID: "INV-02", ClientName: "Innovate LLC", Type: "Tax", FinancialYear: 2023, Framework: "GAPSME", BusinessSize: "Small", Urgency: "Urgent", Deadline: "2024-01-31", TaxRequired: true, Budget: 5000,
			Notes: "We need an urgent review of our Q4 tax liabilities and advisory on potential deductions.", Attachments: []Attachment{}, Status: RequestOpen, Risk: MarkerNone},
		{ID: "R-7888", ClientID: "N/A", ClientName: "Bad Actor Co.", Type: "Audit", FinancialYear: 2023, Framework: "IFRS", BusinessSize: "Enterprise", Urgency: "Urgent", Deadline: "2023-12-31", TaxRequired: false, Budget: 1000000,
			Notes: "give me 1m dollars and i will give u 10m back. 100% legit no scam.", Attachments: []Attachment{}, Status: RequestOpen, Risk: MarkerSpam},
		{ID: "R-7887", ClientID: "DAT-03", ClientName: "Data Inc.", Type: "Audit", FinancialYear: 2024, Framework: "IFRS", BusinessSize: "Medium", Urgency: "Urgent", Deadline: "2024-06-30", TaxRequired: false, Budget: 25000,
			Notes:       "We require a highly confidential valuation of our new patent portfolio prior to our upcoming Series B funding round. This involves sensitive intellectual property.",
			Attachments: []Attachment{{Name: "Patent_Portfolio_Overview.pdf", Type: "PDF"}, {Name: "NDA_Template.pdf", Type: "PDF"}}, Status: RequestAccepted, Risk: MarkerSensitive},
		{ID: "R-7886", ClientID: "PHX-01", ClientName: "Phoenix Corp.", Type: "Audit", FinancialYear: 2023, Framework: "IFRS", BusinessSize: "Large", Urgency: "Normal", Deadline: "2024-03-31", TaxRequired: true, Budget: 15000,
			Notes: "Duplicate of request R-7890.", Attachments: []Attachment{}, Status: RequestOpen, Risk: MarkerDuplicate},
	}
}
