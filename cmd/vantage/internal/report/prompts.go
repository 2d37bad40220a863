// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/scoring"
)

// Audience selects who a generated narrative or message is written
// for; it drives tone and what may be disclosed.
type Audience string

const (
	AudienceInternal Audience = "internal"
	AudienceExec     Audience = "exec"
	AudienceClient   Audience = "client"
	AudienceVendor   Audience = "vendor"
)

// Redaction controls how much scoring detail a narrative may expose.
type Redaction string

const (
	RedactionNone    Redaction = "none"
	RedactionPartial Redaction = "partial"
	RedactionFull    Redaction = "full"
)

// MessageType is one of the four communication drafts the comms
// command produces.
type MessageType string

const (
	MessageEvidenceRequest     MessageType = "evidence_request"
	MessageRemediationFollowup MessageType = "remediation_followup"
	MessageInternalUpdate      MessageType = "internal_update"
	MessageExecutiveEscalation MessageType = "executive_escalation"
)

// MessageTypes lists the supported drafts in menu order.
var MessageTypes = []MessageType{
	MessageEvidenceRequest,
	MessageRemediationFollowup,
	MessageInternalUpdate,
	MessageExecutiveEscalation,
}

// ParseAudience validates a flag or menu value against the audience
// set.
func ParseAudience(s string) (Audience, error) {
	switch a := Audience(strings.ToLower(strings.TrimSpace(s))); a {
	case AudienceInternal, AudienceExec, AudienceClient, AudienceVendor:
		return a, nil
	default:
		return "", fmt.Errorf("unknown audience %q (want internal, exec, client, or vendor)", s)
	}
}

// ParseRedaction validates a flag or menu value against the
// redaction set.
func ParseRedaction(s string) (Redaction, error) {
	switch r := Redaction(strings.ToLower(strings.TrimSpace(s))); r {
	case RedactionNone, RedactionPartial, RedactionFull:
		return r, nil
	default:
		return "", fmt.Errorf("unknown redaction level %q (want none, partial, or full)", s)
	}
}

// ParseMessageType validates a flag value against the supported
// communication drafts.
func ParseMessageType(s string) (MessageType, error) {
	candidate := MessageType(strings.ToLower(strings.TrimSpace(s)))
	for _, mt := range MessageTypes {
		if candidate == mt {
			return mt, nil
		}
	}
	return "", fmt.Errorf("unknown message type %q (want one of %v)", s, MessageTypes)
}

// AssessmentPrompt builds the analysis request for one freshly scored
// vendor: risk summary, strengths, concerns, and three improvements.
func AssessmentPrompt(rec *record.Record) string {
	var b strings.Builder
	b.WriteString("You are a third-party risk analyst. Based on the following control scores, provide:\n")
	b.WriteString("1. A brief risk summary (2-3 paragraphs)\n")
	b.WriteString("2. Key strengths\n")
	b.WriteString("3. Areas of concern\n")
	b.WriteString("4. 3 recommended improvements the vendor should implement\n\n")

	fmt.Fprintf(&b, "Vendor: %s\n", rec.VendorName)
	fmt.Fprintf(&b, "Organisation: %s\n", rec.OrgID)
	fmt.Fprintf(&b, "Service: %s\n", rec.Service)
	fmt.Fprintf(&b, "Likelihood: %s\n", rec.Likelihood)
	fmt.Fprintf(&b, "Impact: %s\n", rec.Impact)

	if len(rec.Domains) > 0 {
		b.WriteString("Domain scores:\n")
		for _, d := range rec.Domains {
			fmt.Fprintf(&b, "- %s (weight %.0f%%): %.2f/5\n", d.Name, d.WeightPct, d.Score)
		}
		fmt.Fprintf(&b, "Weighted score: %.2f/5\n", rec.WeightedScore)
		fmt.Fprintf(&b, "Risk level: %s\n", rec.RiskLevel)
	}
	if len(rec.ControlScores) > 0 {
		b.WriteString("Control scores:\n")
		for _, domain := range sortedKeys(rec.ControlScores) {
			fmt.Fprintf(&b, "- %s: %d/5\n", domain, rec.ControlScores[domain])
		}
		fmt.Fprintf(&b, "Overall score: %.2f/5\n", rec.OverallControlScore)
	}
	fmt.Fprintf(&b, "Risk bucket: %s\n", rec.EffectiveBucket())

	return b.String()
}

// PortfolioPrompt builds the management report request for one org
// scope. The prompt carries the strict isolation rule: the model must
// not name any other organization unless the scope is ALL.
func PortfolioPrompt(orgID string, s Summary, audience Audience, redaction Redaction) string {
	var b strings.Builder
	b.WriteString("You are a senior risk & compliance manager.\n\n")
	b.WriteString("Generate a concise management / board / client report summarizing the third-party risk posture.\n\n")
	fmt.Fprintf(&b, "Organisation scope: %s\n", orgID)
	fmt.Fprintf(&b, "Do NOT mention any other organisation unless the scope is '%s'.\n", ScopeAll)
	b.WriteString("Assume strict confidentiality between clients.\n\n")

	b.WriteString("Data points:\n")
	fmt.Fprintf(&b, "- Total vendors: %d\n", s.Total)
	fmt.Fprintf(&b, "- Average control score: %.2f\n", s.AvgControl)
	fmt.Fprintf(&b, "- High-risk vendors: %d\n", s.RiskCounts[scoring.BucketHigh])
	fmt.Fprintf(&b, "- Medium-risk vendors: %d\n", s.RiskCounts[scoring.BucketMedium])
	fmt.Fprintf(&b, "- Low-risk vendors: %d\n", s.RiskCounts[scoring.BucketLow])
	fmt.Fprintf(&b, "- Weakest control domain overall: %s\n\n", s.WeakestDomain)

	b.WriteString("Write these sections:\n")
	b.WriteString("1. Executive Overview / Current Posture\n")
	b.WriteString("2. High-Risk Third Parties (and why they matter)\n")
	b.WriteString("3. Thematic Weaknesses (logging, DR/BCP, evidence freshness, etc.)\n")
	b.WriteString("4. Required Actions / Owners / Urgency\n")
	b.WriteString("   - Vendor-facing asks\n")
	b.WriteString("   - Internal owner obligations\n")
	b.WriteString("   - Governance/contractual improvements\n")
	b.WriteString("5. Recommendations for Next Quarter\n\n")

	writeToneBlock(&b, audience, redaction)
	b.WriteString("If the audience is 'client', never mention other clients.\n")
	b.WriteString("If the audience is 'exec', keep it business-impact focused.\n")
	return b.String()
}

// AcceptanceInput is the analyst-supplied content of a risk
// acceptance memo.
type AcceptanceInput struct {
	RiskDesc       string
	Justification  string
	Owner          string
	Expiry         string
	MitigationPlan string
}

// AcceptancePrompt builds the formal risk acceptance memo request.
// The memo is written to audit standard: single vendor, single org,
// no portfolio context.
func AcceptancePrompt(rec *record.Record, in AcceptanceInput) string {
	var b strings.Builder
	b.WriteString("You are a governance and risk officer.\n\n")
	b.WriteString("Write a formal Risk Acceptance / Risk Exception memo for one vendor, for one organisation.\n")
	b.WriteString("Do NOT reference any other organisation, business unit, or vendor.\n")
	b.WriteString("Assume this memo could be shown to auditors.\n\n")

	fmt.Fprintf(&b, "Organisation / Client: %s\n", rec.OrgID)
	fmt.Fprintf(&b, "Vendor: %s\n", rec.VendorName)
	fmt.Fprintf(&b, "Service / data handled: %s\n", rec.Service)
	fmt.Fprintf(&b, "Business owner / sponsor: %s\n", rec.BusinessOwner)
	fmt.Fprintf(&b, "Overall control score: %.2f/5\n", rec.EffectiveScore())
	fmt.Fprintf(&b, "Likelihood: %s\n", rec.Likelihood)
	fmt.Fprintf(&b, "Impact: %s\n", rec.Impact)
	fmt.Fprintf(&b, "Risk bucket: %s\n\n", rec.EffectiveBucket())

	fmt.Fprintf(&b, "Risk / Gap being accepted:\n%s\n\n", in.RiskDesc)
	fmt.Fprintf(&b, "Business justification for accepting:\n%s\n\n", in.Justification)
	fmt.Fprintf(&b, "Mitigation / Compensating controls in place:\n%s\n\n", in.MitigationPlan)
	fmt.Fprintf(&b, "Risk owner / approver:\n%s\n\n", in.Owner)
	fmt.Fprintf(&b, "Expiry / Review date:\n%s\n\n", in.Expiry)

	b.WriteString("Write the memo with these sections:\n")
	b.WriteString("1. Executive Summary\n")
	b.WriteString("2. Description of the Risk / Gap\n")
	b.WriteString("3. Business Impact if Unresolved\n")
	b.WriteString("4. Justification for Acceptance\n")
	b.WriteString("5. Compensating Controls / Mitigations\n")
	b.WriteString("6. Residual Risk Statement\n")
	b.WriteString("7. Ownership and Review Timeline\n")
	b.WriteString("8. Conditions for Ongoing Acceptance\n")
	return b.String()
}

// CommsPrompt builds a communication draft request scoped to one
// vendor under one org. Vendor-facing drafts never expose internal
// scoring methodology.
func CommsPrompt(rec *record.Record, msgType MessageType, extraContext string,
	audience Audience, redaction Redaction) string {

	var b strings.Builder
	b.WriteString("You are drafting a professional communication.\n\n")
	b.WriteString("You must respect strict client isolation:\n")
	fmt.Fprintf(&b, "Only talk about this organisation (%s) and this vendor (%s).\n", rec.OrgID, rec.VendorName)
	b.WriteString("Never mention other clients, other vendors, or portfolio context unless explicitly internal.\n\n")

	fmt.Fprintf(&b, "Message type: %s\n", msgType)
	fmt.Fprintf(&b, "Organisation / Client: %s\n", rec.OrgID)
	fmt.Fprintf(&b, "Vendor: %s\n", rec.VendorName)
	fmt.Fprintf(&b, "Business owner: %s\n", rec.BusinessOwner)
	fmt.Fprintf(&b, "Vendor service / data handled: %s\n", rec.Service)
	fmt.Fprintf(&b, "Current assessed likelihood: %s\n", rec.Likelihood)
	fmt.Fprintf(&b, "Current assessed impact: %s\n", rec.Impact)
	fmt.Fprintf(&b, "Overall control score: %.2f/5\n", rec.EffectiveScore())
	fmt.Fprintf(&b, "Risk bucket: %s\n", rec.EffectiveBucket())

	if len(rec.OpenActions) > 0 {
		b.WriteString("\nOutstanding tracked actions:\n")
		for _, a := range rec.OpenActions {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", strings.ToUpper(a.Urgency), a.OwnerType, a.Action)
		}
	}
	if extraContext != "" {
		fmt.Fprintf(&b, "\nAdditional context from analyst:\n%s\n", extraContext)
	}

	b.WriteString("\n")
	writeToneBlock(&b, audience, redaction)
	b.WriteString("If the audience is 'vendor', be firm but professional, request evidence or remediation, and set expectation for timeline.\n")
	b.WriteString("If the audience is 'vendor', do NOT include internal scoring methodology; just state what is required.\n")
	b.WriteString("If the audience is 'internal' or 'exec', you MAY reference risk in impact/likelihood terms.\n")
	b.WriteString("Write as an email body. Do not include greeting placeholders like 'Hi NAME' unless natural.\n")
	return b.String()
}

func writeToneBlock(b *strings.Builder, audience Audience, redaction Redaction) {
	b.WriteString("Tone requirements:\n")
	fmt.Fprintf(b, "- Audience type: %s\n", audience)
	fmt.Fprintf(b, "- Redaction level: %s\n", redaction)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
