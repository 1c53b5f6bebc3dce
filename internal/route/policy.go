// Package route maps detected intents to departments and builds routing
// decisions. The policy is pure and total: every intent value maps to
// exactly one department, and the same inputs always produce the same
// decision.
package route

import (
	"fmt"

	"github.com/ornina/callcenter/internal/domain"
)

// DepartmentFor maps an intent to its target department. Unlisted
// intents fall through to reception, keeping the mapping total.
func DepartmentFor(intent domain.Intent) domain.Department {
	switch intent {
	case domain.IntentComplaint, domain.IntentBillingIssue, domain.IntentTechnicalSupport:
		return domain.DeptComplaints
	case domain.IntentServiceInquiry, domain.IntentTrainingInquiry, domain.IntentSalesInterest,
		domain.IntentConsultation, domain.IntentAppointment:
		return domain.DeptSales
	default:
		return domain.DeptReception
	}
}

// PriorityFor assigns a priority to an intent given the session's
// sentiment trend. Complaints from angry or frustrated customers rank
// high; billing and technical issues always rank high.
func PriorityFor(intent domain.Intent, sentiment domain.Sentiment) domain.Priority {
	switch intent {
	case domain.IntentComplaint:
		if sentiment == domain.SentimentAngry || sentiment == domain.SentimentFrustrated {
			return domain.PriorityHigh
		}
		return domain.PriorityMedium
	case domain.IntentBillingIssue, domain.IntentTechnicalSupport:
		return domain.PriorityHigh
	case domain.IntentServiceInquiry, domain.IntentTrainingInquiry, domain.IntentSalesInterest,
		domain.IntentConsultation, domain.IntentAppointment:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// Decide derives the full routing decision from an intent detection and
// the session's current sentiment trend.
func Decide(det domain.IntentDetection, sentiment domain.Sentiment) domain.RoutingDecision {
	dept := DepartmentFor(det.Intent)
	priority := PriorityFor(det.Intent, sentiment)

	createTicket := dept == domain.DeptComplaints ||
		det.Intent == domain.IntentBillingIssue ||
		det.Intent == domain.IntentTechnicalSupport

	escalate := sentiment == domain.SentimentAngry || priority == domain.PriorityUrgent

	return domain.RoutingDecision{
		Department:      dept,
		Priority:        priority,
		CreateTicket:    createTicket,
		EscalateToHuman: escalate,
		Reasoning: fmt.Sprintf("intent=%s sentiment=%s confidence=%.2f",
			det.Intent, sentiment, det.Confidence),
	}
}
