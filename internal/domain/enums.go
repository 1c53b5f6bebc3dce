package domain

import "fmt"

// ParseError reports an unknown enum value crossing a serialization boundary.
type ParseError struct {
	Kind  string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Kind, e.Value)
}

// Department identifies a call-center department and its response persona.
type Department string

const (
	DeptReception  Department = "reception"
	DeptSales      Department = "sales"
	DeptComplaints Department = "complaints"
)

// ParseDepartment converts a string to a Department, failing fast on
// unknown values.
func ParseDepartment(s string) (Department, error) {
	switch Department(s) {
	case DeptReception, DeptSales, DeptComplaints:
		return Department(s), nil
	}
	return "", &ParseError{Kind: "department", Value: s}
}

func (d Department) MarshalText() ([]byte, error) { return []byte(d), nil }

func (d *Department) UnmarshalText(b []byte) error {
	parsed, err := ParseDepartment(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Intent is the classified purpose of a customer utterance.
type Intent string

const (
	IntentComplaint        Intent = "complaint"
	IntentServiceInquiry   Intent = "service_inquiry"
	IntentTrainingInquiry  Intent = "training_inquiry"
	IntentSalesInterest    Intent = "sales_interest"
	IntentBillingIssue     Intent = "billing_issue"
	IntentTechnicalSupport Intent = "technical_support"
	IntentConsultation     Intent = "consultation"
	IntentAppointment      Intent = "appointment"
	IntentInquiry          Intent = "inquiry"
	IntentOther            Intent = "other"
)

// Intents lists every intent value, in classifier priority order:
// complaints are evaluated first and win ties.
var Intents = []Intent{
	IntentComplaint,
	IntentTrainingInquiry,
	IntentServiceInquiry,
	IntentSalesInterest,
	IntentBillingIssue,
	IntentTechnicalSupport,
	IntentConsultation,
	IntentAppointment,
	IntentInquiry,
	IntentOther,
}

// ParseIntent converts a string to an Intent, failing fast on unknown values.
func ParseIntent(s string) (Intent, error) {
	for _, it := range Intents {
		if Intent(s) == it {
			return it, nil
		}
	}
	return "", &ParseError{Kind: "intent", Value: s}
}

func (i Intent) MarshalText() ([]byte, error) { return []byte(i), nil }

func (i *Intent) UnmarshalText(b []byte) error {
	parsed, err := ParseIntent(string(b))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// Sentiment is the emotional tone detected in an utterance.
type Sentiment string

const (
	SentimentPositive   Sentiment = "positive"
	SentimentNeutral    Sentiment = "neutral"
	SentimentNegative   Sentiment = "negative"
	SentimentFrustrated Sentiment = "frustrated"
	SentimentAngry      Sentiment = "angry"
)

// ParseSentiment converts a string to a Sentiment, failing fast on unknown values.
func ParseSentiment(s string) (Sentiment, error) {
	switch Sentiment(s) {
	case SentimentPositive, SentimentNeutral, SentimentNegative, SentimentFrustrated, SentimentAngry:
		return Sentiment(s), nil
	}
	return "", &ParseError{Kind: "sentiment", Value: s}
}

// Priority orders routing decisions and tickets.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority converts a string to a Priority, failing fast on unknown values.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return Priority(s), nil
	}
	return "", &ParseError{Kind: "priority", Value: s}
}

func (p Priority) MarshalText() ([]byte, error) { return []byte(p), nil }

func (p *Priority) UnmarshalText(b []byte) error {
	parsed, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Language tags supported conversation languages.
type Language string

const (
	LangArabic  Language = "ar"
	LangEnglish Language = "en"
)

// Languages lists every supported language.
var Languages = []Language{LangArabic, LangEnglish}

// ParseLanguage converts a string to a Language, failing fast on unknown values.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LangArabic, LangEnglish:
		return Language(s), nil
	}
	return "", &ParseError{Kind: "language", Value: s}
}
