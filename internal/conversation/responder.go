// Package conversation manages the post-routing dialogue for a call:
// persona selection and switching, message history, sentiment tracking,
// and the final transcript snapshot.
package conversation

import (
	"context"
	"sync"

	"github.com/ornina/callcenter/internal/domain"
	"github.com/ornina/callcenter/internal/prompts"
)

// ResponseGenerator produces an assistant reply in a persona's voice.
// Implementations range from LLM-backed generators to the static
// fallback below; tests inject MockResponder.
type ResponseGenerator interface {
	Generate(ctx context.Context, persona prompts.Persona, lang domain.Language, history []domain.Message, userMessage string) (string, error)
}

// StaticResponder is the no-dependency fallback generator: a fixed
// in-voice acknowledgment per persona, rotated per turn so repeated
// exchanges do not echo. One instance serves every conversation, so the
// rotation state carries its own lock.
type StaticResponder struct {
	mu    sync.Mutex
	turns map[domain.Department]int
}

// NewStaticResponder creates the canned-response generator.
func NewStaticResponder() *StaticResponder {
	return &StaticResponder{turns: make(map[domain.Department]int)}
}

var canned = map[domain.Department]map[domain.Language][]string{
	domain.DeptReception: {
		domain.LangEnglish: {
			"Thank you for that information. Let me help you with that.",
			"I understand. Let me provide you with more details about our services.",
			"That's great! We have several options that might interest you.",
		},
		domain.LangArabic: {
			"شكرا على هذه المعلومات. دعني أساعدك في ذلك.",
			"فهمت. دعني أقدم لك المزيد من التفاصيل عن خدماتنا.",
			"رائع! لدينا عدة خيارات قد تهمك.",
		},
	},
	domain.DeptSales: {
		domain.LangEnglish: {
			"Excellent! That's one of our most popular services. Let me tell you more about it.",
			"I'm excited to share how we can help with that. We have a proven track record.",
			"Great choice! Our team specializes in that area. Would you like to see some examples?",
		},
		domain.LangArabic: {
			"ممتاز! هذه من أكثر خدماتنا طلبا. دعني أخبرك المزيد عنها.",
			"يسعدني أن أشارك كيف يمكننا المساعدة في ذلك. لدينا سجل حافل.",
			"اختيار رائع! فريقنا متخصص في هذا المجال. هل تود رؤية بعض الأمثلة؟",
		},
	},
	domain.DeptComplaints: {
		domain.LangEnglish: {
			"I'm very sorry to hear that. I want to help resolve this for you. Can you tell me more details?",
			"I understand your concern, and I appreciate you bringing this to our attention.",
			"Let me get this documented right away so we can find the best solution.",
		},
		domain.LangArabic: {
			"أنا آسف جدا لسماع ذلك. أريد مساعدتك في حل هذه المشكلة. هل يمكنك إخباري بمزيد من التفاصيل؟",
			"أتفهم قلقك، وأقدر لفت انتباهنا إلى هذا الأمر.",
			"دعني أوثق هذا فورا حتى نجد أفضل حل.",
		},
	},
}

// Generate returns the next canned line for the persona's department in
// the caller's language, falling back to English.
func (s *StaticResponder) Generate(_ context.Context, persona prompts.Persona, lang domain.Language, _ []domain.Message, _ string) (string, error) {
	lines := canned[persona.Department][lang]
	if len(lines) == 0 {
		lines = canned[persona.Department][domain.LangEnglish]
	}
	if len(lines) == 0 {
		return "How can I assist you further?", nil
	}

	s.mu.Lock()
	n := s.turns[persona.Department]
	s.turns[persona.Department] = n + 1
	s.mu.Unlock()
	return lines[n%len(lines)], nil
}

// MockResponder is a test double for ResponseGenerator.
type MockResponder struct {
	GenerateFunc func(ctx context.Context, persona prompts.Persona, lang domain.Language, history []domain.Message, userMessage string) (string, error)
}

func (m *MockResponder) Generate(ctx context.Context, persona prompts.Persona, lang domain.Language, history []domain.Message, userMessage string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, persona, lang, history, userMessage)
	}
	return "mock response", nil
}
