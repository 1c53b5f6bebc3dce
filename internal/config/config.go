// Package config loads and validates the call-center rules configuration.
package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with the built-in rules and keyword tables.
// The keyword lists cover every scoring intent in both supported
// languages; a config file can extend or replace them.
func Defaults() Config {
	return Config{
		Reception: ReceptionConfig{
			RequiredFields:      []string{"name", "phone", "email", "service_type"},
			NameMinLength:       2,
			PhoneMinLength:      8,
			MaxRetries:          3,
			RequireConfirmation: true,
			ConfirmationRetries: 2,
		},
		Complaints: ComplaintsConfig{
			AutoCreateTicket: true,
			UrgentKeywords: map[string][]string{
				"en": {"urgent", "immediately", "asap", "critical", "down", "emergency"},
				"ar": {"عاجل", "فوراً", "طارئ", "حرج", "متوقف"},
			},
		},
		Routing: RoutingConfig{
			ConfidenceFloor:    0.2,
			FallbackConfidence: 0.5,
		},
		General: GeneralConfig{
			DefaultLanguage:  "ar",
			FallbackLanguage: "en",
		},
		Keywords:  defaultKeywords(),
		Sentiment: defaultSentiment(),
		Store: StoreConfig{
			Backend: BackendSQLite,
			Path:    "callcenter.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func defaultKeywords() KeywordTable {
	return KeywordTable{
		"complaint": {
			"en": {"complaint", "problem", "issue", "error", "not working",
				"doesn't work", "broken", "difficulty", "delay", "late",
				"didn't receive", "poor", "bad", "wrong", "fault"},
			"ar": {"شكوى", "مشكلة", "مشاكل", "خطأ", "مش شغال",
				"ما اشتغل", "عطل", "صعوبة", "تأخير", "متأخر",
				"ما استقبلت", "سيء", "سيئة"},
		},
		"training_inquiry": {
			"en": {"training", "course", "learn", "education", "program",
				"professional", "bootcamp", "hours", "level"},
			"ar": {"تدريب", "دورة", "كورس", "تعليم", "أتعلم",
				"احترافي", "برنامج", "مستوى", "ساعات"},
		},
		"service_inquiry": {
			"en": {"service", "services", "offer", "do you have", "what do you offer",
				"call center", "film", "ads", "design", "animation", "web",
				"development", "platform"},
			"ar": {"خدمة", "خدمات", "تقدمون", "عندكم", "في عندكم",
				"أفلام", "إعلانات", "تصميم", "برمجة", "أنيميشن", "ويب"},
		},
		"sales_interest": {
			"en": {"price", "cost", "quote", "offer", "interested", "buy",
				"purchase", "deal", "pricing"},
			"ar": {"سعر", "تكلفة", "عرض", "مهتم", "شراء", "صفقة"},
		},
		"billing_issue": {
			"en": {"billing", "invoice", "payment", "charge", "charged", "refund"},
			"ar": {"فاتورة", "دفع", "رسوم", "استرداد"},
		},
		"technical_support": {
			"en": {"technical", "bug", "crash", "crashes", "login", "password reset"},
			"ar": {"تقني", "خلل", "يتعطل", "مشكلة تقنية", "تسجيل الدخول"},
		},
		"consultation": {
			"en": {"consultation", "consult", "advice", "specialist"},
			"ar": {"استشارة", "نصيحة", "متخصص"},
		},
		"appointment": {
			"en": {"appointment", "book", "schedule", "meeting"},
			"ar": {"موعد", "حجز", "اجتماع"},
		},
	}
}

func defaultSentiment() SentimentConfig {
	return SentimentConfig{
		Positive: map[string][]string{
			"en": {"good", "great", "excellent", "happy", "love", "amazing", "thanks", "perfect"},
			"ar": {"جيد", "رائع", "ممتاز", "سعيد", "أحب", "شكراً"},
		},
		Negative: map[string][]string{
			"en": {"bad", "terrible", "hate", "angry", "frustrated", "worst", "awful", "unacceptable"},
			"ar": {"سيء", "فظيع", "غاضب", "محبط", "أسوأ"},
		},
		Frustrated: map[string][]string{
			"en": {"problem", "issue", "broken", "not working", "error", "again", "still"},
			"ar": {"مشكلة", "عطل", "خطأ", "لسا", "مرة ثانية"},
		},
	}
}
