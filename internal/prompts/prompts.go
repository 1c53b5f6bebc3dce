// Package prompts holds the bilingual (Arabic/English) customer-facing
// message catalogs for each department, plus the department personas.
package prompts

import "github.com/ornina/callcenter/internal/domain"

// catalog maps message key to text for one language.
type catalog map[string]string

// table maps language to catalog.
type table map[domain.Language]catalog

// get looks up a message, falling back to English when the requested
// language has no entry.
func get(t table, lang domain.Language, key string) string {
	if c, ok := t[lang]; ok {
		if msg, ok := c[key]; ok {
			return msg
		}
	}
	return t[domain.LangEnglish][key]
}

var reception = table{
	domain.LangEnglish: {
		"greeting": "Hello! Welcome to Ornina - AI Solutions & Digital Services. How can I help you today?",

		"ask_name":     "Please tell me your full name.",
		"invalid_name": "Sorry, I didn't understand the name. Please repeat your name.",

		"ask_phone":     "Please provide your phone number.",
		"invalid_phone": "Sorry, the phone number is invalid. Please try again.",

		"ask_email":     "What is your email address?",
		"invalid_email": "Sorry, the email is invalid. Please try again.",

		"ask_service_type":     "What type of service do you need?",
		"invalid_service_type": "Sorry, I didn't catch that. What service are you interested in?",

		"confirm_data":     "Please confirm: name %s, phone %s, email %s, service %s. Reply 1 (yes) to confirm or 2 (no) to correct.",
		"confirm_reprompt": "Please press 1 to confirm or 2 to correct your information.",
		"restart_collect":  "Alright, let's collect your information again.",

		"routing_to_sales":      "Thank you for the information. You'll now be connected to our Sales department. Please wait.",
		"routing_to_complaints": "Thank you for the information. You'll now be connected to our Complaints department. Please wait.",
		"hold_message":          "Thank you for your patience. An agent will be with you shortly.",

		"max_retries": "Sorry, we couldn't collect the information. An agent will help you.",
		"escalation":  "I'm connecting you with one of our representatives now. Please hold.",
		"goodbye":     "Thank you for contacting us. Our team will reach out to you soon. Goodbye!",
	},
	domain.LangArabic: {
		"greeting": "السلام عليكم! أهلاً بك في شركة أورنينا للذكاء الاصطناعي والحلول الرقمية. كيف بقدر ساعدك اليوم؟",

		"ask_name":     "من فضلك، ما اسمك الكامل؟",
		"invalid_name": "عذراً، لم أفهم الاسم. يرجى تكرار اسمك من فضلك.",

		"ask_phone":     "يرجى إدخال أو نطق رقم هاتفك.",
		"invalid_phone": "عذراً، رقم الهاتف غير صحيح. يرجى تكرار الرقم.",

		"ask_email":     "ما هو بريدك الإلكتروني؟",
		"invalid_email": "عذراً، البريد الإلكتروني غير صحيح. يرجى تكرار البريد.",

		"ask_service_type":     "ما نوع الخدمة التي تحتاجها؟",
		"invalid_service_type": "عذراً، لم أفهم. ما الخدمة التي تهمك؟",

		"confirm_data":     "يرجى التأكيد: الاسم %s، الهاتف %s، البريد %s، الخدمة %s. اضغط 1 للتأكيد أو 2 للتعديل.",
		"confirm_reprompt": "يرجى الضغط على 1 للتأكيد أو 2 للتعديل.",
		"restart_collect":  "حسناً، لنجمع معلوماتك من جديد.",

		"routing_to_sales":      "شكراً على البيانات. سيتم توجيهك الآن إلى قسم المبيعات. يرجى الانتظار قليلاً.",
		"routing_to_complaints": "شكراً على البيانات. سيتم توجيهك الآن إلى قسم معالجة الشكاوى. يرجى الانتظار.",
		"hold_message":          "شكراً على انتظارك. سيتم الرد عليك قريباً.",

		"max_retries": "عذراً، لم نتمكن من جمع البيانات. سيتم توصيلك بممثل العملاء.",
		"escalation":  "سيتم توصيلك الآن بأحد ممثلينا. يرجى الانتظار.",
		"goodbye":     "شكراً لتواصلك معنا. فريقنا سيتواصل معك قريباً. وداعاً!",
	},
}

var sales = table{
	domain.LangEnglish: {
		"welcome":            "Hello! I'm from the Sales department. Thank you for choosing Ornina.",
		"ask_interest":       "Which of these services interests you most? Or is there a specific service you'd like to know more about?",
		"offer_consultation": "Would you like to book a free consultation with a specialist to discuss your needs in detail?",
		"closing":            "Thank you for your time. Our team will reach out within 24 hours. Looking forward to working with you!",
	},
	domain.LangArabic: {
		"welcome":            "السلام عليكم! أنا من قسم المبيعات. شكراً لاختيارك أورنينا.",
		"ask_interest":       "أي من هذه الخدمات تهمك أكتر؟ أو في خدمة محددة تريد تعرف عنها أكتر؟",
		"offer_consultation": "هل تود حجز استشارة مجانية مع متخصص يناقش معك احتياجاتك بالتفصيل؟",
		"closing":            "شكراً على الوقت. فريقنا سيتواصل معك خلال 24 ساعة. أتطلع للعمل معك!",
	},
}

var complaints = table{
	domain.LangEnglish: {
		"welcome":       "Hello! I'm from the Complaints department. I'm here to help you.",
		"ask_issue":     "Please tell me about the problem. What exactly is happening?",
		"create_ticket": "Alright, I'm creating a support ticket number %s for you. A dedicated team will follow up.",
		"escalate":      "This needs advanced attention. A team manager will contact you.",
		"closing":       "Thank you for your patience. We'll resolve this for you. Ticket number: %s",
	},
	domain.LangArabic: {
		"welcome":       "السلام عليكم! أنا من قسم معالجة الشكاوى. أنا هنا لمساعدتك.",
		"ask_issue":     "من فضلك، حكي لي عن المشكلة. ما هي بالتحديد؟",
		"create_ticket": "حسناً، سأنشئ لك تذكرة دعم برقم %s وسيتابع معك فريق مخصص.",
		"escalate":      "هذه القضية تحتاج متابعة متقدمة. سيتواصل معك مدير الفريق.",
		"closing":       "شكراً على صبرك. سنحل هذا لك. رقم التذكرة: %s",
	},
}

// Reception returns a reception-stage message for the given language.
func Reception(lang domain.Language, key string) string {
	return get(reception, lang, key)
}

// Sales returns a sales-department message for the given language.
func Sales(lang domain.Language, key string) string {
	return get(sales, lang, key)
}

// Complaints returns a complaints-department message for the given language.
func Complaints(lang domain.Language, key string) string {
	return get(complaints, lang, key)
}

// DepartmentWelcome returns the greeting spoken when a call is handed to
// a department persona.
func DepartmentWelcome(dept domain.Department, lang domain.Language) string {
	switch dept {
	case domain.DeptSales:
		return Sales(lang, "welcome")
	case domain.DeptComplaints:
		return Complaints(lang, "welcome")
	default:
		return Reception(lang, "greeting")
	}
}

// RoutingMessage returns the hand-off message matching a routing decision.
func RoutingMessage(dept domain.Department, lang domain.Language) string {
	switch dept {
	case domain.DeptSales:
		return Reception(lang, "routing_to_sales")
	case domain.DeptComplaints:
		return Reception(lang, "routing_to_complaints")
	default:
		return Reception(lang, "hold_message")
	}
}

// AskField returns the collection prompt for an intake field.
func AskField(field domain.FieldName, lang domain.Language) string {
	return Reception(lang, "ask_"+string(field))
}

// InvalidField returns the re-prompt for an invalid intake field input.
func InvalidField(field domain.FieldName, lang domain.Language) string {
	return Reception(lang, "invalid_"+string(field))
}
