package classify

import (
	"fmt"
	"strings"

	"github.com/ornina/callcenter/internal/config"
	"github.com/ornina/callcenter/internal/domain"
)

// SentimentResult is the analyzer's verdict for a single utterance.
type SentimentResult struct {
	Sentiment  domain.Sentiment `json:"sentiment"`
	Confidence float64          `json:"confidence"`
	Indicators []string         `json:"indicators,omitempty"`
	Reasoning  string           `json:"reasoning"`
}

// SentimentAnalyzer detects the emotional tone of an utterance from
// configured word lists.
type SentimentAnalyzer struct {
	positive     map[domain.Language][]string
	negative     map[domain.Language][]string
	frustrated   map[domain.Language][]string
	fallbackLang domain.Language
}

// NewSentimentAnalyzer builds an analyzer from the configured word lists.
func NewSentimentAnalyzer(cfg config.Config) *SentimentAnalyzer {
	return &SentimentAnalyzer{
		positive:     byLanguage(cfg.Sentiment.Positive),
		negative:     byLanguage(cfg.Sentiment.Negative),
		frustrated:   byLanguage(cfg.Sentiment.Frustrated),
		fallbackLang: domain.Language(cfg.General.FallbackLanguage),
	}
}

func byLanguage(m map[string][]string) map[domain.Language][]string {
	out := make(map[domain.Language][]string, len(m))
	for lang, words := range m {
		out[domain.Language(lang)] = words
	}
	return out
}

// Analyze scans the utterance for sentiment indicators. Frustration
// markers dominate, then the negative/positive balance decides.
func (a *SentimentAnalyzer) Analyze(utt domain.Utterance) SentimentResult {
	lang := utt.Language
	if lang == "" {
		lang = a.fallbackLang
	}
	text := strings.ToLower(utt.Text)

	positive, posHits := countHits(text, a.positive[lang])
	negative, negHits := countHits(text, a.negative[lang])
	frustrated, fruHits := countHits(text, a.frustrated[lang])

	indicators := append(append(posHits, negHits...), fruHits...)

	var sentiment domain.Sentiment
	var confidence float64
	switch {
	case frustrated > 1:
		sentiment = domain.SentimentFrustrated
		confidence = min(1.0, float64(frustrated)*0.3)
	case frustrated == 1:
		sentiment = domain.SentimentNegative
		confidence = 0.3
	case negative > positive:
		if negative > 2 {
			sentiment = domain.SentimentAngry
		} else {
			sentiment = domain.SentimentNegative
		}
		confidence = min(1.0, float64(negative-positive)*0.3)
	case positive > negative:
		sentiment = domain.SentimentPositive
		confidence = min(1.0, float64(positive)*0.3)
	default:
		sentiment = domain.SentimentNeutral
		confidence = 0.5
	}

	return SentimentResult{
		Sentiment:  sentiment,
		Confidence: confidence,
		Indicators: indicators,
		Reasoning: fmt.Sprintf("%d positive, %d negative, %d frustration indicators",
			positive, negative, frustrated),
	}
}

func countHits(text string, words []string) (int, []string) {
	var hits []string
	for _, w := range words {
		if strings.Contains(text, strings.ToLower(w)) {
			hits = append(hits, w)
		}
	}
	return len(hits), hits
}
