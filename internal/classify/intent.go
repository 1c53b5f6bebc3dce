// Package classify scores customer utterances for intent and sentiment
// using keyword heuristics. It is deliberately not a statistical NLU
// engine: every verdict is reproducible from the configured word lists.
package classify

import (
	"fmt"
	"strings"

	"github.com/ornina/callcenter/internal/config"
	"github.com/ornina/callcenter/internal/domain"
	"github.com/ornina/callcenter/internal/logging"
)

// Classifier detects customer intent from free text.
type Classifier struct {
	keywords     map[domain.Intent]map[domain.Language][]string
	floor        float64
	fallbackConf float64
	fallbackLang domain.Language
	log          *logging.Logger
}

// NewClassifier builds a classifier from the configured keyword table.
// Unknown intent keys in the table fail fast.
func NewClassifier(cfg config.Config, log *logging.Logger) (*Classifier, error) {
	kw := make(map[domain.Intent]map[domain.Language][]string, len(cfg.Keywords))
	for key, langs := range cfg.Keywords {
		intent, err := domain.ParseIntent(key)
		if err != nil {
			return nil, fmt.Errorf("keyword table: %w", err)
		}
		byLang := make(map[domain.Language][]string, len(langs))
		for lang, words := range langs {
			byLang[domain.Language(lang)] = words
		}
		kw[intent] = byLang
	}

	return &Classifier{
		keywords:     kw,
		floor:        cfg.Routing.ConfidenceFloor,
		fallbackConf: cfg.Routing.FallbackConfidence,
		fallbackLang: domain.Language(cfg.General.FallbackLanguage),
		log:          log.Sub("classify"),
	}, nil
}

// Detect scores the utterance against every intent's keyword list and
// returns the winning intent. Intents are evaluated in priority order
// (complaints first), so a complaint wins any tie. Below the confidence
// floor the result is a generic inquiry with a fixed fallback
// confidence, not a zero-confidence verdict.
func (c *Classifier) Detect(utt domain.Utterance) domain.IntentDetection {
	lang := utt.Language
	if lang == "" {
		lang = c.fallbackLang
	}
	text := strings.ToLower(utt.Text)

	best := domain.IntentInquiry
	bestScore := 0.0
	var bestMatched []string

	for _, intent := range domain.Intents {
		words := c.keywords[intent][lang]
		if len(words) == 0 {
			continue
		}

		var matched []string
		for _, kw := range words {
			if strings.Contains(text, strings.ToLower(kw)) {
				matched = append(matched, kw)
			}
		}

		score := min(1.0, float64(len(matched))/max(1.0, 0.5*float64(len(words))))
		if score > bestScore {
			best = intent
			bestScore = score
			bestMatched = matched
		}
	}

	if bestScore < c.floor {
		det := domain.IntentDetection{
			Intent:     domain.IntentInquiry,
			Confidence: c.fallbackConf,
			Language:   lang,
			Reasoning:  "no strong keyword signal, defaulting to generic inquiry",
		}
		c.log.Debug().Str("text", utt.Text).Msg("intent below confidence floor")
		return det
	}

	det := domain.IntentDetection{
		Intent:     best,
		Confidence: bestScore,
		Keywords:   bestMatched,
		Language:   lang,
		Reasoning:  fmt.Sprintf("detected %s with %d matching keywords", best, len(bestMatched)),
	}

	c.log.Debug().
		Str("intent", string(det.Intent)).
		Float64("confidence", det.Confidence).
		Strs("keywords", det.Keywords).
		Msg("intent detected")

	return det
}
