package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ornina/callcenter/internal/classify"
	"github.com/ornina/callcenter/internal/config"
	"github.com/ornina/callcenter/internal/conversation"
	"github.com/ornina/callcenter/internal/domain"
	"github.com/ornina/callcenter/internal/escalate"
	"github.com/ornina/callcenter/internal/route"
	"github.com/ornina/callcenter/internal/session"
	"github.com/ornina/callcenter/internal/store"
)

func newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call",
		Short: "Route utterances and simulate calls",
	}

	cmd.AddCommand(newCallRouteCmd())
	cmd.AddCommand(newCallSimulateCmd())

	return cmd
}

func newCallRouteCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "route <text>",
		Short: "Classify an utterance and print the routing decision",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			language, err := domain.ParseLanguage(lang)
			if err != nil {
				return err
			}

			classifier, err := classify.NewClassifier(cfg, log)
			if err != nil {
				return err
			}
			analyzer := classify.NewSentimentAnalyzer(cfg)

			utt := domain.Utterance{Text: strings.Join(args, " "), Language: language}
			det := classifier.Detect(utt)
			sres := analyzer.Analyze(utt)
			decision := route.Decide(det, sres.Sentiment)

			out, err := json.MarshalIndent(map[string]any{
				"intent":    det,
				"sentiment": sres,
				"decision":  decision,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "ar", "utterance language (ar, en)")
	return cmd
}

func newCallSimulateCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run an interactive call against the intake and routing engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			language, err := domain.ParseLanguage(lang)
			if err != nil {
				return err
			}
			return runSimulation(cmd.Context(), language)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "ar", "call language (ar, en)")
	return cmd
}

// buildRegistry assembles the call engine against the configured
// storage backend. The returned closer is nil for the memory backend.
func buildRegistry() (*session.Registry, func() error, error) {
	classifier, err := classify.NewClassifier(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	analyzer := classify.NewSentimentAnalyzer(cfg)
	responder := conversation.NewStaticResponder()

	var (
		tickets     escalate.TicketSink
		calls       session.CallSink
		transcripts session.TranscriptSink
		closer      func() error
	)
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		db, err := store.Open(cfg.Store.Path, log)
		if err != nil {
			return nil, nil, err
		}
		tickets = store.NewSQLiteTicketStore(db)
		callStore := store.NewSQLiteCallStore(db)
		calls, transcripts = callStore, callStore
		closer = db.Close
	default:
		mem := store.NewMemoryStore()
		tickets, calls, transcripts = mem, mem, mem
	}

	policy := escalate.NewPolicy(cfg.Complaints, tickets, log)
	registry := session.NewRegistry(cfg, classifier, analyzer, policy, responder, calls, transcripts, log)
	return registry, closer, nil
}

func runSimulation(ctx context.Context, lang domain.Language) error {
	registry, closer, err := buildRegistry()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	call, err := registry.Create(ctx, domain.DirectionInbound, lang, domain.CustomerHints{})
	if err != nil {
		return err
	}
	defer registry.Remove(ctx, call.Session.ID)

	printAgent(call.Intake.Begin().Messages)

	scanner := bufio.NewScanner(os.Stdin)
	inIntake := true
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if isFarewell(input) {
			break
		}

		if inIntake {
			step, err := call.Intake.HandleInput(input)
			if err != nil {
				return err
			}
			printAgent(step.Messages)
			if step.Done {
				inIntake = false
				if step.Decision != nil {
					fmt.Printf("-- routed to %s (priority %s)\n",
						step.Decision.Department, step.Decision.Priority)
				}
			}
			continue
		}

		reply, err := call.Conversation.Respond(ctx, domain.Utterance{Text: input, Language: lang})
		if err != nil {
			return err
		}
		fmt.Printf("[%s] %s\n", reply.Persona, reply.Text)
		if reply.Ticket != nil {
			fmt.Printf("-- ticket %s created (%s)\n", reply.Ticket.ID, reply.Ticket.Priority)
		}
		if reply.Escalated {
			fmt.Println("-- escalated to a human agent")
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	transcript, err := registry.End(ctx, call.Session.ID)
	if err != nil {
		return err
	}
	stats := call.Conversation.Statistics()
	fmt.Printf("call %s ended: %d messages, sentiment %s, %d persona switch(es)\n",
		transcript.CallID, stats.TotalMessages, stats.OverallSentiment, stats.PersonaSwitches)
	return nil
}

func printAgent(messages []string) {
	for _, m := range messages {
		fmt.Printf("[agent] %s\n", m)
	}
}

func isFarewell(input string) bool {
	switch strings.ToLower(input) {
	case "bye", "goodbye", "quit", "exit", "مع السلامة", "وداعا":
		return true
	}
	return false
}
