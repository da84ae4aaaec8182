package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/planning"
	"github.com/weddingplan/planner-api/internal/core/ports"
	"github.com/weddingplan/planner-api/internal/core/store"
)

// UsageLimits caps the advisor calls of accounts that are not unlimited.
type UsageLimits struct {
	Chat     int
	Speech   int
	FengShui int
}

// DefaultUsageLimits are the free-tier allowances.
var DefaultUsageLimits = UsageLimits{Chat: 5, Speech: 1, FengShui: 1}

func (l UsageLimits) of(kind domain.UsageKind) int {
	switch kind {
	case domain.UsageChat:
		return l.Chat
	case domain.UsageSpeech:
		return l.Speech
	case domain.UsageFengShui:
		return l.FengShui
	}
	return 0
}

const (
	chatSystemPrompt = "You are a Vietnamese wedding planning assistant. " +
		"Answer briefly and practically in the language of the question."
	speechSystemPrompt = "You write short, warm Vietnamese wedding speeches."
	fengShuiPrompt     = "You are a feng shui advisor. Reply with JSON " +
		`{"summary": string, "good_dates": ["YYYY-MM-DD"], "score": 0-100}.`
)

// AdvisorService answers planning questions, drafts speeches and analyses
// wedding dates through a TextCompleter, metering free accounts.
type AdvisorService struct {
	completer ports.TextCompleter
	sessions  Sessions
	limits    UsageLimits
	log       zerolog.Logger
	now       func() time.Time
}

func NewAdvisorService(completer ports.TextCompleter, sessions Sessions, limits UsageLimits, log zerolog.Logger) *AdvisorService {
	return &AdvisorService{
		completer: completer,
		sessions:  sessions,
		limits:    limits,
		log:       log,
		now:       time.Now,
	}
}

// Chat answers a free-form planning question.
func (s *AdvisorService) Chat(ctx context.Context, userID, message, apiKey string) (string, error) {
	return s.complete(ctx, userID, apiKey, domain.UsageChat, func(st store.State) ports.CompletionRequest {
		return ports.CompletionRequest{
			System:  chatSystemPrompt + "\n" + planContext(st, s.now()),
			Message: message,
		}
	})
}

// Speech drafts a wedding speech.
func (s *AdvisorService) Speech(ctx context.Context, userID string, in ports.SpeechInput, apiKey string) (string, error) {
	return s.complete(ctx, userID, apiKey, domain.UsageSpeech, func(st store.State) ports.CompletionRequest {
		inv := st.Invitation
		msg := fmt.Sprintf("Speaker: %s\nTone: %s\nGroom: %s\nBride: %s\nNotes: %s",
			in.Speaker, in.Tone, inv.GroomName, inv.BrideName, in.Notes)
		return ports.CompletionRequest{System: speechSystemPrompt, Message: msg}
	})
}

// AnalyzeFengShui scores the couple's profile and stores the result.
func (s *AdvisorService) AnalyzeFengShui(ctx context.Context, userID, apiKey string) (*domain.FengShuiResult, error) {
	st, err := s.sessions.Acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := st.Snapshot().FengShuiProfile
	if p == nil || p.GroomBirthDate == "" || p.BrideBirthDate == "" {
		return nil, domain.ErrProfileIncomplete
	}

	raw, err := s.complete(ctx, userID, apiKey, domain.UsageFengShui, func(store.State) ports.CompletionRequest {
		msg := fmt.Sprintf("Groom: %s, born %s\nBride: %s, born %s",
			p.GroomName, p.GroomBirthDate, p.BrideName, p.BrideBirthDate)
		return ports.CompletionRequest{System: fengShuiPrompt, Message: msg, JSON: true}
	})
	if err != nil {
		return nil, err
	}

	result := parseFengShui(raw)
	result.ID = st.NewID()
	result.CreatedAt = s.now().UTC()
	if _, err := st.Dispatch(ctx, store.AddFengShuiResult(result)); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to persist feng shui result locally")
	}
	return &result, nil
}

func (s *AdvisorService) complete(ctx context.Context, userID, apiKey string, kind domain.UsageKind, build func(store.State) ports.CompletionRequest) (string, error) {
	if s.completer == nil {
		return "", domain.ErrAdvisorUnavailable
	}
	st, err := s.sessions.Acquire(ctx, userID)
	if err != nil {
		return "", err
	}
	snap := st.Snapshot()

	if apiKey != "" && (snap.User == nil || !snap.User.Permissions.AllowCustomAPIKey) {
		return "", domain.ErrForbidden
	}
	metered := apiKey == "" && !snap.User.Unlimited()
	if metered {
		granted, err := st.ReserveUsage(ctx, kind, s.limits.of(kind))
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to persist usage counter")
		}
		if !granted {
			return "", domain.ErrUsageLimitReached
		}
	}

	req := build(snap)
	req.APIKey = apiKey
	out, err := s.completer.Complete(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("kind", string(kind)).Msg("advisor call failed")
		if metered {
			if _, rerr := st.Dispatch(context.WithoutCancel(ctx), store.RefundUsage(kind)); rerr != nil {
				s.log.Warn().Err(rerr).Str("user_id", userID).Msg("failed to persist usage refund")
			}
		}
		return "", fmt.Errorf("%w: %v", domain.ErrAdvisorUnavailable, err)
	}
	return out, nil
}

func planContext(st store.State, now time.Time) string {
	wedding := ""
	if st.User != nil {
		wedding = st.User.WeddingDate
	}
	stats := planning.ComputeStats(st.Guests, st.BudgetItems, wedding, now)
	var b strings.Builder
	fmt.Fprintf(&b, "Region: %s. Guests: %d (expected %.1f). ", st.Region, stats.Guests.Headcount, stats.Guests.WeightedAttendance)
	fmt.Fprintf(&b, "Budget: %d estimated, %d spent.", stats.Budget.TotalEstimated, stats.Budget.TotalActual)
	if stats.DaysToWedding != nil {
		fmt.Fprintf(&b, " Days to wedding: %d.", *stats.DaysToWedding)
	}
	return b.String()
}

func parseFengShui(raw string) domain.FengShuiResult {
	var out struct {
		Summary   string   `json:"summary"`
		GoodDates []string `json:"good_dates"`
		Score     int      `json:"score"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out.Summary == "" {
		return domain.FengShuiResult{Summary: strings.TrimSpace(raw)}
	}
	return domain.FengShuiResult{Summary: out.Summary, GoodDates: out.GoodDates, Score: out.Score}
}
