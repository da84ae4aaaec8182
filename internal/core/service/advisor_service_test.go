package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/ports"
	"github.com/weddingplan/planner-api/internal/core/store"
)

type stubCompleter struct {
	mu    sync.Mutex
	reply string
	err   error
	reqs  []ports.CompletionRequest
}

func (c *stubCompleter) Complete(_ context.Context, req ports.CompletionRequest) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reqs = append(c.reqs, req)
	return c.reply, c.err
}

func newAdvisorSvc(t *testing.T, completer *stubCompleter, users ...*domain.User) (*AdvisorService, *store.Registry) {
	t.Helper()
	reg := newTestRegistry(t, seededUserRepo(users...))
	return NewAdvisorService(completer, reg, DefaultUsageLimits, zerolog.Nop()), reg
}

func TestAdvisorService_Chat_MetersFreeUsers(t *testing.T) {
	completer := &stubCompleter{reply: "Chọn ngày cuối tuần."}
	svc, reg := newAdvisorSvc(t, completer, &domain.User{ID: "u1", Role: domain.RoleUser})

	for i := 0; i < DefaultUsageLimits.Chat; i++ {
		if _, err := svc.Chat(context.Background(), "u1", "Khi nào nên cưới?", ""); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
	}
	if _, err := svc.Chat(context.Background(), "u1", "Thêm một câu", ""); !errors.Is(err, domain.ErrUsageLimitReached) {
		t.Fatalf("expected ErrUsageLimitReached, got %v", err)
	}
	if len(completer.reqs) != DefaultUsageLimits.Chat {
		t.Fatalf("completer called %d times", len(completer.reqs))
	}

	st, _ := reg.Acquire(context.Background(), "u1")
	if got := st.Snapshot().GuestUsage.AIChatCount; got != DefaultUsageLimits.Chat {
		t.Fatalf("expected %d recorded calls, got %d", DefaultUsageLimits.Chat, got)
	}
}

func TestAdvisorService_Chat_ConcurrentCallsRespectLimit(t *testing.T) {
	completer := &stubCompleter{reply: "ok"}
	svc, reg := newAdvisorSvc(t, completer, &domain.User{ID: "g1", Role: domain.RoleGuest})

	const callers = 30
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		limited int
	)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Chat(context.Background(), "g1", "hi", "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrUsageLimitReached):
				limited++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if ok != DefaultUsageLimits.Chat || limited != callers-DefaultUsageLimits.Chat {
		t.Fatalf("expected %d successful calls, got ok=%d limited=%d", DefaultUsageLimits.Chat, ok, limited)
	}
	if len(completer.reqs) != DefaultUsageLimits.Chat {
		t.Fatalf("completer called %d times", len(completer.reqs))
	}
	st, _ := reg.Acquire(context.Background(), "g1")
	if got := st.Snapshot().GuestUsage.AIChatCount; got != DefaultUsageLimits.Chat {
		t.Fatalf("expected %d recorded calls, got %d", DefaultUsageLimits.Chat, got)
	}
}

func TestAdvisorService_Chat_UnlimitedUser(t *testing.T) {
	completer := &stubCompleter{reply: "ok"}
	svc, reg := newAdvisorSvc(t, completer, &domain.User{ID: "u1", Role: domain.RoleUser, Activated: true})

	for i := 0; i < DefaultUsageLimits.Chat+2; i++ {
		if _, err := svc.Chat(context.Background(), "u1", "hi", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	st, _ := reg.Acquire(context.Background(), "u1")
	if st.Snapshot().GuestUsage.AIChatCount != 0 {
		t.Fatalf("unlimited users must not be metered")
	}
}

func TestAdvisorService_CustomKey(t *testing.T) {
	completer := &stubCompleter{reply: "ok"}
	svc, _ := newAdvisorSvc(t, completer,
		&domain.User{ID: "plain", Role: domain.RoleUser},
		&domain.User{ID: "byok", Role: domain.RoleUser, Permissions: domain.Permissions{AllowCustomAPIKey: true}},
	)

	if _, err := svc.Chat(context.Background(), "plain", "hi", "my-key"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Chat(context.Background(), "byok", "hi", "my-key"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := completer.reqs[len(completer.reqs)-1].APIKey; got != "my-key" {
		t.Fatalf("api key not forwarded, got %q", got)
	}
}

func TestAdvisorService_CompleterFailure(t *testing.T) {
	completer := &stubCompleter{err: errors.New("quota")}
	svc, reg := newAdvisorSvc(t, completer, &domain.User{ID: "u1", Role: domain.RoleGuest})

	if _, err := svc.Speech(context.Background(), "u1", ports.SpeechInput{Speaker: "bố cô dâu"}, ""); !errors.Is(err, domain.ErrAdvisorUnavailable) {
		t.Fatalf("expected ErrAdvisorUnavailable, got %v", err)
	}
	st, _ := reg.Acquire(context.Background(), "u1")
	if st.Snapshot().GuestUsage.SpeechCount != 0 {
		t.Fatalf("failed calls must not be metered")
	}

	completer.err = nil
	completer.reply = "Kính thưa quan khách"
	if _, err := svc.Speech(context.Background(), "u1", ports.SpeechInput{Speaker: "bố cô dâu"}, ""); err != nil {
		t.Fatalf("refunded slot not usable: %v", err)
	}
}

func TestAdvisorService_AnalyzeFengShui(t *testing.T) {
	completer := &stubCompleter{reply: `{"summary":"Hợp tuổi","good_dates":["2025-12-20"],"score":82}`}
	svc, reg := newAdvisorSvc(t, completer, &domain.User{ID: "u1", Role: domain.RoleAdmin})

	if _, err := svc.AnalyzeFengShui(context.Background(), "u1", ""); !errors.Is(err, domain.ErrProfileIncomplete) {
		t.Fatalf("expected ErrProfileIncomplete, got %v", err)
	}

	st, _ := reg.Acquire(context.Background(), "u1")
	_, _ = st.Dispatch(context.Background(), store.SetFengShuiProfile(domain.FengShuiProfile{
		GroomName: "Minh", GroomBirthDate: "1995-03-02",
		BrideName: "Lan", BrideBirthDate: "1997-07-15",
	}))

	res, err := svc.AnalyzeFengShui(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 82 || len(res.GoodDates) != 1 || res.ID == "" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !completer.reqs[0].JSON {
		t.Fatalf("expected a JSON completion request")
	}
	if got := st.Snapshot().FengShuiResults; len(got) != 1 || got[0].ID != res.ID {
		t.Fatalf("result not stored: %+v", got)
	}
}

func TestParseFengShui_FallsBackToText(t *testing.T) {
	res := parseFengShui("  not json  ")
	if res.Summary != "not json" || res.Score != 0 {
		t.Fatalf("unexpected fallback: %+v", res)
	}
}
