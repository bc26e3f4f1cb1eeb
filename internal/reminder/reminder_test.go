package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vanshika/arivai/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var target = domain.ReminderTarget{
	UserID:         "u1",
	FirstName:      "Asha",
	ChatID:         99,
	AvgCycleLength: 28,
	LastStart:      date("2024-03-01"),
}

func TestDue(t *testing.T) {
	tests := []struct {
		today string
		kind  Kind
		ok    bool
	}{
		{"2024-03-08", "", false},
		{"2024-03-09", KindFertileStart, true},
		{"2024-03-14", KindOvulation, true},
		{"2024-03-27", KindPeriodSoon, true},
		{"2024-03-28", "", false},
		// one full cycle later the window is projected forward
		{"2024-04-06", KindFertileStart, true},
	}
	for _, tc := range tests {
		t.Run(tc.today, func(t *testing.T) {
			r, ok := Due(target, date(tc.today))
			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.kind, r.Kind)
			if ok {
				assert.Equal(t, int64(99), r.ChatID)
				assert.Contains(t, r.Text, "Hi Asha")
			}
		})
	}
}

func TestDueDefaultsCycleLength(t *testing.T) {
	tgt := target
	tgt.AvgCycleLength = 0
	r, ok := Due(tgt, date("2024-03-14"))
	require.True(t, ok)
	assert.Equal(t, KindOvulation, r.Kind)
}

func TestMessageEscapesName(t *testing.T) {
	tgt := target
	tgt.FirstName = "<b>x</b>"
	r, ok := Due(tgt, date("2024-03-27"))
	require.True(t, ok)
	assert.Contains(t, r.Text, "&lt;b&gt;x&lt;/b&gt;")
	assert.Contains(t, r.Text, "Fri, Mar 29")
}

func TestStartToken(t *testing.T) {
	tok, ok := StartToken("/start abc123")
	assert.True(t, ok)
	assert.Equal(t, "abc123", tok)

	tok, ok = StartToken("/start@arivai_bot  abc123 ")
	assert.True(t, ok)
	assert.Equal(t, "abc123", tok)

	for _, text := range []string{"/start", "hello", "/stop abc", "/start a b"} {
		_, ok := StartToken(text)
		assert.False(t, ok, text)
	}
}

type staticTargets struct {
	targets []domain.ReminderTarget
	err     error
}

func (s staticTargets) ListReminderTargets(context.Context) ([]domain.ReminderTarget, error) {
	return s.targets, s.err
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent map[int64]string
	fail map[int64]bool
}

func (n *recordingNotifier) Notify(_ context.Context, chatID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail[chatID] {
		return errors.New("blocked by user")
	}
	if n.sent == nil {
		n.sent = map[int64]string{}
	}
	n.sent[chatID] = text
	return nil
}

func TestSchedulerRunDaily(t *testing.T) {
	quiet := target
	quiet.UserID, quiet.ChatID, quiet.LastStart = "u2", 100, date("2024-03-05")
	blocked := target
	blocked.UserID, blocked.ChatID = "u3", 101

	notifier := &recordingNotifier{fail: map[int64]bool{101: true}}
	s := NewScheduler(staticTargets{targets: []domain.ReminderTarget{target, quiet, blocked}}, notifier,
		func() time.Time { return date("2024-03-14") }, testLogger())

	stats, err := s.RunDaily(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Targets: 3, Sent: 1, Failed: 1}, stats)
	assert.Contains(t, notifier.sent[99], "ovulation day")
}

func TestSchedulerRunDailyStoreError(t *testing.T) {
	boom := errors.New("db down")
	s := NewScheduler(staticTargets{err: boom}, &recordingNotifier{}, nil, testLogger())
	_, err := s.RunDaily(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSchedulerRun(t *testing.T) {
	s := NewScheduler(staticTargets{}, &recordingNotifier{}, nil, testLogger())

	err := s.Run(context.Background(), "not a schedule", time.UTC)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "0 8 * * *", nil) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestTelegramNotifier(t *testing.T) {
	var got sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN").WithBaseURL(srv.URL + "/")
	require.NoError(t, n.Notify(context.Background(), 42, "<b>hi</b>"))
	assert.Equal(t, sendMessageRequest{ChatID: 42, Text: "<b>hi</b>", ParseMode: "HTML"}, got)
}

func TestTelegramNotifierError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Forbidden: bot was blocked by the user"}`))
	}))
	defer srv.Close()

	err := NewTelegramNotifier("TOKEN").WithBaseURL(srv.URL).Notify(context.Background(), 42, "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot was blocked")
}

func TestTelegramNotifierKeepsTokenOutOfErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	const token = "123456:SECRET-BOT-TOKEN"
	err := NewTelegramNotifier(token).WithBaseURL(addr).Notify(context.Background(), 42, "hi")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), token)
	assert.Contains(t, err.Error(), "/bot<redacted>/sendMessage")

	var urlErr *url.Error
	assert.True(t, errors.As(err, &urlErr), "transport error stays inspectable")
}
