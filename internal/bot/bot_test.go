package bot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opinion-collector/internal/model"
)

type fakeTelegram struct {
	mu       sync.Mutex
	sent     []sentMessage
	failSend bool
}

type sentMessage struct {
	chatID    string
	text      string
	parseMode string
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		w.Write([]byte(`{"ok":true,"result":{"id":42,"is_bot":true,"first_name":"Moderation","username":"moderation_bot"}}`))
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		if f.failSend {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.sent = append(f.sent, sentMessage{
			chatID:    r.PostForm.Get("chat_id"),
			text:      r.PostForm.Get("text"),
			parseMode: r.PostForm.Get("parse_mode"),
		})
		f.mu.Unlock()
		w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":-100,"type":"supergroup"}}}`))
	default:
		http.NotFound(w, r)
	}
}

func newTestNotifier(t *testing.T, fake *fakeTelegram) *Notifier {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	n, err := NewWithClient("123:secret", srv.URL+"/bot%s/%s", -100, srv.Client(), nil)
	require.NoError(t, err)
	return n
}

func TestNotifyQuestionReport(t *testing.T) {
	fake := &fakeTelegram{}
	n := newTestNotifier(t, fake)

	event := model.NewQuestionReportEvent(uuid.New(), uuid.New(), "uses <b>slurs</b> & insults")
	require.NoError(t, n.NotifyQuestionReport(context.Background(), *event))

	require.Len(t, fake.sent, 1)
	msg := fake.sent[0]
	assert.Equal(t, "-100", msg.chatID)
	assert.Equal(t, "HTML", msg.parseMode)
	assert.Contains(t, msg.text, event.QuestionID.String())
	assert.Contains(t, msg.text, event.UserID.String())
	assert.Contains(t, msg.text, "uses &lt;b&gt;slurs&lt;/b&gt; &amp; insults")
}

func TestNotifyRejectsOtherEvents(t *testing.T) {
	fake := &fakeTelegram{}
	n := newTestNotifier(t, fake)

	err := n.NotifyQuestionReport(context.Background(), *model.NewEvent(uuid.New(), "hello"))
	assert.Error(t, err)
	assert.Empty(t, fake.sent)
}

func TestNotifyReportsAPIError(t *testing.T) {
	fake := &fakeTelegram{failSend: true}
	n := newTestNotifier(t, fake)

	event := model.NewQuestionReportEvent(uuid.New(), uuid.New(), "spam")
	err := n.NotifyQuestionReport(context.Background(), *event)
	assert.ErrorContains(t, err, "chat not found")
}

func TestNotifyHonoursCancelledContext(t *testing.T) {
	fake := &fakeTelegram{}
	n := newTestNotifier(t, fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.NotifyQuestionReport(ctx, *model.NewQuestionReportEvent(uuid.New(), uuid.New(), "x"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fake.sent)
}

func TestNewRequiresChat(t *testing.T) {
	_, err := NewWithClient("123:secret", "http://127.0.0.1:0/bot%s/%s", 0, nil, nil)
	assert.Error(t, err)
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "abc", shorten("abc", 5))
	assert.Equal(t, "abc…", shorten("abcdef", 4))
	assert.Equal(t, "жжж…", shorten("жжжжжж", 4))
}
