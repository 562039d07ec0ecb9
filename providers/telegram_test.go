package providers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBotAPI struct {
	mu       sync.Mutex
	server   *httptest.Server
	failSend bool
	getMe    int

	chatID   string
	caption  string
	fileName string
	content  []byte
}

func newFakeBotAPI(t *testing.T) *fakeBotAPI {
	t.Helper()
	f := &fakeBotAPI{}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeBotAPI) endpoint() string {
	return f.server.URL + "/bot%s/%s"
}

func (f *fakeBotAPI) serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		f.mu.Lock()
		f.getMe++
		f.mu.Unlock()
		_, _ = io.WriteString(w, `{"ok":true,"result":{"id":42,"is_bot":true,"first_name":"AIShape","username":"aishape_bot"}}`)
	case strings.HasSuffix(r.URL.Path, "/sendDocument"):
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("document")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)

		f.mu.Lock()
		f.chatID = r.FormValue("chat_id")
		f.caption = r.FormValue("caption")
		f.fileName = header.Filename
		f.content = content
		fail := f.failSend
		f.mu.Unlock()

		if fail {
			_, _ = io.WriteString(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
			return
		}
		_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":7,"date":1700000000,"chat":{"id":12345,"type":"private"}}}`)
	default:
		http.NotFound(w, r)
	}
}

func TestTelegramSender_SendDocument(t *testing.T) {
	api := newFakeBotAPI(t)

	sender, err := NewTelegramSender("test-token", api.endpoint(), 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "telegram", sender.Name())

	err = sender.SendDocument(context.Background(), SendDocumentRequest{
		ChatID:   12345,
		FileName: "AIShape_ProPlan.pdf",
		Caption:  "thanks",
		Content:  bytes.NewReader([]byte("%PDF-1.3 test")),
	})
	require.NoError(t, err)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, "12345", api.chatID)
	assert.Equal(t, "thanks", api.caption)
	assert.Equal(t, "AIShape_ProPlan.pdf", api.fileName)
	assert.Equal(t, "%PDF-1.3 test", string(api.content))
}

func TestTelegramSender_SendDocumentAPIError(t *testing.T) {
	api := newFakeBotAPI(t)
	api.failSend = true

	sender, err := NewTelegramSender("test-token", api.endpoint(), 5*time.Second)
	require.NoError(t, err)

	err = sender.SendDocument(context.Background(), SendDocumentRequest{
		ChatID:   1,
		FileName: "a.pdf",
		Content:  bytes.NewReader([]byte("x")),
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestTelegramSender_SendDocumentCanceled(t *testing.T) {
	api := newFakeBotAPI(t)

	sender, err := NewTelegramSender("test-token", api.endpoint(), 5*time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = sender.SendDocument(ctx, SendDocumentRequest{ChatID: 1, FileName: "a.pdf", Content: bytes.NewReader(nil)})
	assert.ErrorIs(t, err, context.Canceled)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Empty(t, api.chatID)
}

func TestNewTelegramSender_NoNetworkCall(t *testing.T) {
	api := newFakeBotAPI(t)

	_, err := NewTelegramSender("test-token", api.endpoint(), time.Second)
	require.NoError(t, err)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Zero(t, api.getMe)
}

func TestNewTelegramSender_StartsWhileTelegramIsDown(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	sender, err := NewTelegramSender("test-token", server.URL+"/bot%s/%s", time.Second)
	require.NoError(t, err)

	_, err = sender.CheckToken()
	assert.Error(t, err)
}

func TestNewTelegramSender_EmptyToken(t *testing.T) {
	_, err := NewTelegramSender("", "", time.Second)
	assert.ErrorIs(t, err, errEmptyToken)
}

func TestTelegramSender_CheckToken(t *testing.T) {
	api := newFakeBotAPI(t)

	sender, err := NewTelegramSender("test-token", api.endpoint(), time.Second)
	require.NoError(t, err)

	name, err := sender.CheckToken()
	require.NoError(t, err)
	assert.Equal(t, "aishape_bot", name)
}

func TestTelegramSender_CheckTokenUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":false,"error_code":401,"description":"Unauthorized"}`)
	}))
	defer server.Close()

	sender, err := NewTelegramSender("bad", server.URL+"/bot%s/%s", time.Second)
	require.NoError(t, err)

	_, err = sender.CheckToken()
	assert.ErrorContains(t, err, "Unauthorized")
}
