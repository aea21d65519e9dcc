package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillbridge/exchange-system/internal/core/domain"
)

func sampleNotification(kind domain.NotificationKind) domain.Notification {
	return domain.Notification{
		Kind:           kind,
		SessionID:      "sess_1",
		RecipientID:    "student_1",
		RecipientName:  "Leo",
		RecipientEmail: "leo@campus.edu",
		SessionTitle:   "Intro to Go",
		ScheduledDate:  time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
		EmittedAt:      time.Now().UTC(),
	}
}

func TestEmailNotifier_SendsProviderRequest(t *testing.T) {
	var got emailPayload
	var apiKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	n := NewEmailNotifier("key_123", "noreply@skillbridge.io", "SkillBridge", zerolog.Nop())
	n.endpoint = srv.URL

	if err := n.Send(context.Background(), sampleNotification(domain.NotifySessionCreated)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if apiKey != "key_123" {
		t.Errorf("api-key header = %q", apiKey)
	}
	if got.Sender["email"] != "noreply@skillbridge.io" || got.Sender["name"] != "SkillBridge" {
		t.Errorf("unexpected sender: %v", got.Sender)
	}
	if len(got.To) != 1 || got.To[0]["email"] != "leo@campus.edu" {
		t.Errorf("unexpected recipients: %v", got.To)
	}
	if !strings.Contains(got.Subject, "Intro to Go") {
		t.Errorf("subject missing session title: %q", got.Subject)
	}
}

func TestEmailNotifier_ProviderErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer srv.Close()

	n := NewEmailNotifier("bad_key", "noreply@skillbridge.io", "SkillBridge", zerolog.Nop())
	n.endpoint = srv.URL

	err := n.Send(context.Background(), sampleNotification(domain.NotifySessionCreated))
	if err == nil {
		t.Fatal("expected an error for a 401 response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error should carry the provider status: %v", err)
	}
}

func TestEmailNotifier_LogOnlyWithoutAPIKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer srv.Close()

	n := NewEmailNotifier("", "noreply@skillbridge.io", "SkillBridge", zerolog.Nop())
	n.endpoint = srv.URL

	if err := n.Send(context.Background(), sampleNotification(domain.NotifySessionConfirmed)); err != nil {
		t.Fatalf("log-only mode must not fail: %v", err)
	}
	if called {
		t.Error("no HTTP request expected without an API key")
	}
}

func TestRenderEmail(t *testing.T) {
	tests := []struct {
		kind        domain.NotificationKind
		wantSubject string
		wantInBody  string
	}{
		{domain.NotifySessionCreated, "New session proposed: Intro to Go", "Session Proposed"},
		{domain.NotifySessionConfirmed, "Session confirmed: Intro to Go", "Session Confirmed"},
		{domain.NotificationKind("other"), "Skill exchange update", "Intro to Go"},
	}
	for _, tc := range tests {
		subject, body := renderEmail(sampleNotification(tc.kind))
		if subject != tc.wantSubject {
			t.Errorf("%s: subject = %q, want %q", tc.kind, subject, tc.wantSubject)
		}
		if !strings.Contains(body, tc.wantInBody) {
			t.Errorf("%s: body missing %q", tc.kind, tc.wantInBody)
		}
		if !strings.Contains(body, "Leo") {
			t.Errorf("%s: body must address the recipient", tc.kind)
		}
	}
}
