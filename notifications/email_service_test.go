package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	config "github.com/anjiri1684/appointment_booking/configs"
)

func TestBrevoSend(t *testing.T) {
	var got brevoPayload
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"messageId":"1"}`))
	}))
	defer srv.Close()

	svc := NewEmailService(&config.Settings{BrevoAPIKey: "key", EmailSender: "shop@example.com", EmailSenderName: "Shop"})
	svc.URL = srv.URL

	if err := svc.Send(context.Background(), "", "anna@example.com", "Hi", "<p>hello</p>"); err != nil {
		t.Fatal(err)
	}
	if apiKey != "key" {
		t.Errorf("api-key header = %q", apiKey)
	}
	if got.To[0]["name"] != "anna" || got.To[0]["email"] != "anna@example.com" {
		t.Errorf("recipient = %v", got.To)
	}
	if got.Sender["email"] != "shop@example.com" || got.Subject != "Hi" {
		t.Errorf("payload = %+v", got)
	}
}

func TestBrevoSendErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	svc := NewEmailService(&config.Settings{BrevoAPIKey: "key", EmailSender: "shop@example.com", EmailSenderName: "Shop"})
	svc.URL = srv.URL

	if err := svc.Send(context.Background(), "Anna", "anna@example.com", "Hi", "x"); err == nil {
		t.Error("non-201 response should fail")
	}
	if err := svc.Send(context.Background(), "Anna", "not-an-email", "Hi", "x"); err == nil {
		t.Error("invalid recipient should fail")
	}
}

func TestNewEmailServiceUnconfigured(t *testing.T) {
	if svc := NewEmailService(&config.Settings{}); svc != nil {
		t.Fatal("expected nil service without credentials")
	}
}
