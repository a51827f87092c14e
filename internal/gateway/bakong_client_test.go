package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"khqrpay/pkg/config"
	"khqrpay/pkg/utils"
)

func clientFor(endpoint string) PspGatewayInterface {
	return NewBakongClient(config.Config{
		BankAPIEndpoint: endpoint,
		BankAPIKey:      "test-key",
	}, zap.NewNop())
}

func sampleRequest() RegisterRequest {
	return RegisterRequest{
		Amount:            "10.00",
		Currency:          "USD",
		MerchantReference: "POS-KHQR-abc",
		CallbackURL:       "https://pos.example.com/api/v1/khqr/callback",
	}
}

func TestBakongClient_RegisterPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Given a successful registration Then transaction id, QR string and raw body are returned", func(t *testing.T) {
		var gotAuth string
		var gotBody RegisterRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"transaction_id":"T1","khqr_string":"00020101021230KHQR"}`))
		}))
		defer server.Close()

		resp, err := clientFor(server.URL).RegisterPayment(ctx, sampleRequest())
		if err != nil {
			t.Fatalf("RegisterPayment failed: %v", err)
		}

		if gotAuth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", gotAuth)
		}
		if gotBody.MerchantReference != "POS-KHQR-abc" {
			t.Errorf("bank did not receive merchant reference: %+v", gotBody)
		}
		if resp.BankTransactionID != "T1" {
			t.Errorf("expected transaction id T1, got %q", resp.BankTransactionID)
		}
		if resp.KhqrString == nil || *resp.KhqrString != "00020101021230KHQR" {
			t.Errorf("unexpected khqr string %v", resp.KhqrString)
		}
		if len(resp.Raw) == 0 {
			t.Error("raw response body missing")
		}
	})

	t.Run("Given a response without khqr_string Then the field stays nil", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"transaction_id":"T1"}`))
		}))
		defer server.Close()

		resp, err := clientFor(server.URL).RegisterPayment(ctx, sampleRequest())
		if err != nil {
			t.Fatalf("RegisterPayment failed: %v", err)
		}
		if resp.KhqrString != nil {
			t.Errorf("expected nil khqr string, got %q", *resp.KhqrString)
		}
	})

	t.Run("Given a 4xx response Then the bank message is carried verbatim", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"merchant account suspended"}`))
		}))
		defer server.Close()

		_, err := clientFor(server.URL).RegisterPayment(ctx, sampleRequest())

		var rejection *utils.GatewayRejectionError
		if !errors.As(err, &rejection) {
			t.Fatalf("expected GatewayRejectionError, got %v", err)
		}
		if rejection.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("unexpected status code %d", rejection.StatusCode)
		}
		if rejection.Message != "merchant account suspended" {
			t.Errorf("bank message not verbatim: %q", rejection.Message)
		}
	})

	t.Run("Given a 4xx response without a message Then a generic client error is used", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		_, err := clientFor(server.URL).RegisterPayment(ctx, sampleRequest())

		var rejection *utils.GatewayRejectionError
		if !errors.As(err, &rejection) {
			t.Fatalf("expected GatewayRejectionError, got %v", err)
		}
		if rejection.Message != "Unknown client error" {
			t.Errorf("unexpected fallback message %q", rejection.Message)
		}
	})

	t.Run("Given a 5xx response Then a transport error is surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := clientFor(server.URL).RegisterPayment(ctx, sampleRequest())
		if !errors.Is(err, utils.ErrGatewayTransport) {
			t.Errorf("expected ErrGatewayTransport, got %v", err)
		}
	})

	t.Run("Given an unreachable endpoint Then a transport error is surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // refuse connections

		_, err := clientFor(server.URL).RegisterPayment(ctx, sampleRequest())
		if !errors.Is(err, utils.ErrGatewayTransport) {
			t.Errorf("expected ErrGatewayTransport, got %v", err)
		}
	})

	t.Run("Given missing endpoint or key Then a configuration error is returned without any call", func(t *testing.T) {
		client := NewBakongClient(config.Config{}, zap.NewNop())

		_, err := client.RegisterPayment(ctx, sampleRequest())
		if !errors.Is(err, utils.ErrGatewayConfig) {
			t.Errorf("expected ErrGatewayConfig, got %v", err)
		}
	})

	t.Run("Given a cancelled context Then a transport error is surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := clientFor(server.URL).RegisterPayment(cancelled, sampleRequest())
		if !errors.Is(err, utils.ErrGatewayTransport) {
			t.Errorf("expected ErrGatewayTransport, got %v", err)
		}
	})
}
