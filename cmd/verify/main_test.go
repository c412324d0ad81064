package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func runVerify(t *testing.T, url string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--url", url})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	return out.String()
}

func TestVerifySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"predicted_disease":"Flu","confidence":"90.00%","suggestions":[]}`))
	}))
	defer srv.Close()

	out := runVerify(t, srv.URL)
	if !strings.Contains(out, "API Verification Successful!") || !strings.Contains(out, `"predicted_disease":"Flu"`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestVerifyFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Model not loaded"}`))
	}))
	defer srv.Close()

	out := runVerify(t, srv.URL)
	if !strings.Contains(out, "API Verification Failed with status code: 500") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestVerifyTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	out := runVerify(t, url)
	if !strings.Contains(out, "An error occurred during verification:") {
		t.Fatalf("unexpected output %q", out)
	}
}
