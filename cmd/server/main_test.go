package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/groupadmin/internal/groups"
	"github.com/mmynk/groupadmin/internal/metrics"
	"github.com/mmynk/groupadmin/internal/storage/memory"
	"github.com/mmynk/groupadmin/internal/storage/seed"
	"github.com/mmynk/groupadmin/pkg/api"
	"github.com/mmynk/groupadmin/pkg/api/apiconnect"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.New()
	if err := seed.Load(context.Background(), store); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	server := httptest.NewServer(newHandler(groups.New(store), metrics.New(store)))
	t.Cleanup(server.Close)
	return server
}

func TestHandler_CORSPreflight(t *testing.T) {
	server := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, server.URL+apiconnect.GroupServiceListGroupsProcedure, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestHandler_RPCIsCountedInMetrics(t *testing.T) {
	server := newTestServer(t)
	client := apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL)

	if _, err := client.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{})); err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics scrape failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		`groupadmin_rpc_requests_total{code="ok",procedure="/groupadmin.v1.GroupService/ListGroups"} 1`,
		"groupadmin_groups 4",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestHandler_Healthz(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}
