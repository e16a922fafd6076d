package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/ethicswatch/ethicswatch/internal/analyze"
	"github.com/ethicswatch/ethicswatch/internal/model"
	"github.com/ethicswatch/ethicswatch/internal/watchdog"
)

type fakeWatchdog struct {
	report   *model.WatchReport
	err      error
	lastText string
	lastOpts watchdog.Options
}

func (f *fakeWatchdog) Run(_ context.Context, text string, opts watchdog.Options) (*model.WatchReport, error) {
	f.lastText = text
	f.lastOpts = opts
	return f.report, f.err
}

type fakeAnalyzer struct {
	result string
	err    error
}

func (f *fakeAnalyzer) Analyze(context.Context, string, analyze.Options) (string, error) {
	return f.result, f.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestServer(w *fakeWatchdog, a *fakeAnalyzer) *httptest.Server {
	return httptest.NewServer(NewServer(w, a, quietLogger()).Handler())
}

func TestHealth(t *testing.T) {
	server := newTestServer(&fakeWatchdog{}, &fakeAnalyzer{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestWatchdogEndpoint(t *testing.T) {
	fw := &fakeWatchdog{report: &model.WatchReport{
		OverallRisk: 0.77,
		Label:       model.LabelLikelyMisinfo,
		Signals:     []model.Signal{{Name: "sensational_language", Score: 0.67}},
	}}
	server := newTestServer(fw, &fakeAnalyzer{})
	defer server.Close()

	body := `{"text": "BREAKING: secret plan exposed", "k": 5, "model": "gpt-4o-mini"}`
	resp, err := http.Post(server.URL+"/watchdog", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var report model.WatchReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Label != model.LabelLikelyMisinfo {
		t.Errorf("label = %q", report.Label)
	}
	if fw.lastOpts.TopK != 5 || fw.lastOpts.Model != "gpt-4o-mini" {
		t.Errorf("options not forwarded: %+v", fw.lastOpts)
	}
}

func TestWatchdogEndpointRequiresText(t *testing.T) {
	server := newTestServer(&fakeWatchdog{}, &fakeAnalyzer{})
	defer server.Close()

	for _, body := range []string{`{}`, `{"text": "   "}`, `not json`} {
		resp, err := http.Post(server.URL+"/watchdog", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("post: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, resp.StatusCode)
		}
	}
}

func TestWatchdogEndpointPipelineFailure(t *testing.T) {
	server := newTestServer(&fakeWatchdog{err: errors.New("index down")}, &fakeAnalyzer{})
	defer server.Close()

	resp, err := http.Post(server.URL+"/watchdog", "application/json", strings.NewReader(`{"text": "x"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}

	var payload map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if strings.Contains(payload["error"], "index down") {
		t.Error("internal error detail leaked to the client")
	}
}

func TestWatchdogEndpointMethod(t *testing.T) {
	server := newTestServer(&fakeWatchdog{}, &fakeAnalyzer{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/watchdog")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	server := newTestServer(&fakeWatchdog{}, &fakeAnalyzer{result: "Risks: bias in screening"})
	defer server.Close()

	resp, err := http.Post(server.URL+"/analyze", "application/json", strings.NewReader(`{"query": "LLM resume screening"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["result"] != "Risks: bias in screening" {
		t.Errorf("result = %q", payload["result"])
	}
}

func TestAnalyzeEndpointRequiresQuery(t *testing.T) {
	server := newTestServer(&fakeWatchdog{}, &fakeAnalyzer{})
	defer server.Close()

	resp, err := http.Post(server.URL+"/analyze", "application/json", strings.NewReader(`{"query": ""}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
