package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"smartquiz-service/internal/app"
	"smartquiz-service/internal/auth"
	"smartquiz-service/internal/infra/memory"
	transport "smartquiz-service/internal/transport/http"
)

const quizJSON = `{
	"questions": [
		{
			"question": "Which planet is known as the red planet?",
			"options": {"A": "Venus", "B": "Mars", "C": "Jupiter", "D": "Mercury"},
			"correctAnswer": "B"
		},
		{
			"question": "Which planet is closest to the sun?",
			"options": {"A": "Mercury", "B": "Venus", "C": "Earth", "D": "Mars"},
			"correctAnswer": "A"
		}
	]
}`

type stubGenerator struct {
	response string
	calls    int
}

func (g *stubGenerator) GenerateText(context.Context, string, string, float32, int) (string, error) {
	g.calls++
	return g.response, nil
}

func (g *stubGenerator) Configured() bool { return true }

type testAPI struct {
	server   *httptest.Server
	verifier *auth.Verifier
	gen      *stubGenerator
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gen := &stubGenerator{response: quizJSON}
	service := app.NewTopicService(memory.NewTopicRepository(), nil, gen, nil)
	verifier := auth.NewVerifier("test-secret")
	router := transport.NewRouter(transport.NewTopicHandler(service, nil), verifier)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testAPI{server: server, verifier: verifier, gen: gen}
}

func (a *testAPI) request(t *testing.T, method, path, token, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, a.server.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.server.Client().Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, payload
}

func (a *testAPI) token(t *testing.T, user string) string {
	t.Helper()
	token, err := a.verifier.IssueToken(user, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestTopicRoutesRequireAuth(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/api/topic/all", "/api/topic/statistics", "/api/topic/some-id"} {
		resp, err := api.server.Client().Get(api.server.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, resp.StatusCode)
		}
	}
}

func TestHealthAndBannerAreOpen(t *testing.T) {
	api := newTestAPI(t)

	resp, payload := api.request(t, http.MethodGet, "/api/health", "", "")
	if resp.StatusCode != http.StatusOK || payload["status"] != "OK" {
		t.Fatalf("health check failed: %d %+v", resp.StatusCode, payload)
	}
	resp, payload = api.request(t, http.MethodGet, "/", "", "")
	if resp.StatusCode != http.StatusOK || payload["success"] != true {
		t.Fatalf("banner failed: %d %+v", resp.StatusCode, payload)
	}
}

func TestGenerateEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.token(t, "u1")

	resp, payload := api.request(t, http.MethodPost, "/api/topic/generate", token,
		`{"title": "Planets", "description": "The solar system", "numberOfQuestions": 2}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %+v", resp.StatusCode, payload)
	}

	topic, ok := payload["topic"].(map[string]any)
	if !ok {
		t.Fatalf("missing topic in payload: %+v", payload)
	}
	questions, ok := topic["questions"].([]any)
	if !ok || len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %+v", topic["questions"])
	}

	raw, _ := json.Marshal(payload)
	if strings.Contains(string(raw), "correctAnswer") {
		t.Fatalf("generate response leaked answers: %s", raw)
	}
}

func TestGenerateRejectsBadCountWithoutCallingGenerator(t *testing.T) {
	api := newTestAPI(t)
	token := api.token(t, "u1")

	resp, _ := api.request(t, http.MethodPost, "/api/topic/generate", token,
		`{"title": "T", "description": "D", "numberOfQuestions": 25}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if api.gen.calls != 0 {
		t.Fatalf("generator must not be invoked, got %d calls", api.gen.calls)
	}
}

func TestGetTopicAndListAreOwnerScoped(t *testing.T) {
	api := newTestAPI(t)
	owner := api.token(t, "u1")
	other := api.token(t, "u2")

	_, created := api.request(t, http.MethodPost, "/api/topic/generate", owner,
		`{"title": "Planets", "description": "The solar system", "numberOfQuestions": 2}`)
	topicID := created["topic"].(map[string]any)["id"].(string)

	resp, payload := api.request(t, http.MethodGet, "/api/topic/"+topicID, owner, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner get: %d %+v", resp.StatusCode, payload)
	}
	raw, _ := json.Marshal(payload)
	if strings.Contains(string(raw), "correctAnswer") {
		t.Fatalf("get topic leaked answers: %s", raw)
	}

	resp, _ = api.request(t, http.MethodGet, "/api/topic/"+topicID, other, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("cross-owner get must 404, got %d", resp.StatusCode)
	}

	resp, payload = api.request(t, http.MethodGet, "/api/topic/all", other, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: %d", resp.StatusCode)
	}
	if topics := payload["topics"].([]any); len(topics) != 0 {
		t.Fatalf("other owner must see no topics, got %+v", topics)
	}
}

func TestSubmitEndpointGrades(t *testing.T) {
	api := newTestAPI(t)
	token := api.token(t, "u1")

	_, created := api.request(t, http.MethodPost, "/api/topic/generate", token,
		`{"title": "Planets", "description": "The solar system", "numberOfQuestions": 2}`)
	topicID := created["topic"].(map[string]any)["id"].(string)

	resp, payload := api.request(t, http.MethodPost, "/api/topic/"+topicID+"/submit", token,
		`{"answers": {"0": "b", "1": "C"}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit: %d %+v", resp.StatusCode, payload)
	}
	if payload["score"].(float64) != 1 || payload["total"].(float64) != 2 {
		t.Fatalf("expected 1/2, got %+v", payload)
	}

	results := payload["results"].([]any)
	first := results[0].(map[string]any)
	if first["isCorrect"] != true || first["correctAnswer"] != "B" {
		t.Fatalf("graded response must reveal answers, got %+v", first)
	}

	resp, _ = api.request(t, http.MethodPost, "/api/topic/"+topicID+"/submit", token, `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing answers must 400, got %d", resp.StatusCode)
	}
}

func TestStatisticsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.token(t, "u1")

	for i := 0; i < 3; i++ {
		api.request(t, http.MethodPost, "/api/topic/generate", token,
			`{"title": "Topic", "description": "D", "numberOfQuestions": 2}`)
	}

	resp, payload := api.request(t, http.MethodGet, "/api/topic/statistics", token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("statistics: %d", resp.StatusCode)
	}
	stats := payload["statistics"].(map[string]any)
	if stats["totalTopics"].(float64) != 3 {
		t.Fatalf("expected 3 topics, got %+v", stats)
	}
	if recent := stats["recentTopics"].([]any); len(recent) != 3 {
		t.Fatalf("expected 3 recent topics, got %+v", recent)
	}
}
