package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: http
    enabled: true
    http:
      url: https://example.com/2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "http2" {
		t.Fatalf("expected only http2 enabled, got %#v", enabled)
	}
}

func TestValidatePublisherConfigRejectsMissingHTTP(t *testing.T) {
	err := validatePublisherConfig(PublisherConfig{
		ID:   "h1",
		Type: TypeHTTP,
	})
	if err == nil {
		t.Fatalf("expected validation error for missing http block")
	}
}

func TestLoadRegistryJSONWithAllTypes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.json")
	raw := `{"publishers":[
  {"id":"q","type":"SQS","sqs":{"uri":" https://sqs.example/q ","region":"eu-west-1"}},
  {"id":"t","type":"sns","sns":{"topic_arn":"arn:aws:sns:eu-west-1:1:t","region":"eu-west-1"}},
  {"id":"g","type":"gcp_pubsub","gcp_pubsub":{"project_id":"p","topic":"status"}},
  {"id":"h","type":"http","http":{"url":"https://hook.example","headers":{" X-Key ":" v ","Empty":""}}}
]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.Enabled()) != 4 {
		t.Fatalf("expected 4 enabled publishers, got %d", len(reg.Enabled()))
	}
	q, ok := reg.ByID("q")
	if !ok || q.Type != TypeSQS || q.SQS.QueueURL != "https://sqs.example/q" {
		t.Fatalf("unexpected sqs entry %#v", q)
	}
	h, _ := reg.ByID("h")
	if h.HTTP.Method != "POST" || h.HTTP.TimeoutSeconds != 5 {
		t.Fatalf("http defaults not applied: %#v", h.HTTP)
	}
	if len(h.HTTP.Headers) != 1 || h.HTTP.Headers["X-Key"] != "v" {
		t.Fatalf("headers not sanitized: %#v", h.HTTP.Headers)
	}
}

func TestValidatePublisherConfigRejectsIncompleteSinks(t *testing.T) {
	cases := []PublisherConfig{
		{ID: "s", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "eu-west-1"}},
		{ID: "g", Type: TypeGCPPubSub, GCPPubSub: &GCPPubSubPublisherConfig{ProjectID: "p"}},
		{ID: "k", Type: "kafka"},
	}
	for _, cfg := range cases {
		if err := validatePublisherConfig(cfg); err == nil {
			t.Fatalf("expected validation error for %#v", cfg)
		}
	}
}

func TestLoadRegistryExpandsEnv(t *testing.T) {
	t.Setenv("STATUS_HOOK_URL", "https://hook.example/status")
	t.Setenv("STATUS_HOOK_KEY", "s3cret")

	path := filepath.Join(t.TempDir(), "publishers.yaml")
	raw := `
publishers:
  - id: hook
    type: http
    http:
      url: ${STATUS_HOOK_URL}
      headers:
        X-Key: ${STATUS_HOOK_KEY}
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	h, ok := reg.ByID("hook")
	if !ok {
		t.Fatalf("hook entry missing")
	}
	if h.HTTP.URL != "https://hook.example/status" || h.HTTP.Headers["X-Key"] != "s3cret" {
		t.Fatalf("env references not expanded: %#v", h.HTTP)
	}
}

func TestParseRegistryRejectsDuplicateIDs(t *testing.T) {
	doc := `{"publishers":[
  {"id":"h","type":"http","http":{"url":"https://a.example"}},
  {"id":" h ","type":"http","http":{"url":"https://b.example"}}
]}`
	if _, err := ParseRegistry(doc, ".json"); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestParseRegistryDoesNotShareBlocks(t *testing.T) {
	in := &HTTPPublisherConfig{URL: " https://a.example "}
	if err := validatePublisherConfig(PublisherConfig{ID: "h", Type: TypeHTTP, HTTP: in}); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if in.URL != " https://a.example " || in.Method != "" {
		t.Fatalf("caller's block was mutated: %#v", in)
	}
}
