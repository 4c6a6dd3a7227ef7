package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestRequiredName(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantSet bool
		wantErr bool
	}{
		{"absent", `{}`, false, false},
		{"present", `{"name":"x"}`, true, false},
		{"null", `{"name":null}`, true, true},
		{"blank", `{"name":"  "}`, true, true},
		{"wrong type", `{"name":1}`, false, true},
		{"too long", `{"name":"` + strings.Repeat("ا", maxNameLen+1) + `"}`, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fields map[string]json.RawMessage
			if err := json.Unmarshal([]byte(tt.body), &fields); err != nil {
				t.Fatal(err)
			}
			o, err := requiredName(fields, "name", "required")
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if o.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", o.Set, tt.wantSet)
			}
		})
	}
}

func TestTagsField(t *testing.T) {
	tests := []struct {
		body string
		want []string
		null bool
	}{
		{`{"tags":"a, b ,,c"}`, []string{"a", "b", "c"}, false},
		{`{"tags":[" a ","", "b"]}`, []string{"a", "b"}, false},
		{`{"tags":null}`, nil, true},
	}
	for _, tt := range tests {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal([]byte(tt.body), &fields); err != nil {
			t.Fatal(err)
		}
		o, err := tagsField(fields, "tags")
		if err != nil {
			t.Fatalf("%s: %v", tt.body, err)
		}
		if !o.Set {
			t.Fatalf("%s: not set", tt.body)
		}
		if tt.null {
			if o.Value != nil {
				t.Errorf("%s: value = %v, want nil", tt.body, *o.Value)
			}
			continue
		}
		if strings.Join(*o.Value, "|") != strings.Join(tt.want, "|") {
			t.Errorf("%s: got %v, want %v", tt.body, *o.Value, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("زمزم", 2); got != "زم" {
		t.Errorf("truncate = %q, want %q", got, "زم")
	}
	if got := truncate("abc", 5); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodGet, "/health", "")
	wantStatus(t, code, http.StatusOK, body)
	if body["database"] != "ok" {
		t.Errorf("database = %v", body["database"])
	}

	env.DB.Close()
	code, body = env.do(t, http.MethodGet, "/health", "")
	wantStatus(t, code, http.StatusServiceUnavailable, body)
}
