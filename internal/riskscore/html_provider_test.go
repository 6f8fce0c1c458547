package riskscore

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestScore_ExtractsPercentage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<div class="token-header">PEPE</div>
			<div class="safety"><span class="score-value">87%</span></div>
		</body></html>`))
	}))
	defer srv.Close()

	p := NewHTMLProvider(srv.URL, newTestLogger())

	score := p.Score(context.Background(), "mint123")
	if !score.Known {
		t.Fatal("expected known score")
	}
	if score.Value != 87 {
		t.Errorf("score = %v, want 87", score.Value)
	}
}

func TestScore_FractionalPercentage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<div>Safety score: 72.5 %</div>`))
	}))
	defer srv.Close()

	p := NewHTMLProvider(srv.URL, newTestLogger())

	score := p.Score(context.Background(), "mint123")
	if !score.Known || score.Value != 72.5 {
		t.Fatalf("score = %+v, want known 72.5", score)
	}
}

func TestScore_MissingElementIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>no widget here</body></html>`))
	}))
	defer srv.Close()

	p := NewHTMLProvider(srv.URL, newTestLogger())

	score := p.Score(context.Background(), "mint123")
	if score.Known {
		t.Fatalf("expected unknown score, got %v", score.Value)
	}
	if score.Value != 0 {
		t.Errorf("unknown score must not carry a value, got %v", score.Value)
	}
}

func TestScore_NonSuccessIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewHTMLProvider(srv.URL, newTestLogger())

	if score := p.Score(context.Background(), "mint123"); score.Known {
		t.Fatalf("expected unknown score, got %v", score.Value)
	}
}

func TestScore_OutOfRangeIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<div>score 250%</div>`))
	}))
	defer srv.Close()

	p := NewHTMLProvider(srv.URL, newTestLogger())

	if score := p.Score(context.Background(), "mint123"); score.Known {
		t.Fatalf("expected unknown score, got %v", score.Value)
	}
}

func TestScore_TransportErrorIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force connection refused

	p := NewHTMLProvider(srv.URL, newTestLogger())

	if score := p.Score(context.Background(), "mint123"); score.Known {
		t.Fatalf("expected unknown score, got %v", score.Value)
	}
}
