package fx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRate(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/last":
			w.Write([]byte(`{"USDBRL": {"bid": "5.4321", "ask": 5.44}}`))
		case "/series":
			w.Write([]byte(`{"data": [[1, 5.1], [2, 5.2]]}`))
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := New(t.TempDir())
	ctx := context.Background()
	tests := []struct {
		src  Source
		want string
	}{
		{Source{URL: srv.URL + "/last", Path: "$.USDBRL.bid"}, "5.4321"},
		{Source{URL: srv.URL + "/last", Path: "$.USDBRL.ask"}, "5.44"},
		{Source{URL: srv.URL + "/series", Path: "$.data[-1:][1]"}, "5.2"},
	}
	for _, tt := range tests {
		got, err := f.Rate(ctx, tt.src)
		if err != nil {
			t.Errorf("Rate(%v) error = %v", tt.src, err)
			continue
		}
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Rate(%v) = %v, want %s", tt.src, got, tt.want)
		}
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("server hits = %d, want 2 (responses are cached)", n)
	}

	if _, err := f.Rate(ctx, Source{URL: srv.URL + "/missing", Path: "$.x"}); err == nil {
		t.Errorf("Rate() on 404 want error")
	}
	if _, err := f.Rate(ctx, Source{URL: srv.URL + "/last", Path: "$.EURBRL.bid"}); err == nil {
		t.Errorf("Rate() with unknown path want error")
	}
}

func TestBRLSource(t *testing.T) {
	got := BRLSource(" eur")
	want := Source{URL: "https://economia.awesomeapi.com.br/json/last/EUR-BRL", Path: "$.EURBRL.bid"}
	if got != want {
		t.Errorf("BRLSource(eur) = %v, want %v", got, want)
	}
	if DefaultSource != BRLSource("USD") {
		t.Errorf("DefaultSource = %v, want the USD source", DefaultSource)
	}
}
