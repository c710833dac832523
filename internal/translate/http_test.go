package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPTranslator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req translateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.APIKey != "secret" {
			http.Error(w, `{"error":"Invalid API key"}`, http.StatusForbidden)
			return
		}

		out := translateResponse{}
		for _, q := range req.Q {
			out.TranslatedText = append(out.TranslatedText, req.Target+":"+q)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	}))
	defer srv.Close()

	tr := NewHTTPTranslator(HTTPOptions{Endpoint: srv.URL, APIKey: "secret", RPS: 100})
	out, err := tr.Translate(context.Background(), []string{"ルフィ", "ゾロ"})
	require.NoError(t, err)
	require.Equal(t, []string{"en:ルフィ", "en:ゾロ"}, out)

	bad := NewHTTPTranslator(HTTPOptions{Endpoint: srv.URL})
	_, err = bad.Translate(context.Background(), []string{"ルフィ"})
	require.ErrorContains(t, err, "status 403")
}
