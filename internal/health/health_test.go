package health

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLivenessEndpoint(t *testing.T) {
	srv := httptest.NewServer(Router())
	defer srv.Close()

	for _, path := range []string{"/", "/healthz"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s: status %d", path, resp.StatusCode)
		}
		if string(body) != `{"status":"ok"}` {
			t.Errorf("GET %s: body %q", path, body)
		}
	}
}
