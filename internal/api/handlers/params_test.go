package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestPathID(t *testing.T) {
	tests := []struct {
		path   string
		wantID int64
		wantOK bool
	}{
		{"/venues/42", 42, true},
		{"/venues/0", 0, false},
		{"/venues/-3", 0, false},
		{"/venues/abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var (
				id int64
				ok bool
			)
			r := mux.NewRouter()
			r.HandleFunc("/venues/{venueId}", func(_ http.ResponseWriter, req *http.Request) {
				id, _, ok = PathID(req, "venueId")
			})
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
