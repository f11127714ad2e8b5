// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func send(t *testing.T, h http.Handler, method, url string, wantStatus int) string {
	t.Helper()
	r := httptest.NewRequest(method, url, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != wantStatus {
		t.Fatalf("%s %s: want status code %d, got %d", method, url, wantStatus, res.StatusCode)
	}
	return w.Body.String()
}
