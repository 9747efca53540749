// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identifier_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/folio/internal/core/identifier"
)

func derive(namespace, value string) *httptest.ResponseRecorder {
	query := url.Values{}
	query.Set("namespace", namespace)
	query.Set("value", value)

	recorder := httptest.NewRecorder()
	identifier.NewHandler().Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?"+query.Encode(), nil))
	return recorder
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		value     string
		wantID    string
	}{
		{"dns", "dns", "threeleaf.com", "d4a08aa5-9661-57ab-bf61-8f28be9b1f00"},
		{"dns upper namespace", "DNS", "THREELEAF.COM", "d4a08aa5-9661-57ab-bf61-8f28be9b1f00"},
		{"url", "url", "https://threeleaf.com/blog?page=2#section1", "92ec7007-2f03-5da2-b442-76791a6e389c"},
		{"oid", "oid", "1.2.3.4.5", "8f8c57e1-8db4-5940-8ec2-e7d2c194814e"},
		{"x500 author dn", "x500", "sn=Marsh,givenName=John", "522e2d60-c5e5-5c1a-b576-e3e177cfdec0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := derive(tt.namespace, tt.value)
			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Contains(t, recorder.Body.String(), `"id":"`+tt.wantID+`"`)
			assert.Contains(t, recorder.Body.String(), `"version":5`)
		})
	}
}

func TestDerive_Errors(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		value     string
		wantCode  string
	}{
		{"malformed hostname", "dns", "three leaf.com", "INVALID_INPUT_FORMAT"},
		{"url without scheme", "url", "threeleaf.com/blog", "INVALID_INPUT_FORMAT"},
		{"oid with letters", "oid", "1.2.three", "INVALID_INPUT_FORMAT"},
		{"unknown namespace", "isbn", "978-0140449136", "VALIDATION_ERROR"},
		{"missing value", "dns", "", "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := derive(tt.namespace, tt.value)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Contains(t, recorder.Body.String(), `"code":"`+tt.wantCode+`"`)
		})
	}
}
