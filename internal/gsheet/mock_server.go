// SPDX-License-Identifier: MIT

package gsheet

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
)

// mockSheet backs the httptest server used across the package tests.
// Ranges maps "tab!range" to the matrix served for that exact reference;
// Tabs maps a tab name to a fallback matrix served for any range of it.
type mockSheet struct {
	TabNames []string
	Ranges   map[string][][]any
	Tabs     map[string][][]any
	Status   int // non-zero forces this status on every response

	Requests []string // request paths in arrival order
}

func (m *mockSheet) server() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.Requests = append(m.Requests, r.URL.Path)

		if m.Status != 0 {
			http.Error(w, "forced failure", m.Status)
			return
		}

		const valuesMarker = "/values/"
		if i := strings.Index(r.URL.Path, valuesMarker); i >= 0 {
			ref := r.URL.Path[i+len(valuesMarker):]
			values, ok := m.Ranges[ref]
			if !ok {
				tab, _, _ := strings.Cut(ref, "!")
				values, ok = m.Tabs[tab]
			}
			if !ok {
				http.NotFound(w, r)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"values": values})
			return
		}

		type props struct {
			Properties struct {
				Title string `json:"title"`
			} `json:"properties"`
		}
		sheets := make([]props, 0, len(m.TabNames))
		for _, name := range m.TabNames {
			var p props
			p.Properties.Title = name
			sheets = append(sheets, p)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"sheets": sheets})
	}))
}
