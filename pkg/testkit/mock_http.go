package testkit

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// MockTransport implements http.RoundTripper. It matches outgoing requests
// against registered stubs and returns synthetic responses instead of making
// real network calls.
//
// Install it on the client under test:
//
//	mt := testkit.NewMockTransport()
//	mt.Stub("GET", "googleapis.com", 200, certsJSON)
//	client := &http.Client{Transport: mt}
type MockTransport struct {
	mu    sync.Mutex
	stubs []*httpStub
}

type httpStub struct {
	method    string
	urlPart   string
	status    int
	body      []byte
	header    http.Header
	callCount int
}

func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Stub registers a synthetic response for requests whose method matches and
// whose URL contains urlPart. Stubs are matched in registration order.
func (mt *MockTransport) Stub(method, urlPart string, status int, body []byte) *MockTransport {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.stubs = append(mt.stubs, &httpStub{
		method:  strings.ToUpper(method),
		urlPart: urlPart,
		status:  status,
		body:    body,
		header:  http.Header{"Content-Type": []string{"application/json"}},
	})
	return mt
}

// RoundTrip intercepts the outgoing request and returns a matching stub's
// response, or an error when nothing matches (no real calls ever escape).
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for _, s := range mt.stubs {
		if s.method != "" && s.method != req.Method {
			continue
		}
		if !strings.Contains(req.URL.String(), s.urlPart) {
			continue
		}
		s.callCount++
		return &http.Response{
			StatusCode: s.status,
			Status:     http.StatusText(s.status),
			Header:     s.header.Clone(),
			Body:       io.NopCloser(bytes.NewReader(s.body)),
			Request:    req,
		}, nil
	}
	return nil, fmt.Errorf("testkit: no stub for %s %s", req.Method, req.URL)
}

// AssertAllCalled fails the test if any registered stub was never hit.
func (mt *MockTransport) AssertAllCalled(t *testing.T) {
	t.Helper()
	mt.mu.Lock()
	defer mt.mu.Unlock()
	for _, s := range mt.stubs {
		assert.Greater(t, s.callCount, 0,
			"stub %s %q was never called", s.method, s.urlPart)
	}
}

// Calls reports how many requests matched the stub registered for urlPart.
func (mt *MockTransport) Calls(urlPart string) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	for _, s := range mt.stubs {
		if s.urlPart == urlPart {
			return s.callCount
		}
	}
	return 0
}
