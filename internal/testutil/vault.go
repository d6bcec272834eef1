// Package testutil provides testing utilities, including an in-process fake
// of the Vault KV v2 HTTP API.
//
// The fake speaks just enough of the KV v2 read protocol for the secretstore
// client and counts reads per path, which lets tests assert that the client's
// cache prevents repeat network calls:
//
//	fake := testutil.NewFakeVault()
//	defer fake.Close()
//	fake.SetSecret("secureshare/database", map[string]any{"url": "...", ...})
//	// point the client at fake.Address() with token testutil.FakeVaultToken
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// FakeVaultToken is the token accepted by the fake Vault server.
const FakeVaultToken = "fake-vault-token"

// FakeVault is an in-process stand-in for a Vault server with a KV v2 mount.
type FakeVault struct {
	server *httptest.Server

	mu       sync.Mutex
	secrets  map[string]map[string]any
	requests map[string]int
}

// NewFakeVault starts a fake Vault server. Callers must Close it.
func NewFakeVault() *FakeVault {
	f := &FakeVault{
		secrets:  make(map[string]map[string]any),
		requests: make(map[string]int),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

// Address returns the base URL of the fake server.
func (f *FakeVault) Address() string {
	return f.server.URL
}

// Close shuts the fake server down.
func (f *FakeVault) Close() {
	f.server.Close()
}

// SetSecret stores a secret document under a logical path (without the mount
// or the KV v2 "data/" segment).
func (f *FakeVault) SetSecret(path string, data map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.secrets[path] = data
}

// DeleteSecret removes a secret document.
func (f *FakeVault) DeleteSecret(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.secrets, path)
}

// Reads returns how many read requests the server has served for a path.
func (f *FakeVault) Reads(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[path]
}

// handle implements KV v2 reads: GET /v1/{mount}/data/{path}.
func (f *FakeVault) handle(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Vault-Token") != FakeVaultToken {
		writeVaultError(w, http.StatusForbidden, "permission denied")
		return
	}
	if r.Method != http.MethodGet {
		writeVaultError(w, http.StatusMethodNotAllowed, "unsupported operation")
		return
	}

	trimmed := strings.TrimPrefix(r.URL.Path, "/v1/")
	mount, rest, found := strings.Cut(trimmed, "/data/")
	if !found || mount == "" {
		writeVaultError(w, http.StatusNotFound, "unsupported path")
		return
	}

	f.mu.Lock()
	f.requests[rest]++
	data, ok := f.secrets[rest]
	f.mu.Unlock()

	if !ok {
		writeVaultError(w, http.StatusNotFound, "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"request_id": "fake-request",
		"data": map[string]any{
			"data": data,
			"metadata": map[string]any{
				"created_time": "2024-01-01T00:00:00Z",
				"version":      1,
			},
		},
	})
}

func writeVaultError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	errs := []string{}
	if message != "" {
		errs = append(errs, message)
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"errors": errs})
}
