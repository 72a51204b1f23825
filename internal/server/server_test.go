package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/elfmap/internal/elftest"
	"github.com/joshuapare/elfmap/internal/format"
)

type envelope struct {
	Name string `json:"name"`
	File struct {
		Name      string `json:"name"`
		TotalSize uint64 `json:"totalSize"`
	} `json:"file"`
	Virtual struct {
		Name string `json:"name"`
	} `json:"virtual"`
}

func sampleImage() []byte {
	return elftest.NewBuilder().
		Section(elftest.Section{
			Name: ".text", Type: format.SHTProgbits,
			Flags: format.SHFAlloc | format.SHFExecinstr,
			Addr:  0x1000, Off: 0x400, Size: 0x100, AddrAlign: 16,
		}).
		Build().Data
}

// newTestServer serves a root directory holding one valid sample.so.
func newTestServer(t *testing.T, watch bool) (*Server, *httptest.Server, string) {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "sample.so"), sampleImage(), 0o644))

	s, err := New(Config{Addr: ":0", Root: root, Watch: watch})
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler)
	t.Cleanup(ts.Close)
	return s, ts, root
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var er errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&er))
	return er
}

func TestLayoutEndpoint(t *testing.T) {
	_, ts, _ := newTestServer(t, false)

	resp, err := http.Get(ts.URL + "/api/v1/layout?file=sample.so")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Equal(t, "sample.so", env.Name)
	require.Equal(t, "ELF file", env.File.Name)
	require.Equal(t, "Memory image", env.Virtual.Name)
	require.NotZero(t, env.File.TotalSize)
}

func TestLayoutMissingParam(t *testing.T) {
	_, ts, _ := newTestServer(t, false)

	resp, err := http.Get(ts.URL + "/api/v1/layout")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "bad-request", decodeError(t, resp).Kind)
}

func TestLayoutRejectsEscapingPath(t *testing.T) {
	_, ts, _ := newTestServer(t, false)

	resp, err := http.Get(ts.URL + "/api/v1/layout?file=" + url.QueryEscape("../outside.so"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "forbidden", decodeError(t, resp).Kind)
}

func TestLayoutMissingFile(t *testing.T) {
	_, ts, _ := newTestServer(t, false)

	resp, err := http.Get(ts.URL + "/api/v1/layout?file=absent.so")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "not-found", decodeError(t, resp).Kind)
}

func TestLayoutParseFailure(t *testing.T) {
	_, ts, root := newTestServer(t, false)
	require.NoError(t, os.WriteFile(filepath.Join(root, "junk.so"), []byte("not an elf at all"), 0o644))

	resp, err := http.Get(ts.URL + "/api/v1/layout?file=junk.so")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	er := decodeError(t, resp)
	require.Equal(t, "bad-magic", er.Kind)
	require.NotEmpty(t, er.Error)
}

func TestInspectBody(t *testing.T) {
	_, ts, _ := newTestServer(t, false)

	resp, err := http.Post(ts.URL+"/api/v1/inspect?name=mem.so", "application/octet-stream",
		bytes.NewReader(sampleImage()))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Equal(t, "mem.so", env.Name)
}

func TestInspectMultipart(t *testing.T) {
	_, ts, _ := newTestServer(t, false)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "upload.so")
	require.NoError(t, err)
	_, err = fw.Write(sampleImage())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/api/v1/inspect", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Equal(t, "upload.so", env.Name)
}

func TestInspectBadMagic(t *testing.T) {
	_, ts, _ := newTestServer(t, false)

	resp, err := http.Post(ts.URL+"/api/v1/inspect", "application/octet-stream",
		strings.NewReader("garbage bytes"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, "bad-magic", decodeError(t, resp).Kind)
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts, _ := newTestServer(t, false)

	resp, err := http.Get(ts.URL + "/api/v1/layout?file=sample.so")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `elfmap_parses_total{outcome="ok"} 1`)
	require.Contains(t, string(body), "elfmap_parse_duration_seconds")
}

func TestEventsReceiveReload(t *testing.T) {
	s, ts, root := newTestServer(t, false)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/events"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	require.Eventually(t, func() bool {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		return len(s.hub.conns) == 1
	}, 2*time.Second, 10*time.Millisecond)

	s.reload(filepath.Join(root, "sample.so"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev reloadEvent
	require.NoError(t, conn.ReadJSON(&ev))
	require.Equal(t, "reload", ev.Event)
	require.Equal(t, "sample.so", ev.File)
}

func TestReloadIgnoresUnparsableFile(t *testing.T) {
	s, _, root := newTestServer(t, false)

	junk := filepath.Join(root, "junk.bin")
	require.NoError(t, os.WriteFile(junk, []byte("tiny"), 0o644))

	// Must not panic or broadcast with no subscribers.
	s.reload(junk)
}

func TestResolvePath(t *testing.T) {
	s, _, root := newTestServer(t, false)

	path, err := s.resolvePath("nested/lib.so")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "nested", "lib.so"), path)

	_, err = s.resolvePath("../escape.so")
	require.Error(t, err)

	_, err = s.resolvePath("/etc/passwd")
	require.Error(t, err)
}
