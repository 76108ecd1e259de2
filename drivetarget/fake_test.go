package drivetarget_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// fakeDrive serves the subset of the Drive v3 files API used by Target from memory.
type fakeDrive struct {
	mu    sync.Mutex
	files map[string]*drive.File
	data  map[string][]byte
	next  int
	fail  int
}

var queryPattern = regexp.MustCompile(`^name = '((?:[^'\\]|\\.)*)' and '((?:[^'\\]|\\.)*)' in parents and trashed = false$`)

func newFakeDrive() *fakeDrive {
	return &fakeDrive{files: map[string]*drive.File{}, data: map[string][]byte{}}
}

func (d *fakeDrive) add(f *drive.File) *drive.File {
	d.mu.Lock()
	defer d.mu.Unlock()
	if f.Id == "" {
		d.next++
		f.Id = fmt.Sprintf("id-%d", d.next)
	}
	d.files[f.Id] = f
	return f
}

func (d *fakeDrive) children(parentID string) (children []*drive.File) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, f := range d.files {
		for _, p := range f.Parents {
			if p == parentID {
				children = append(children, f)
			}
		}
	}
	return children
}

func (d *fakeDrive) content(fileID string) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.data[fileID]
}

func (d *fakeDrive) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if d.fail != 0 {
		writeError(w, d.fail)
		return
	}
	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/files"):
		d.list(w, r)
	case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/files/"):
		d.get(w, lastSegment(r.URL.Path))
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/files"):
		d.create(w, r)
	case r.Method == http.MethodPatch && strings.Contains(r.URL.Path, "/files/"):
		d.update(w, r, lastSegment(r.URL.Path))
	default:
		writeError(w, http.StatusNotFound)
	}
}

func (d *fakeDrive) list(w http.ResponseWriter, r *http.Request) {
	m := queryPattern.FindStringSubmatch(r.URL.Query().Get("q"))
	if m == nil {
		writeError(w, http.StatusBadRequest)
		return
	}
	name, parentID := unescapeQuery(m[1]), unescapeQuery(m[2])
	files := []*drive.File{}
	for _, f := range d.children(parentID) {
		if f.Name == name && !f.Trashed {
			files = append(files, f)
		}
	}
	writeJSON(w, &drive.FileList{Files: files})
}

func (d *fakeDrive) get(w http.ResponseWriter, fileID string) {
	d.mu.Lock()
	f, ok := d.files[fileID]
	d.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound)
		return
	}
	writeJSON(w, f)
}

func (d *fakeDrive) create(w http.ResponseWriter, r *http.Request) {
	var f drive.File
	data, err := readBody(r, &f)
	if err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}
	created := d.add(&f)
	if data != nil {
		d.mu.Lock()
		d.data[created.Id] = data
		created.Size = int64(len(data))
		d.mu.Unlock()
	}
	writeJSON(w, created)
}

func (d *fakeDrive) update(w http.ResponseWriter, r *http.Request, fileID string) {
	var patch drive.File
	data, err := readBody(r, &patch)
	if err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}
	d.mu.Lock()
	f, ok := d.files[fileID]
	if ok {
		d.data[fileID] = data
		f.Size = int64(len(data))
	}
	d.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound)
		return
	}
	writeJSON(w, f)
}

// readBody decodes the metadata into f and returns the media content of a multipart upload.
func readBody(r *http.Request, f *drive.File) (data []byte, err error) {
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		return nil, json.NewDecoder(r.Body).Decode(f)
	}
	mr := multipart.NewReader(r.Body, params["boundary"])
	metadata, err := mr.NextPart()
	if err != nil {
		return nil, err
	}
	if err := json.NewDecoder(metadata).Decode(f); err != nil {
		return nil, err
	}
	media, err := mr.NextPart()
	if err == io.EOF {
		return []byte{}, nil
	}
	if err != nil {
		return nil, err
	}
	data, err = io.ReadAll(media)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

func unescapeQuery(s string) string {
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

func lastSegment(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":%q}}`, code, http.StatusText(code))
}

func newTestService(t *testing.T, handler http.Handler) *drive.Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	service, err := drive.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("drive.NewService() unexpected error: %v", err)
	}
	return service
}
