package bankfetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"testing/fstest"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newTestClient(rt http.RoundTripper) *Client {
	return NewClient(&http.Client{Transport: rt}, nil)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

const bankBody = `{"p1.html":{"questions":[{"id":1,"question":"2+2?","options":["3","4","5"],"correct":1,"explanation":"basic math"}]}}`

func TestFetchBankDecodesPayload(t *testing.T) {
	var seenURL string
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seenURL = r.URL.String()
		return jsonResponse(http.StatusOK, bankBody), nil
	}))

	bank, err := client.FetchBank(context.Background(), "http://localhost:8080/pages/mcq-data.json")
	if err != nil {
		t.Fatalf("FetchBank returned error: %v", err)
	}
	if seenURL != "http://localhost:8080/pages/mcq-data.json" {
		t.Fatalf("requested %q", seenURL)
	}
	if _, ok := bank.Lookup("p1.html"); !ok {
		t.Fatalf("expected p1.html in fetched bank")
	}
}

func TestFetchBankPropagatesNonOKStatus(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, ""), nil
	}))

	if _, err := client.FetchBank(context.Background(), "http://localhost/pages/mcq-data.json"); err == nil {
		t.Fatalf("expected error for non-200 status")
	}
}

func TestFetchBankJSONDecodeError(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "not-json"), nil
	}))

	if _, err := client.FetchBank(context.Background(), "http://localhost/pages/mcq-data.json"); err == nil {
		t.Fatalf("expected JSON decode error")
	}
}

func TestClientSourceUsesBoundURL(t *testing.T) {
	calls := 0
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		if r.URL.Path != "/pages/mcq-data.json" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		return jsonResponse(http.StatusOK, bankBody), nil
	}))

	bank, err := client.Source("http://localhost/pages/mcq-data.json").FetchBank(context.Background())
	if err != nil || bank.Len() != 1 || calls != 1 {
		t.Fatalf("Source fetch = (%v, %v), calls=%d", bank, err, calls)
	}
}

func TestFileSource(t *testing.T) {
	fsys := fstest.MapFS{
		"pages/mcq-data.json": {Data: []byte(bankBody)},
		"pages/broken.json":   {Data: []byte("{")},
	}

	bank, err := FileSource{FS: fsys, Name: "pages/mcq-data.json"}.FetchBank(context.Background())
	if err != nil {
		t.Fatalf("FetchBank returned error: %v", err)
	}
	if bank.QuestionCount() != 1 {
		t.Fatalf("QuestionCount = %d, want 1", bank.QuestionCount())
	}

	if _, err := (FileSource{FS: fsys, Name: "pages/broken.json"}).FetchBank(context.Background()); err == nil {
		t.Fatalf("expected decode error for broken file")
	}
	if _, err := (FileSource{FS: fsys, Name: "pages/missing.json"}).FetchBank(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
