package exchange

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nojima/httpform/input"
)

func TestBuildHTTPClient(t *testing.T) {
	// Setup
	options := &Options{
		Timeout:    5 * time.Second,
		SkipVerify: true,
		ForceHTTP1: true,
	}

	// Exercise
	client, err := BuildHTTPClient(options)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	if client.Timeout != options.Timeout {
		t.Errorf("unexpected timeout: expected=%v, actual=%v", options.Timeout, client.Timeout)
	}
	transport, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("unexpected transport type: %T", client.Transport)
	}
	if !transport.TLSClientConfig.InsecureSkipVerify {
		t.Errorf("InsecureSkipVerify must be set")
	}
	if len(transport.TLSNextProto) != 0 {
		t.Errorf("TLSNextProto must be empty when HTTP/1 is forced")
	}
	if client.CheckRedirect == nil {
		t.Errorf("redirects must not be followed by default")
	}
}

func TestSendRequest_Form(t *testing.T) {
	// Setup
	type received struct {
		method      string
		query       string
		contentType string
		body        string
	}
	ch := make(chan received, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := ioutil.ReadAll(r.Body)
		ch <- received{
			method:      r.Method,
			query:       r.URL.RawQuery,
			contentType: r.Header.Get("Content-Type"),
			body:        string(body),
		}
		fmt.Fprintln(w, "ok")
	}))
	defer ts.Close()

	in := &input.Input{
		Method:     input.Method("POST"),
		URL:        parseURL(t, ts.URL+"/submit"),
		Parameters: []input.Field{{Name: "q", Value: "1 2"}, {Name: "q", Value: "3"}},
	}
	r, err := BuildHTTPRequest(in, &Options{})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Exercise
	resp, err := SendRequest(r, &Options{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	defer resp.Body.Close()

	// Verify
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status: %d", resp.StatusCode)
	}
	got := <-ch
	expected := received{
		method:      "POST",
		query:       "",
		contentType: "application/x-www-form-urlencoded; charset=UTF-8",
		body:        "q=1+2&q=3",
	}
	if got != expected {
		t.Errorf("unexpected request: expected=%+v, actual=%+v", expected, got)
	}
}

func TestSendRequest_Query(t *testing.T) {
	ch := make(chan string, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ch <- r.URL.RawQuery
	}))
	defer ts.Close()

	in := &input.Input{
		Method:     input.Method("DELETE"),
		URL:        parseURL(t, ts.URL+"/items"),
		Parameters: []input.Field{{Name: "id", Value: "42"}},
	}
	r, err := BuildHTTPRequest(in, &Options{})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	resp, err := SendRequest(r, &Options{})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	resp.Body.Close()

	if query := <-ch; query != "id=42" {
		t.Errorf("unexpected query: %s", query)
	}
}

func TestSendRequest_Redirect(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusFound)
			return
		}
		fmt.Fprintln(w, "new")
	}))
	defer ts.Close()

	testCases := []struct {
		title           string
		followRedirects bool
		expectedStatus  int
	}{
		{title: "Not followed", followRedirects: false, expectedStatus: http.StatusFound},
		{title: "Followed", followRedirects: true, expectedStatus: http.StatusOK},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			req, err := Build(GET, ts.URL+"/old", nil, "")
			if err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			r, err := ToHTTPRequest(req)
			if err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}

			resp, err := SendRequest(r, &Options{FollowRedirects: tt.followRedirects})
			if err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("unexpected status: expected=%d, actual=%d", tt.expectedStatus, resp.StatusCode)
			}
		})
	}
}
