package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"landctl/internal/types"
)

func TestFetchQueueDecodesJobs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/landing_jobs" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"jobs": [
				{
					"id": 3,
					"status": "SUBMITTED",
					"repository": "lando-repo",
					"requester": "dev@example.test",
					"revisions": ["https://github.example.test/lando-repo/pull/42"],
					"url": "https://lando.example.test/landings/3",
					"created_at": "2024-05-02T09:30:00+00:00",
					"updated_at": "2024-05-02T09:31:00+00:00"
				},
				{"id": 4, "status": "IN_PROGRESS", "repository": "lando-repo"}
			]
		}`))
	}))
	defer server.Close()

	c := testClient(server.URL, "")
	jobs, err := c.FetchQueue(context.Background())
	if err != nil {
		t.Fatalf("FetchQueue error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("unexpected jobs: %#v", jobs)
	}
	if jobs[0].ID != 3 || jobs[0].Status != types.StatusSubmitted {
		t.Fatalf("unexpected first job: %#v", jobs[0])
	}
	if jobs[0].Requester != "dev@example.test" {
		t.Fatalf("unexpected requester: %q", jobs[0].Requester)
	}
	if jobs[1].Status != types.StatusInProgress {
		t.Fatalf("unexpected second job: %#v", jobs[1])
	}
}

func TestFetchJobDecodesSingleJob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/landing_jobs/3" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":3,"status":"DEFERRED","repository":"lando-repo"}`))
	}))
	defer server.Close()

	c := testClient(server.URL, "")
	job, err := c.FetchJob(context.Background(), 3)
	if err != nil {
		t.Fatalf("FetchJob error: %v", err)
	}
	if job.ID != 3 || job.Status != types.StatusDeferred {
		t.Fatalf("unexpected job: %#v", job)
	}
}

func TestCancelLandingJobSendsStatusUpdate(t *testing.T) {
	var seenMethod, seenPath, seenToken string
	var seenBody CancelRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenMethod = r.Method
		seenPath = r.URL.Path
		seenToken = r.Header.Get("X-CSRFToken")
		_ = json.NewDecoder(r.Body).Decode(&seenBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":3}`))
	}))
	defer server.Close()

	c := testClient(server.URL, "secret")
	if err := c.CancelLandingJob(context.Background(), 3); err != nil {
		t.Fatalf("CancelLandingJob error: %v", err)
	}
	if seenMethod != http.MethodPut || seenPath != "/api/landing_jobs/3" {
		t.Fatalf("unexpected request: %s %s", seenMethod, seenPath)
	}
	if seenToken != "secret" {
		t.Fatalf("expected csrf token on cancel, got %q", seenToken)
	}
	if seenBody.Status != "CANCELLED" {
		t.Fatalf("unexpected body: %#v", seenBody)
	}
}

func TestCancelLandingJobSurfacesRefusals(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":["Landing job status (IN_PROGRESS) does not allow cancelling."]}`))
	}))
	defer server.Close()

	c := testClient(server.URL, "secret")
	err := c.CancelLandingJob(context.Background(), 3)
	if err == nil {
		t.Fatalf("expected an error for a refused cancel")
	}
	if StatusCode(err) != http.StatusBadRequest {
		t.Fatalf("unexpected status code: %v", err)
	}
	if err.Error() != "api error (400): Landing job status (IN_PROGRESS) does not allow cancelling." {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}

func TestFetchJobNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found."}`))
	}))
	defer server.Close()

	c := testClient(server.URL, "")
	_, err := c.FetchJob(context.Background(), 99)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if StatusCode(err) != http.StatusNotFound {
		t.Fatalf("unexpected status code: %v", err)
	}
}
