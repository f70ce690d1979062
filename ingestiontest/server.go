// Package ingestiontest provides an in-memory ingestion API and token endpoint
// for tests.
package ingestiontest

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gorilla/mux"
)

// Route names used by Options.FailRoutes and Call.Route
const (
	RouteToken            = "token"
	RouteGetApplication   = "getApplication"
	RouteCreateSubmission = "createSubmission"
	RouteGetSubmission    = "getSubmission"
	RouteUpdateSubmission = "updateSubmission"
	RouteDeleteSubmission = "deleteSubmission"
	RouteCommitSubmission = "commitSubmission"
	RouteSubmissionStatus = "submissionStatus"
	RouteBlob             = "blob"
)

// AccessToken is the token issued by the fake token endpoint
const AccessToken = "ingestiontest-token"

// Doc is a loosely typed JSON document
type Doc map[string]interface{}

// Options configures the responses of a Server
type Options struct {
	// Application is returned by the get application route
	Application Doc

	// ClonedSubmission is returned by the create submission route. Its
	// fileUploadUrl is pointed at the server's blob route if empty.
	ClonedSubmission Doc

	// UpdateStatusDetails are attached to the update submission response
	UpdateStatusDetails Doc

	// Statuses are returned by successive submission status requests, the
	// last one is repeated
	Statuses []Doc

	// FailRoutes makes routes respond with the mapped status code
	FailRoutes map[string]int

	// EmptyToken makes the token endpoint answer without an access token
	EmptyToken bool
}

// Call is a request received by a Server
type Call struct {
	// Route name the request matched
	Route string

	// Method of the request
	Method string

	// Vars are the route variables, ex., submissionId
	Vars map[string]string

	// Body of the request
	Body []byte
}

// Server is a fake ingestion API
type Server struct {
	*httptest.Server

	opts Options

	mu         sync.Mutex
	calls      []Call
	submission Doc
	polls      int
	blobs      map[string][]byte
}

// NewServer starts a Server. Call Close when done.
func NewServer(opts Options) *Server {
	s := &Server{
		opts:  opts,
		blobs: map[string][]byte{},
	}

	router := mux.NewRouter()
	api := router.PathPrefix("/v1.0/my/applications/{appId}").Subrouter()

	router.Handle("/oauth2/token", s.route(RouteToken, s.token)).Methods("POST")
	router.Handle("/blob/{container}/{blob}", s.route(RouteBlob, s.putBlob)).Methods("PUT")
	router.Handle("/v1.0/my/applications/{appId}",
		s.authed(RouteGetApplication, s.getApplication)).Methods("GET")

	api.Handle("/submissions", s.authed(RouteCreateSubmission, s.createSubmission)).Methods("POST")
	api.Handle("/submissions/{submissionId}", s.authed(RouteGetSubmission, s.getSubmission)).Methods("GET")
	api.Handle("/submissions/{submissionId}", s.authed(RouteUpdateSubmission, s.updateSubmission)).Methods("PUT")
	api.Handle("/submissions/{submissionId}", s.authed(RouteDeleteSubmission, s.noContent)).Methods("DELETE")
	api.Handle("/submissions/{submissionId}/commit", s.authed(RouteCommitSubmission, s.commit)).Methods("POST")
	api.Handle("/submissions/{submissionId}/status", s.authed(RouteSubmissionStatus, s.status)).Methods("GET")

	s.Server = httptest.NewServer(router)

	return s
}

// TokenEndpoint returns the URL of the fake token endpoint
func (s *Server) TokenEndpoint() string {
	return s.URL + "/oauth2/token"
}

// Calls returns the requests received so far
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Call{}, s.calls...)
}

// Routes returns the route names of the requests received so far, in order
func (s *Server) Routes() []string {
	routes := []string{}
	for _, call := range s.Calls() {
		routes = append(routes, call.Route)
	}

	return routes
}

// CallsTo returns the requests received by route
func (s *Server) CallsTo(route string) []Call {
	calls := []Call{}
	for _, call := range s.Calls() {
		if call.Route == route {
			calls = append(calls, call)
		}
	}

	return calls
}

// Blob returns the content uploaded to the blob route at container/name
func (s *Server) Blob(container, name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.blobs[container+"/"+name]

	return content, ok
}

// routeHandler handles a recorded request. Called with s.mu held.
type routeHandler func(w http.ResponseWriter, r *http.Request, call Call)

// route records requests and applies Options.FailRoutes before calling handler
func (s *Server) route(name string, handler routeHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := ioutil.ReadAll(r.Body)
		if err != nil {
			s.RespondJSON(w, http.StatusBadRequest, Doc{"code": "BadRequest"})
			return
		}

		call := Call{
			Route:  name,
			Method: r.Method,
			Vars:   mux.Vars(r),
			Body:   body,
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		s.calls = append(s.calls, call)

		if code, ok := s.opts.FailRoutes[name]; ok {
			s.RespondJSON(w, code, Doc{
				"code":    "InjectedFailure",
				"message": fmt.Sprintf("%s failed", name),
			})
			return
		}

		handler(w, r, call)
	})
}

// authed is route for requests which must carry the issued access token
func (s *Server) authed(name string, handler routeHandler) http.Handler {
	return s.route(name, func(w http.ResponseWriter, r *http.Request, call Call) {
		if r.Header.Get("Authorization") != "Bearer "+AccessToken {
			s.RespondJSON(w, http.StatusUnauthorized, Doc{"code": "Unauthorized"})
			return
		}

		handler(w, r, call)
	})
}

// RespondJSON sends an object as a JSON encoded response
func (s *Server) RespondJSON(w http.ResponseWriter, status int, resp interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		panic(fmt.Errorf("failed to encode response as JSON: %s", err.Error()))
	}
}

func (s *Server) token(w http.ResponseWriter, r *http.Request, call Call) {
	token := AccessToken
	if s.opts.EmptyToken {
		token = ""
	}

	s.RespondJSON(w, http.StatusOK, Doc{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}

func (s *Server) getApplication(w http.ResponseWriter, r *http.Request, call Call) {
	app := s.opts.Application
	if app == nil {
		app = Application(call.Vars["appId"], "1152921504621086517", "")
	}

	s.RespondJSON(w, http.StatusOK, app)
}

func (s *Server) createSubmission(w http.ResponseWriter, r *http.Request, call Call) {
	submission := Doc{}
	for key, value := range s.opts.ClonedSubmission {
		submission[key] = value
	}
	if len(submission) == 0 {
		submission = Submission("1152921504621243680", 1)
	}

	if _, ok := submission["fileUploadUrl"]; !ok {
		submission["fileUploadUrl"] = fmt.Sprintf("%s/blob/ingestion/%s?sv=2014-02-14&sig=secret",
			s.URL, submission["id"])
	}

	s.submission = submission

	s.RespondJSON(w, http.StatusCreated, submission)
}

func (s *Server) getSubmission(w http.ResponseWriter, r *http.Request, call Call) {
	if s.submission == nil || s.submission["id"] != call.Vars["submissionId"] {
		s.RespondJSON(w, http.StatusNotFound, Doc{"code": "NotFound"})
		return
	}

	s.RespondJSON(w, http.StatusOK, s.submission)
}

func (s *Server) updateSubmission(w http.ResponseWriter, r *http.Request, call Call) {
	var submission Doc
	if err := json.Unmarshal(call.Body, &submission); err != nil {
		s.RespondJSON(w, http.StatusBadRequest, Doc{
			"code":    "InvalidJson",
			"message": err.Error(),
		})
		return
	}

	if s.opts.UpdateStatusDetails != nil {
		submission["statusDetails"] = s.opts.UpdateStatusDetails
	}

	s.submission = submission

	s.RespondJSON(w, http.StatusOK, submission)
}

func (s *Server) noContent(w http.ResponseWriter, r *http.Request, call Call) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) commit(w http.ResponseWriter, r *http.Request, call Call) {
	s.RespondJSON(w, http.StatusAccepted, Doc{"status": "CommitStarted"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request, call Call) {
	statuses := s.opts.Statuses
	if len(statuses) == 0 {
		statuses = []Doc{Status("Succeeded", nil, nil)}
	}

	i := s.polls
	if i >= len(statuses) {
		i = len(statuses) - 1
	}
	s.polls++

	s.RespondJSON(w, http.StatusOK, statuses[i])
}

func (s *Server) putBlob(w http.ResponseWriter, r *http.Request, call Call) {
	if !strings.EqualFold(r.Header.Get("x-ms-blob-type"), "BlockBlob") {
		s.RespondJSON(w, http.StatusBadRequest, Doc{"code": "MissingBlobType"})
		return
	}

	s.blobs[call.Vars["container"]+"/"+call.Vars["blob"]] = call.Body

	w.Header().Set("ETag", "\"0x8D4D1A4A3E0B0D0\"")
	w.WriteHeader(http.StatusCreated)
}
