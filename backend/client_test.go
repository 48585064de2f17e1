package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/heritagegraph/dashboard-gateway/backend"
	"github.com/heritagegraph/dashboard-gateway/internal/errors"
	"github.com/heritagegraph/dashboard-gateway/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the backend saw for assertions.
type recordedRequest struct {
	method string
	path   string
	query  string
	auth   string
	accept string
	body   []byte
}

// backendFixture is an httptest backend plus the bridge client under test.
type backendFixture struct {
	client   *backend.Client
	server   *httptest.Server
	requests []recordedRequest

	status int
	reply  string
}

func newBackendFixture(t *testing.T) *backendFixture {
	t.Helper()

	f := &backendFixture{status: http.StatusOK, reply: "{}"}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.requests = append(f.requests, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			accept: r.Header.Get("Accept"),
			body:   body,
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		w.Write([]byte(f.reply))
	}))
	t.Cleanup(f.server.Close)

	f.client = backend.NewClient(f.server.URL, 5*time.Second, zerolog.Nop())
	return f
}

func (f *backendFixture) last(t *testing.T) recordedRequest {
	t.Helper()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func signedInView() *session.View {
	return &session.View{
		User:        session.UserView{Username: "alice"},
		AccessToken: "AT1",
	}
}

func TestPingSendsBearerAndAccept(t *testing.T) {
	f := newBackendFixture(t)

	require.NoError(t, f.client.Ping(context.Background(), "AT1"))

	req := f.last(t)
	assert.Equal(t, http.MethodGet, req.method)
	assert.Equal(t, "/data/api/testme/", req.path)
	assert.Equal(t, "Bearer AT1", req.auth)
	assert.Equal(t, "application/json", req.accept)
}

func TestPingSurfacesServerError(t *testing.T) {
	f := newBackendFixture(t)
	f.status = http.StatusInternalServerError
	f.reply = `{"detail":"boom"}`

	err := f.client.Ping(context.Background(), "AT1")
	require.Error(t, err)

	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}

func TestNoSessionOmitsAuthorizationHeader(t *testing.T) {
	f := newBackendFixture(t)
	f.reply = `{"count":0,"next":null,"previous":null,"results":[]}`

	_, err := f.client.ListLocations(context.Background(), &session.View{}, backend.PageParams{})
	require.NoError(t, err)

	req := f.last(t)
	assert.Empty(t, req.auth, "signed-out calls must not carry an Authorization header")
}

func TestNilViewDoesNotPanic(t *testing.T) {
	f := newBackendFixture(t)
	f.reply = `{"count":0,"next":null,"previous":null,"results":[]}`

	require.NotPanics(t, func() {
		_, err := f.client.ListLocations(context.Background(), nil, backend.PageParams{})
		require.NoError(t, err)
	})
	assert.Empty(t, f.last(t).auth)
}

func TestListLocationsPagination(t *testing.T) {
	f := newBackendFixture(t)
	f.reply = `{"count":42,"next":"http://x/cidoc/locations/?limit=20&offset=20","previous":null,"results":[{"id":1},{"id":2}]}`

	page, err := f.client.ListLocations(context.Background(), signedInView(), backend.PageParams{Limit: 20, Offset: 20})
	require.NoError(t, err)

	req := f.last(t)
	assert.Equal(t, "/cidoc/locations/", req.path)
	assert.Equal(t, "limit=20&offset=20", req.query)
	assert.Equal(t, "Bearer AT1", req.auth)

	assert.Equal(t, 42, page.Count)
	require.NotNil(t, page.Next)
	assert.Nil(t, page.Previous)
	assert.Len(t, page.Results, 2)
}

func TestZeroPageParamsOmitted(t *testing.T) {
	f := newBackendFixture(t)
	f.reply = `{"count":0,"next":null,"previous":null,"results":[]}`

	_, err := f.client.ListEvents(context.Background(), signedInView(), backend.PageParams{})
	require.NoError(t, err)
	assert.Empty(t, f.last(t).query)
}

func TestCreateEntityPayload(t *testing.T) {
	f := newBackendFixture(t)
	f.reply = `{"entity_id":"e1"}`

	created, err := f.client.CreateEntity(context.Background(), signedInView(), backend.EntityInput{
		Name:        "Old Bridge",
		Description: "A stone bridge",
		Category:    "monument",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"entity_id":"e1"}`, string(created))

	req := f.last(t)
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/data/api/cultural-entities/", req.path)
	assert.JSONEq(t, `{"name":"Old Bridge","description":"A stone bridge","category":"monument","form_data":{}}`, string(req.body))
}

func TestEntityInputValidation(t *testing.T) {
	valid := backend.EntityInput{Name: "n", Description: "d", Category: "festival"}
	require.NoError(t, valid.Validate())

	unknown := valid
	unknown.Category = "dance"
	require.ErrorIs(t, unknown.Validate(), errors.ErrUnknownCategory)

	missing := valid
	missing.Name = ""
	require.ErrorIs(t, missing.Validate(), errors.ErrInvalidRequest)
}

func TestUpdateEventSendsPut(t *testing.T) {
	f := newBackendFixture(t)
	f.reply = `{"id":"7"}`

	_, err := f.client.UpdateEvent(context.Background(), signedInView(), "7", json.RawMessage(`{"name":"Festival"}`))
	require.NoError(t, err)

	req := f.last(t)
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/cidoc/events/7/", req.path)
	assert.JSONEq(t, `{"name":"Festival"}`, string(req.body))
}

func TestUnreachableBackend(t *testing.T) {
	client := backend.NewClient("http://127.0.0.1:1", time.Second, zerolog.Nop())

	err := client.Ping(context.Background(), "AT1")
	require.ErrorIs(t, err, errors.ErrBackendUnavailable)
}
