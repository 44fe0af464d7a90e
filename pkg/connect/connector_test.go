package connect_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/digirioh/hub/pkg/connect"

	"gotest.tools/v3/assert"
)

// fakeLibrary hands out a canned authorization code or error instead of
// rendering a consent popup.
type fakeLibrary struct {
	ready bool
	code  string
	fail  *connect.ExchangeError
}

func (lib *fakeLibrary) Ready() bool {
	return lib.ready
}

func (lib *fakeLibrary) WhenReady(ctx context.Context) error {
	if lib.ready {
		return nil
	}
	return connect.ErrLibraryUnavailable
}

func (lib *fakeLibrary) NewCodeClient(config connect.CodeClientConfig) (connect.CodeClient, error) {
	return &fakeCodeClient{library: lib, config: config}, nil
}

type fakeCodeClient struct {
	library *fakeLibrary
	config  connect.CodeClientConfig
}

func (client *fakeCodeClient) RequestCode() {
	go func() {
		if client.library.fail != nil {
			client.config.OnError(client.library.fail)
			return
		}
		client.config.OnCode(client.library.code)
	}()
}

func TestInitClientLibraryUnavailable(t *testing.T) {
	_, err := connect.InitClient(&fakeLibrary{ready: false}, connect.CodeClientConfig{
		OnCode: func(code string) {},
	})

	assert.ErrorIs(t, err, connect.ErrLibraryUnavailable)

	_, err = connect.InitClient(nil, connect.CodeClientConfig{
		OnCode: func(code string) {},
	})

	assert.ErrorIs(t, err, connect.ErrLibraryUnavailable)
}

func TestConnectorFlow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(200)
		w.Write([]byte(`{"success":true,"email":"user@example.com","name":"Test User","accessToken":"access-token"}`))
	}))
	defer server.Close()

	library := &fakeLibrary{ready: true, code: "consent-code"}
	markers := connect.NewMarkerStore(filepath.Join(t.TempDir(), "marker.json"))

	var connected bool

	connector := connect.NewConnector(connect.ConnectorConfig{
		ClientID: "client-id",
		Scopes:   []string{"email"},
		OnConnected: func(result connect.ExchangeResult) {
			connected = true
		},
	}, library, connect.NewClient(server.URL), markers)

	result, err := connector.Connect(context.Background())

	assert.NilError(t, err)
	assert.Equal(t, "user@example.com", result.Email)
	assert.Equal(t, true, connected)

	marker, err := markers.Read()
	assert.NilError(t, err)
	assert.Assert(t, marker != nil)
	assert.Equal(t, "user@example.com", marker.Email)
}

func TestConnectorCancelled(t *testing.T) {
	library := &fakeLibrary{
		ready: true,
		fail: &connect.ExchangeError{
			Kind:    connect.Cancelled,
			Message: "consent dismissed",
		},
	}

	connector := connect.NewConnector(connect.ConnectorConfig{
		ClientID: "client-id",
	}, library, connect.NewClient("http://localhost:0"), nil)

	_, err := connector.Connect(context.Background())

	assert.Assert(t, err != nil)

	exchangeErr, ok := err.(*connect.ExchangeError)
	assert.Assert(t, ok)
	assert.Equal(t, connect.Cancelled, exchangeErr.Kind)
}
