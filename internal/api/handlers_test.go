package api

import (
	"net/http"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sajjad-MoBe/slotstore/internal/deployment"
	"github.com/sajjad-MoBe/slotstore/internal/storage"
)

type mockDeployment struct {
	mock.Mock
}

func (m *mockDeployment) Kind() deployment.Kind {
	return deployment.KindName
}

func (m *mockDeployment) Validate(field *string) error {
	args := m.Called(field)
	return args.Error(0)
}

func (m *mockDeployment) Save(field *string) string {
	args := m.Called(field)
	return args.String(0)
}

func (m *mockDeployment) Read() string {
	args := m.Called()
	return args.String(0)
}

func setupMockServer(t *testing.T) (*Server, *mockDeployment) {
	t.Helper()

	dep := new(mockDeployment)
	srv, err := NewServer(logr.Discard(), ServerConfig{}, dep, storage.NewSlot(), nil, nil)
	require.NoError(t, err)
	return srv, dep
}

func TestSaveValue(t *testing.T) {
	isNil := mock.MatchedBy(func(field *string) bool { return field == nil })
	isAnn := mock.MatchedBy(func(field *string) bool { return field != nil && *field == "Ann" })

	tests := []struct {
		name     string
		body     string
		matcher  interface{}
		response string
	}{
		{"present", `{"name": "Ann"}`, isAnn, "Saved: Ann"},
		{"absent", `{"other": "Ann"}`, isNil, "Saved: None"},
		{"null", `{"name": null}`, isNil, "Saved: None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, dep := setupMockServer(t)
			dep.On("Validate", tt.matcher).Return(nil).Once()
			dep.On("Save", tt.matcher).Return(tt.response).Once()

			w := do(t, srv, http.MethodPost, "/post", tt.body)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, map[string]interface{}{"message": tt.response}, decode(t, w))
			dep.AssertExpectations(t)
		})
	}
}

func TestReadValue(t *testing.T) {
	srv, dep := setupMockServer(t)
	dep.On("Read").Return("Ann").Twice()

	for i := 0; i < 2; i++ {
		w := do(t, srv, http.MethodGet, "/get", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]interface{}{"name": "Ann"}, decode(t, w))
	}
	dep.AssertExpectations(t)
}

func TestSaveValuePanicIsRecovered(t *testing.T) {
	srv, dep := setupMockServer(t)
	dep.On("Validate", mock.Anything).Return(nil)
	dep.On("Save", mock.Anything).Run(func(mock.Arguments) { panic("slot exploded") })

	w := do(t, srv, http.MethodPost, "/post", `{"name": "Ann"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	response := decode(t, w)
	assert.Equal(t, "INTERNAL", response["error"].(map[string]interface{})["type"])
}
