package hfinference

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shutterclone/photo-catalog/log"
)

func TestMain(m *testing.M) {
	if err := log.Initialize("", false); err != nil {
		panic(fmt.Errorf("fail to initialize logger with error: %s", err.Error()))
	}
	os.Exit(m.Run())
}

func TestClassifyRankedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"label":"Seashore","score":0.82},{"label":"Sandbar","score":0.11}]`))
	}))
	defer server.Close()

	client := New(server.URL, "test-token", time.Second)

	labels, err := client.Classify(context.Background(), []byte("fake image"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"seashore", "sandbar"}, labels)
}

func TestClassifyWrappedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[[{"label":"Tabby","score":0.93}]]`))
	}))
	defer server.Close()

	client := New(server.URL, "", time.Second)

	labels, err := client.Classify(context.Background(), []byte("fake image"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"tabby"}, labels)
}

func TestClassifyErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"model is loading"}`))
	}))
	defer server.Close()

	client := New(server.URL, "", time.Second)

	labels, err := client.Classify(context.Background(), []byte("fake image"))
	assert.Error(t, err)
	assert.Nil(t, labels)
	assert.Contains(t, err.Error(), "503")
}

func TestClassifyUnexpectedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"generated_text":"a photo of a beach"}`))
	}))
	defer server.Close()

	client := New(server.URL, "", time.Second)

	_, err := client.Classify(context.Background(), []byte("fake image"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected inference response shape")
}

func TestParseLabelsSkipsEmptyLabels(t *testing.T) {
	labels, err := parseLabels([]byte(`[{"label":"Beach","score":0.8},{"label":"","score":0.1}]`))
	assert.NoError(t, err)
	assert.Equal(t, []string{"beach"}, labels)
}
