package practicum

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestHomeworkStatuses_Success(t *testing.T) {
	var gotAuth, gotFromDate string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotFromDate = r.URL.Query().Get("from_date")
		fmt.Fprint(w, `{"homeworks":[{"homework_name":"hw1","status":"approved"}],"current_date":1700000000}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token", time.Second, quietLogger())
	envelope, err := client.HomeworkStatuses(context.Background(), 123)

	require.NoError(t, err)
	assert.Equal(t, "OAuth secret-token", gotAuth)
	assert.Equal(t, "123", gotFromDate)
	assert.Equal(t, int64(1700000000), envelope.CurrentDate)
	assert.Len(t, envelope.Homeworks, 1)
}

func TestHomeworkStatuses_Non200IsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "t", time.Second, quietLogger())
	_, err := client.HomeworkStatuses(context.Background(), 0)

	require.ErrorIs(t, err, homework.ErrTransport)
	assert.Contains(t, err.Error(), "502")
}

func TestHomeworkStatuses_ConnectionFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := NewClient(srv.URL, "t", time.Second, quietLogger())
	_, err := client.HomeworkStatuses(context.Background(), 0)

	assert.ErrorIs(t, err, homework.ErrTransport)
}

func TestHomeworkStatuses_MalformedBodyIsSchemaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html>maintenance</html>`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "t", time.Second, quietLogger())
	_, err := client.HomeworkStatuses(context.Background(), 0)

	assert.ErrorIs(t, err, homework.ErrSchema)
}
