package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
)

type recordedRequest struct {
	method string
	path   string
	body   []byte
	header http.Header
	form   map[string]string
	file   string
}

func recordingServer(t *testing.T, status int, response string) (*Client, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.header = r.Header.Clone()

		ct := r.Header.Get("Content-Type")
		if strings.HasPrefix(ct, "multipart/form-data") {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			rec.form = map[string]string{}
			for k, v := range r.MultipartForm.Value {
				rec.form[k] = v[0]
			}
			if files := r.MultipartForm.File["file"]; len(files) > 0 {
				rec.file = files[0].Filename
			}
		} else {
			rec.body, _ = io.ReadAll(r.Body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL, Timeout: 2 * time.Second}, zerolog.Nop()), rec
}

func TestMessagesAPI_MarkAllRead_Route(t *testing.T) {
	c, rec := recordingServer(t, http.StatusOK, `{}`)

	require.NoError(t, c.Messages().MarkAllRead(context.Background(), 42))
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/messages/user/42/read-all", rec.path)
}

func TestMessagesAPI_Send_Body(t *testing.T) {
	c, rec := recordingServer(t, http.StatusCreated, `{"id":10,"content":"bonjour"}`)

	msg, err := c.Messages().Send(context.Background(), ports.SendMessageInput{
		SenderID: 4, ReceiverID: 9, Content: "bonjour",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), msg.ID)
	assert.Equal(t, "/api/messages", rec.path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &body))
	assert.Equal(t, "bonjour", body["content"])
	assert.EqualValues(t, 4, body["senderId"])
	assert.EqualValues(t, 9, body["receiverId"])
}

func TestMessagesAPI_SendWithAttachment_Multipart(t *testing.T) {
	c, rec := recordingServer(t, http.StatusCreated, `{"id":11}`)

	_, err := c.Messages().SendWithAttachment(context.Background(), ports.SendMessageInput{
		SenderID:   4,
		ReceiverID: 9,
		Content:    "voici la photo",
		File:       &domain.Upload{Name: "panne.jpg", Size: 4, Reader: strings.NewReader("data")},
		Location:   &domain.Location{Latitude: 36.8, Longitude: 10.18},
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/messages/upload-file", rec.path)
	assert.Equal(t, "voici la photo", rec.form["content"])
	assert.Equal(t, "4", rec.form["senderId"])
	assert.Equal(t, "36.8", rec.form["latitude"])
	assert.Equal(t, "10.18", rec.form["longitude"])
	assert.Equal(t, "panne.jpg", rec.file)
}

func TestMessagesAPI_SendWithAttachment_LocationOnly(t *testing.T) {
	c, rec := recordingServer(t, http.StatusCreated, `{"id":12}`)

	_, err := c.Messages().SendWithAttachment(context.Background(), ports.SendMessageInput{
		SenderID:   4,
		ReceiverID: 9,
		Location:   &domain.Location{Latitude: 36.8, Longitude: 10.18},
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/messages/upload-file", rec.path)
	assert.True(t, strings.HasPrefix(rec.header.Get("Content-Type"), "multipart/form-data"))
	assert.Equal(t, "36.8", rec.form["latitude"])
	assert.Equal(t, "10.18", rec.form["longitude"])
	assert.Empty(t, rec.file)
}

func TestMessagesAPI_BulkDelete_Body(t *testing.T) {
	c, rec := recordingServer(t, http.StatusOK, `{}`)

	require.NoError(t, c.Messages().BulkDelete(context.Background(), []int64{1, 2, 3}))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/messages/bulk", rec.path)

	var body map[string][]int64
	require.NoError(t, json.Unmarshal(rec.body, &body))
	assert.Equal(t, []int64{1, 2, 3}, body["ids"])
}

func TestMessagesAPI_AdminID(t *testing.T) {
	c, rec := recordingServer(t, http.StatusOK, `9`)

	id, err := c.Messages().AdminID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.Equal(t, "/api/messages/admin-id", rec.path)
}
