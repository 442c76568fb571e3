package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/pkg/apiclient"
)

func TestClient_Tasks(t *testing.T) {
	var seenAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/tasks":
			_ = json.NewEncoder(w).Encode([]apiclient.Task{{ID: "t1", Title: "Buy milk"}})
		case r.Method == http.MethodPost && r.URL.Path == "/tasks":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			_ = json.NewEncoder(w).Encode(apiclient.Task{ID: "t2", Title: body["title"]})
		case r.Method == http.MethodPut && r.URL.Path == "/tasks/t1":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			_ = json.NewEncoder(w).Encode(apiclient.Task{ID: "t1", Title: body["title"].(string), Completed: body["completed"].(bool)})
		case r.Method == http.MethodDelete && r.URL.Path == "/tasks/t1":
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "task deleted"})
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "task not found"})
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	client := apiclient.New(srv.URL, "token-123")

	t.Run("list sends bearer token", func(t *testing.T) {
		tasks, err := client.ListTasks(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "Buy milk", tasks[0].Title)
		assert.Equal(t, "Bearer token-123", seenAuth)
	})

	t.Run("create", func(t *testing.T) {
		task, err := client.CreateTask(ctx, "Ship it")
		require.NoError(t, err)
		assert.Equal(t, "Ship it", task.Title)
	})

	t.Run("update", func(t *testing.T) {
		task, err := client.UpdateTask(ctx, "t1", "Buy milk", true)
		require.NoError(t, err)
		assert.True(t, task.Completed)
	})

	t.Run("delete", func(t *testing.T) {
		assert.NoError(t, client.DeleteTask(ctx, "t1"))
	})

	t.Run("api error carries status and message", func(t *testing.T) {
		err := client.DeleteTask(ctx, "missing")
		var apiErr *apiclient.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "task not found", apiErr.Message)
	})
}

func TestClient_Profile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(apiclient.Profile{DisplayName: "Ada"})
		case http.MethodPut:
			var patch apiclient.ProfilePatch
			_ = json.NewDecoder(r.Body).Decode(&patch)
			p := apiclient.Profile{DisplayName: "Ada"}
			if patch.Bio != nil {
				p.Bio = *patch.Bio
			}
			if patch.DisplayName != nil {
				t.Error("displayName should be omitted from the patch")
			}
			_ = json.NewEncoder(w).Encode(p)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	client := apiclient.New(srv.URL, "token-123")

	profile, err := client.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.DisplayName)

	bio := "hello"
	updated, err := client.UpdateProfile(ctx, apiclient.ProfilePatch{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.Bio)
}
