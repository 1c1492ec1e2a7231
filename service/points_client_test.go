package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsClientReduce(t *testing.T) {
	var gotPath, gotAmount string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAmount = r.URL.Query().Get("amount")
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewPointsClient(srv.URL).Reduce(context.Background(), "user-1", 5000)

	require.NoError(t, err)
	assert.Equal(t, "/api/points/user-1/reduce", gotPath)
	assert.Equal(t, "5000", gotAmount)
}

func TestPointsClientAdd(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewPointsClient(srv.URL).Add(context.Background(), "user-1", 5000)

	require.NoError(t, err)
	assert.Equal(t, "/api/points/user-1/add", gotPath)
}

func TestPointsClientReduce_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("포인트가 부족합니다. 보유: 1000, 필요: 5000"))
	}))
	defer srv.Close()

	err := NewPointsClient(srv.URL).Reduce(context.Background(), "user-1", 5000)

	var pointsErr *PointsError
	require.ErrorAs(t, err, &pointsErr)
	assert.Equal(t, http.StatusBadRequest, pointsErr.StatusCode)
	assert.Equal(t, "포인트가 부족합니다. 보유: 1000, 필요: 5000", pointsErr.Message)
}

func TestPointsClientReduce_JSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "사용자를 찾을 수 없습니다."}`))
	}))
	defer srv.Close()

	err := NewPointsClient(srv.URL).Reduce(context.Background(), "nobody", 5000)

	var pointsErr *PointsError
	require.ErrorAs(t, err, &pointsErr)
	assert.Equal(t, "사용자를 찾을 수 없습니다.", pointsErr.Message)
}

func TestPointsClientReduce_EmptyErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewPointsClient(srv.URL).Reduce(context.Background(), "user-1", 5000)

	var pointsErr *PointsError
	require.ErrorAs(t, err, &pointsErr)
	assert.Equal(t, "point service returned status 500", pointsErr.Error())
}

func TestPointsClientReduce_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := NewPointsClient(srv.URL).Reduce(context.Background(), "user-1", 5000)

	require.Error(t, err)
	var pointsErr *PointsError
	assert.False(t, errors.As(err, &pointsErr))
}
