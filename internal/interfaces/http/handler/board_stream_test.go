package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/grafica/backend/internal/infrastructure/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBoardStreamHandler(t *testing.T) {
	t.Run("subscribes with the resolved scope", func(t *testing.T) {
		streamer := new(mockStreamer)
		streamer.On("Serve", mock.Anything, mock.Anything, testTenantID, testUserID).Return(nil).Once()
		r := scopedEngine()
		r.GET("/ws/board", NewBoardStreamHandler(streamer).Stream)

		doRequest(r, http.MethodGet, "/ws/board", nil)

		streamer.AssertExpectations(t)
	})

	t.Run("hub stopped is only logged", func(t *testing.T) {
		streamer := new(mockStreamer)
		streamer.On("Serve", mock.Anything, mock.Anything, testTenantID, testUserID).Return(realtime.ErrHubStopped).Once()
		r := scopedEngine()
		r.GET("/ws/board", NewBoardStreamHandler(streamer).Stream)

		w := doRequest(r, http.MethodGet, "/ws/board", nil)

		assert.Empty(t, w.Body.String())
		streamer.AssertExpectations(t)
	})

	t.Run("no active tenant", func(t *testing.T) {
		streamer := new(mockStreamer)
		r := gin.New()
		r.Use(withIdentity(testUserID, nil))
		r.GET("/ws/board", NewBoardStreamHandler(streamer).Stream)

		w := doRequest(r, http.MethodGet, "/ws/board", nil)

		assert.Equal(t, http.StatusPreconditionFailed, w.Code)
		streamer.AssertNotCalled(t, "Serve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
