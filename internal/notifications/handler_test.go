package notifications

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, notifier *MockNotifier, method, target, body string) (int, map[string]any) {
	t.Helper()

	router := NewRouter(NewHandler(notifier, discardLogger()))
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec.Code, decoded
}

func TestHandler_Notify(t *testing.T) {
	orderID := uuid.NewString()
	body := fmt.Sprintf(`{"orderId":%q,"statusName":"Ready"}`, orderID)

	t.Run("answers 200 with the recipient", func(t *testing.T) {
		notifier := &MockNotifier{}
		notifier.On("Notify", mock.Anything, orderID, "Ready").Return(Delivery{Sent: true, Recipient: "joana@acme.test"}, nil)

		code, resp := serve(t, notifier, http.MethodPost, "/notify", body)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Notification sent to joana@acme.test", resp["message"])
	})

	t.Run("answers 400 for missing fields", func(t *testing.T) {
		notifier := &MockNotifier{}

		code, resp := serve(t, notifier, http.MethodPost, "/notify", `{"orderId":"`+orderID+`"}`)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.NotEmpty(t, resp["error"])
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("answers 400 for a malformed order id", func(t *testing.T) {
		code, _ := serve(t, &MockNotifier{}, http.MethodPost, "/notify", `{"orderId":"42","statusName":"Ready"}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("answers 400 for control characters in the status name", func(t *testing.T) {
		notifier := &MockNotifier{}

		code, resp := serve(t, notifier, http.MethodPost, "/notify",
			fmt.Sprintf(`{"orderId":%q,"statusName":"Ready\r\nBcc: victim@example.com"}`, orderID))

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, resp["error"], "control characters")
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("answers 404 for an unknown order", func(t *testing.T) {
		notifier := &MockNotifier{}
		notifier.On("Notify", mock.Anything, orderID, "Ready").Return(Delivery{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID))

		code, resp := serve(t, notifier, http.MethodPost, "/notify", body)

		assert.Equal(t, http.StatusNotFound, code)
		assert.Contains(t, resp["error"], "order not found")
	})

	t.Run("answers 500 with details when delivery fails", func(t *testing.T) {
		notifier := &MockNotifier{}
		notifier.On("Notify", mock.Anything, orderID, "Ready").Return(Delivery{}, ErrNoRecipient)

		code, resp := serve(t, notifier, http.MethodPost, "/notify", body)

		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, ErrNoRecipient.Error(), resp["details"])
	})
}

func TestHandler_History(t *testing.T) {
	orderID := uuid.NewString()

	t.Run("lists deliveries", func(t *testing.T) {
		notifier := &MockNotifier{}
		notifier.On("History", mock.Anything, orderID).Return([]Delivery{{ID: "d1", OrderID: orderID, Sent: true}}, nil)

		router := NewRouter(NewHandler(notifier, discardLogger()))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications/"+orderID, nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var got []Delivery
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "d1", got[0].ID)
	})

	t.Run("answers 500 when the log is unavailable", func(t *testing.T) {
		notifier := &MockNotifier{}
		notifier.On("History", mock.Anything, orderID).Return(nil, errors.New("table missing"))

		code, _ := serve(t, notifier, http.MethodGet, "/notifications/"+orderID, "")
		assert.Equal(t, http.StatusInternalServerError, code)
	})
}
