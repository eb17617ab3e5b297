package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/octozek/internal/form"
	"github.com/Simplici0/octozek/internal/order"
)

var _ form.Submitter = (*Client)(nil)

func payload() order.Payload {
	return order.Payload{
		Width:   order.Size{Feet: "4", Inches: "0"},
		Prices:  order.Prices{Total: "$315"},
		Contact: order.Contact{Name: "Ada", Email: "ada@example.com"},
		Inspo:   []order.Text{"/imgs/rock-1.png"},
	}
}

func serve(t *testing.T, status int, body string, seen *map[string]any) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL, nil)
}

func TestSubmitOrder_Sent(t *testing.T) {
	var seen map[string]any
	c := serve(t, http.StatusOK, `{"ok":true,"sent":true,"messageId":"msg_1","resendError":null}`, &seen)

	resp, err := c.SubmitOrder(context.Background(), payload())
	require.NoError(t, err)

	require.NotNil(t, resp.MessageID)
	assert.Equal(t, "msg_1", *resp.MessageID)
	assert.Equal(t, map[string]any{"name": "Ada", "email": "ada@example.com", "addr": "", "city": "", "state": "", "zip": "", "notes": ""}, seen["contact"])
	assert.Equal(t, []any{"/imgs/rock-1.png"}, seen["inspo"])
}

func TestSubmitOrder_NotSentIsAnError(t *testing.T) {
	c := serve(t, http.StatusOK, `{"ok":true,"sent":false,"messageId":null,"resendError":{"statusCode":403,"name":"validation_error","message":"nope"}}`, nil)

	_, err := c.SubmitOrder(context.Background(), payload())

	var se *SubmitError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusOK, se.Status)
	assert.Contains(t, se.Error(), `Resend: {"statusCode":403,"name":"validation_error","message":"nope"}`)
}

func TestSubmitOrder_DryModeIsAnError(t *testing.T) {
	c := serve(t, http.StatusOK, `{"ok":true,"sent":false,"messageId":null,"resendError":null}`, nil)

	_, err := c.SubmitOrder(context.Background(), payload())

	var se *SubmitError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Sorry, the email didn't send.\nStatus: 200", se.Error())
}

func TestSubmitOrder_BadRequest(t *testing.T) {
	c := serve(t, http.StatusBadRequest, `{"ok":false,"error":"Missing name or email."}`, nil)

	err := c.Submit(context.Background(), payload())

	var se *SubmitError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Contains(t, se.Error(), "Missing name or email.")
}

func TestSubmitOrder_NonJSONBody(t *testing.T) {
	c := serve(t, http.StatusBadGateway, `<html>bad gateway</html>`, nil)

	_, err := c.SubmitOrder(context.Background(), payload())

	var se *SubmitError
	require.True(t, errors.As(err, &se))
	assert.Nil(t, se.Response)
	assert.Equal(t, http.StatusBadGateway, se.Status)
}

func TestSubmitOrder_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).SubmitOrder(context.Background(), payload())

	var se *SubmitError
	require.True(t, errors.As(err, &se))
	assert.Error(t, se.Unwrap())
	assert.Equal(t, "Network error. Please try again later.", se.Error())
}
