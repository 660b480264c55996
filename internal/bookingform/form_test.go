package bookingform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"showroom_backend/internal/booking/transport"
	"showroom_backend/platform/httpkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSubmitter struct {
	mu      sync.Mutex
	calls   []transport.BookingRequest
	result  httpkit.Result
	err     error
	release chan struct{} // when set, Submit blocks until closed
	started chan struct{}
}

func (s *stubSubmitter) Submit(ctx context.Context, req transport.BookingRequest) (httpkit.Result, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()

	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return httpkit.Result{}, ctx.Err()
		}
	}
	return s.result, s.err
}

func (s *stubSubmitter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func fillAda(t *testing.T, f *Form) {
	t.Helper()
	for field, value := range map[string]string{
		FieldFirstName: "Ada",
		FieldLastName:  "Lovelace",
		FieldEmail:     "ada@example.com",
		FieldPhone:     "555-0100",
		FieldModel:     "ElectricDrive X - Premium SUV",
		FieldMessage:   "Interested in range",
	} {
		require.NoError(t, f.Set(field, value))
	}
}

func TestNew_Defaults(t *testing.T) {
	snap := New(&stubSubmitter{}).Snapshot()

	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.False(t, snap.SubmitDisabled)
	assert.Equal(t, "ElectricDrive S - Luxury Sedan", snap.Fields.Model)
	assert.Empty(t, snap.Fields.FirstName)
}

func TestSet_UnknownField(t *testing.T) {
	err := New(&stubSubmitter{}).Set("middleName", "Augusta")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSubmit_AdaSucceeds(t *testing.T) {
	sub := &stubSubmitter{result: httpkit.Result{Success: true}}
	f := New(sub)
	fillAda(t, f)

	require.NoError(t, f.Submit(context.Background()))

	require.Equal(t, 1, sub.callCount())
	assert.Equal(t, "Ada", sub.calls[0].FirstName)
	assert.Equal(t, "ElectricDrive X - Premium SUV", sub.calls[0].Model)

	snap := f.Snapshot()
	assert.Equal(t, PhaseSucceeded, snap.Phase)
	assert.Equal(t, "Thank you, Ada! Your test drive request has been sent. We'll be in touch shortly.", snap.Status)
	assert.Contains(t, snap.Status, "Ada")
	assert.Equal(t, transport.BookingRequest{Model: "ElectricDrive S - Luxury Sedan"}, snap.Fields)
	assert.False(t, snap.SubmitDisabled)
}

func TestSubmit_ServerFailureKeepsFields(t *testing.T) {
	sub := &stubSubmitter{result: httpkit.Result{Success: false, Error: "Email failed to send"}}
	f := New(sub)
	fillAda(t, f)
	before := f.Snapshot().Fields

	err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitFailed)

	snap := f.Snapshot()
	assert.Equal(t, PhaseFailed, snap.Phase)
	assert.Equal(t, "Sorry, something went wrong. Please try again later.", snap.Status)
	assert.Equal(t, before, snap.Fields)
}

func TestSubmit_TransportErrorLooksLikeFailure(t *testing.T) {
	cause := errors.New("connection refused")
	sub := &stubSubmitter{err: cause}
	f := New(sub)
	fillAda(t, f)

	err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitFailed)
	assert.ErrorIs(t, err, cause)

	snap := f.Snapshot()
	assert.Equal(t, PhaseFailed, snap.Phase)
	assert.Equal(t, failureMessage, snap.Status)
	assert.Equal(t, "Ada", snap.Fields.FirstName)
}

func TestSubmit_ValidationBlocksRequest(t *testing.T) {
	sub := &stubSubmitter{result: httpkit.Result{Success: true}}
	f := New(sub)
	require.NoError(t, f.Set(FieldFirstName, "Ada"))
	require.NoError(t, f.Set(FieldEmail, "ada.example.com"))

	err := f.Submit(context.Background())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"lastName", "email", "phone"}, verr.Fields)
	assert.Zero(t, sub.callCount())
	assert.Equal(t, PhaseIdle, f.Snapshot().Phase)
}

func TestSubmit_EmptyMessageAllowed(t *testing.T) {
	sub := &stubSubmitter{result: httpkit.Result{Success: true}}
	f := New(sub)
	fillAda(t, f)
	require.NoError(t, f.Set(FieldMessage, ""))

	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, "", sub.calls[0].Message)
}

func TestSubmit_DisabledWhileInFlight(t *testing.T) {
	sub := &stubSubmitter{
		result:  httpkit.Result{Success: true},
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	f := New(sub)
	fillAda(t, f)

	var mu sync.Mutex
	var disabled []bool
	f.OnChange(func(s Snapshot) {
		mu.Lock()
		disabled = append(disabled, s.SubmitDisabled)
		mu.Unlock()
	})

	done := make(chan error, 1)
	go func() { done <- f.Submit(context.Background()) }()

	<-sub.started
	assert.True(t, f.SubmitDisabled())
	assert.Equal(t, PhaseSending, f.Snapshot().Phase)
	assert.ErrorIs(t, f.Submit(context.Background()), ErrSubmitInFlight)

	close(sub.release)
	require.NoError(t, <-done)

	assert.False(t, f.SubmitDisabled())
	assert.Equal(t, 1, sub.callCount())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, false}, disabled)
}

func TestSubmit_ReEnabledOnceAfterFailure(t *testing.T) {
	for name, sub := range map[string]*stubSubmitter{
		"server failure":  {result: httpkit.Result{Success: false, Error: "Email failed to send"}},
		"transport error": {err: errors.New("connection reset by peer")},
	} {
		t.Run(name, func(t *testing.T) {
			sub.release = make(chan struct{})
			sub.started = make(chan struct{})
			f := New(sub)
			fillAda(t, f)

			var mu sync.Mutex
			var disabled []bool
			f.OnChange(func(s Snapshot) {
				mu.Lock()
				disabled = append(disabled, s.SubmitDisabled)
				mu.Unlock()
			})

			done := make(chan error, 1)
			go func() { done <- f.Submit(context.Background()) }()

			<-sub.started
			assert.True(t, f.SubmitDisabled())
			assert.ErrorIs(t, f.Submit(context.Background()), ErrSubmitInFlight)

			close(sub.release)
			assert.ErrorIs(t, <-done, ErrSubmitFailed)

			assert.False(t, f.SubmitDisabled())
			assert.Equal(t, PhaseFailed, f.Snapshot().Phase)
			assert.Equal(t, 1, sub.callCount())

			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, []bool{true, false}, disabled)
		})
	}
}

func TestSubmit_RetryAfterFailure(t *testing.T) {
	sub := &stubSubmitter{err: errors.New("offline")}
	f := New(sub)
	fillAda(t, f)

	require.Error(t, f.Submit(context.Background()))
	assert.False(t, f.SubmitDisabled())

	sub.err = nil
	sub.result = httpkit.Result{Success: true}
	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, 2, sub.callCount())
	assert.Equal(t, PhaseSucceeded, f.Snapshot().Phase)
}

func TestClient_PostsJSON(t *testing.T) {
	var got transport.BookingRequest
	var method, path, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, contentType = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	f := New(NewClient(srv.URL + "/"))
	fillAda(t, f)
	require.NoError(t, f.Submit(context.Background()))

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/api/send-email", path)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "Interested in range", got.Message)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"Email failed to send"}`))
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).Submit(context.Background(), transport.BookingRequest{FirstName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, httpkit.Result{Success: false, Error: "Email failed to send"}, res)
}

func TestClient_NonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	f := New(NewClient(srv.URL))
	fillAda(t, f)

	err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmitFailed)
	assert.Contains(t, err.Error(), "status 502")
	assert.Equal(t, PhaseFailed, f.Snapshot().Phase)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Submit(context.Background(), transport.BookingRequest{})
	assert.Error(t, err)
}
