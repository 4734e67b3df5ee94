package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolodex/rolodex/internal/client/session"
)

func TestCredentials_ToggleKeepsDrafts(t *testing.T) {
	c := NewCredentials(&fakeAuth{})
	c.SetEmail("a@b.com")

	assert.Equal(t, ModeSignIn, c.Mode())
	assert.Equal(t, ModeSignUp, c.Toggle())
	assert.Equal(t, ModeSignIn, c.Toggle())
	assert.Equal(t, "a@b.com", c.Email())
}

func TestCredentials_SubmitCallsModeOperation(t *testing.T) {
	var called string
	auth := &fakeAuth{
		signIn: func(_ context.Context, email, password string) (*session.Session, error) {
			called = "signin:" + email + ":" + password
			return alice(), nil
		},
		signUp: func(_ context.Context, email, password string) (*session.Session, error) {
			called = "signup:" + email + ":" + password
			return alice(), nil
		},
	}
	c := NewCredentials(auth)
	c.SetEmail("a@b.com")
	c.SetPassword("secret1")

	notice, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Signed in.", notice)
	assert.Equal(t, "signin:a@b.com:secret1", called)

	c.Toggle()
	c.SetPassword("secret2")
	notice, err = c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Account created.", notice)
	assert.Equal(t, "signup:a@b.com:secret2", called)
}

func TestCredentials_FailureIsVerbatimAndClearsBusy(t *testing.T) {
	var busyDuring bool
	var c *Credentials
	auth := &fakeAuth{
		signIn: func(context.Context, string, string) (*session.Session, error) {
			busyDuring = c.Busy()
			return nil, errors.New("Invalid login credentials")
		},
	}
	c = NewCredentials(auth)

	_, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Invalid login credentials", err.Error())
	assert.True(t, busyDuring)
	assert.False(t, c.Busy())
}

func TestCredentials_SuccessDoesNotTouchGate(t *testing.T) {
	auth := &fakeAuth{}
	g := New(auth)
	g.Start(context.Background())

	c := NewCredentials(auth)
	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	// Only the subscription moves the gate.
	assert.Equal(t, ViewCredentials, g.View())
	auth.fire(session.EventSignedIn, alice())
	assert.Equal(t, ViewWorkspace, g.View())
}
