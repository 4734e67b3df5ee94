package gate

import (
	"context"
	"sync"
)

// Mode selects which auth operation Submit performs.
type Mode int

const (
	ModeSignIn Mode = iota
	ModeSignUp
)

func (m Mode) String() string {
	if m == ModeSignUp {
		return "sign up"
	}
	return "sign in"
}

// Credentials is the credential-entry flow: a mode toggle and the draft
// email and password. It never decides the signed-in state itself; a
// successful Submit reaches the Gate through its subscription.
type Credentials struct {
	auth Authenticator

	mu       sync.Mutex
	mode     Mode
	email    string
	password string
	busy     bool
}

// NewCredentials creates a Credentials in sign-in mode.
func NewCredentials(auth Authenticator) *Credentials {
	return &Credentials{auth: auth}
}

func (c *Credentials) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Toggle switches between sign-in and sign-up. Drafts are kept.
func (c *Credentials) Toggle() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeSignIn {
		c.mode = ModeSignUp
	} else {
		c.mode = ModeSignIn
	}
	return c.mode
}

func (c *Credentials) SetEmail(v string) {
	c.mu.Lock()
	c.email = v
	c.mu.Unlock()
}

func (c *Credentials) SetPassword(v string) {
	c.mu.Lock()
	c.password = v
	c.mu.Unlock()
}

func (c *Credentials) Email() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.email
}

// Busy reports whether a Submit is in flight.
func (c *Credentials) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Submit calls SignIn or SignUp with the drafts. On failure the
// collaborator's error is returned unchanged so its message can be shown
// verbatim. On success it returns a notice for the user.
func (c *Credentials) Submit(ctx context.Context) (string, error) {
	c.mu.Lock()
	mode, email, password := c.mode, c.email, c.password
	c.busy = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	if mode == ModeSignUp {
		if _, err := c.auth.SignUp(ctx, email, password); err != nil {
			return "", err
		}
		c.clearPassword()
		return "Account created.", nil
	}
	if _, err := c.auth.SignIn(ctx, email, password); err != nil {
		return "", err
	}
	c.clearPassword()
	return "Signed in.", nil
}

func (c *Credentials) clearPassword() {
	c.mu.Lock()
	c.password = ""
	c.mu.Unlock()
}
