package signin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/weareopensource/waos-go/internal/domain/user"
	"github.com/weareopensource/waos-go/internal/providers/preferences"
	"github.com/weareopensource/waos-go/internal/reactor"
	"github.com/weareopensource/waos-go/internal/screens/screentest"
	"github.com/weareopensource/waos-go/internal/shared/failure"
)

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) SignIn(ctx context.Context, email, password string) (user.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(user.Session), args.Error(1)
}

func setup(t *testing.T) (*Reactor, *mockAuth, *preferences.Memory) {
	t.Helper()
	prefs := preferences.NewMemory()
	env, _ := screentest.Env(t, prefs)
	auth := &mockAuth{}
	r := New(env, auth, prefs)
	t.Cleanup(r.Dispose)
	return r, auth, prefs
}

func TestValidateEmail(t *testing.T) {
	r, _, _ := setup(t)

	r.Dispatch(UpdateEmail{"a@b.com"})
	r.Dispatch(ValidateEmail{})
	screentest.Settle(t, r)
	assert.Empty(t, r.CurrentState().Errors)
	assert.Equal(t, "a@b.com", r.CurrentState().User.Email)

	r.Dispatch(UpdateEmail{"not-an-email"})
	r.Dispatch(ValidateEmail{})
	r.Dispatch(ValidateEmail{})
	screentest.Settle(t, r)

	errs := r.CurrentState().Errors
	require.Len(t, errs, 1)
	assert.Equal(t, string(user.Email), errs[0].Title)
	assert.Equal(t, failure.KindValidation, errs[0].Kind)

	r.Dispatch(UpdateEmail{"fixed@b.com"})
	r.Dispatch(ValidateEmail{})
	screentest.Settle(t, r)
	assert.Empty(t, r.CurrentState().Errors)
}

func TestUpdatePasswordClearsPasswordError(t *testing.T) {
	red := &Reducer{}
	state := State{Errors: failure.Errors{{Title: "password", Description: "too short"}}}

	out := reactor.Collect(context.Background(), red.Mutate(UpdatePassword{"secret123"}, state))
	for _, m := range out {
		state = red.Reduce(state, m)
	}

	assert.Equal(t, "secret123", state.User.Password)
	assert.Empty(t, state.Errors)
}

func TestSignInUnauthorized(t *testing.T) {
	r, auth, prefs := setup(t)
	require.NoError(t, prefs.SetLogged(true))

	auth.On("SignIn", mock.Anything, "a@b.com", "wrongpass").
		Return(user.Session{}, failure.Service(401, "Unauthorized", "bad credentials", "error"))

	r.Dispatch(UpdateEmail{"a@b.com"})
	r.Dispatch(UpdatePassword{"wrongpass"})
	r.Dispatch(SignIn{})
	r.Dispatch(SignIn{})
	screentest.Settle(t, r)

	state := r.CurrentState()
	require.NotEmpty(t, state.Errors)
	assert.Equal(t, failure.TitleAuth, state.Errors[0].Title)
	assert.Equal(t, "Wrong Password or Email.", state.Errors[0].Description)
	assert.Len(t, state.Errors, 1)
	assert.False(t, state.IsLogged)
	assert.False(t, prefs.IsLogged())
	auth.AssertExpectations(t)
}

func TestSignInSuccess(t *testing.T) {
	r, auth, prefs := setup(t)

	expires := time.Now().Add(time.Hour).Unix()
	auth.On("SignIn", mock.Anything, "a@b.com", "secret123").
		Return(user.Session{}, errors.New("connection refused")).Once()
	auth.On("SignIn", mock.Anything, "a@b.com", "secret123").
		Return(user.Session{User: user.User{ID: "u1"}, TokenExpiresIn: expires}, nil).Once()

	r.Dispatch(UpdateEmail{"a@b.com"})
	r.Dispatch(UpdatePassword{"secret123"})

	// a transport failure first, then a successful retry clears it
	r.Dispatch(SignIn{})
	screentest.Settle(t, r)
	require.Equal(t, []string{failure.TitleUnknown}, r.CurrentState().Errors.Titles())

	r.Dispatch(SignIn{})
	screentest.Settle(t, r)

	state := r.CurrentState()
	assert.Empty(t, state.Errors)
	assert.True(t, state.IsLogged)
	assert.False(t, state.IsRefreshing)
	assert.True(t, prefs.IsLogged())
	assert.Equal(t, expires, prefs.CookieExpire())
	auth.AssertNumberOfCalls(t, "SignIn", 2)
}

func TestSignInTransportError(t *testing.T) {
	r, auth, prefs := setup(t)
	auth.On("SignIn", mock.Anything, "", "").Return(user.Session{}, errors.New("connection refused"))

	r.Dispatch(SignIn{})
	screentest.Settle(t, r)

	state := r.CurrentState()
	require.Len(t, state.Errors, 1)
	assert.Equal(t, failure.TitleUnknown, state.Errors[0].Title)
	assert.Equal(t, "connection refused", state.Errors[0].Description)
	assert.False(t, prefs.IsLogged())
}

func TestSignInRefreshing(t *testing.T) {
	r, auth, _ := setup(t)
	auth.On("SignIn", mock.Anything, "", "").Return(user.Session{}, nil)

	sub := r.Observe()
	defer sub.Close()
	flags := reactor.Select(sub, func(s State) bool { return s.IsRefreshing })

	r.Dispatch(SignIn{})
	screentest.Settle(t, r)

	assert.Equal(t, []bool{false, true, false}, screentest.Take(t, flags, 3))
	screentest.Quiet(t, flags, 50*time.Millisecond)
}

func TestSignUp(t *testing.T) {
	r, _, _ := setup(t)
	r.Dispatch(SignUp{})
	screentest.Settle(t, r)
	assert.True(t, r.CurrentState().ShowSignUp)
}

func TestSuccessPurgesStaleErrors(t *testing.T) {
	red := &Reducer{}
	state := State{Errors: failure.Errors{
		{Title: "signIn"},
		{Title: failure.TitleSchemaValidation},
		{Title: failure.TitleAuth},
		{Title: failure.TitleUnknown},
		{Title: "lastname"},
	}}

	state = red.Reduce(state, Success{"signIn"})
	assert.Equal(t, []string{"lastname"}, state.Errors.Titles())
}
