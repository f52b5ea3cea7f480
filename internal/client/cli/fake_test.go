package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"github.com/dmitrijs2005/donatello/internal/client/models"
	"github.com/dmitrijs2005/donatello/internal/client/session"
	"github.com/dmitrijs2005/donatello/internal/logging"
)

type fakeSession struct {
	state  session.State
	userID string
}

func (f *fakeSession) State() session.State { return f.state }
func (f *fakeSession) UserID() string       { return f.userID }

type fakeAuth struct {
	LoginErr    error
	LogoutErr   error
	RegisterErr error
	PingErr     error

	LastUser     string
	LastPass     string
	LastRegister models.RegistrationRequest
	LogoutCalls  int
	onLogin      func()
}

func (f *fakeAuth) Login(_ context.Context, u, p string) error {
	f.LastUser, f.LastPass = u, p
	if f.LoginErr == nil && f.onLogin != nil {
		f.onLogin()
	}
	return f.LoginErr
}
func (f *fakeAuth) Logout(context.Context) error { f.LogoutCalls++; return f.LogoutErr }
func (f *fakeAuth) Register(_ context.Context, in models.RegistrationRequest) (*models.User, error) {
	f.LastRegister = in
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	return &models.User{ID: "1", Username: in.Username}, nil
}
func (f *fakeAuth) IsAuthenticated(context.Context) bool { return f.LoginErr == nil }
func (f *fakeAuth) Ping(context.Context) error           { return f.PingErr }
func (f *fakeAuth) Close(context.Context) error          { return nil }

type fakeProfile struct {
	User      *models.User
	Err       error
	LastIn    models.ProfileUpdate
	LastImage []byte
	URL       string
}

func (f *fakeProfile) Get(context.Context) (*models.User, error) { return f.User, f.Err }
func (f *fakeProfile) Update(_ context.Context, in models.ProfileUpdate) (*models.User, error) {
	f.LastIn = in
	return f.User, f.Err
}
func (f *fakeProfile) UploadAvatar(_ context.Context, image []byte) (string, error) {
	f.LastImage = image
	return "UserAvatars/" + f.User.ID + ".png", f.Err
}
func (f *fakeProfile) AvatarURL(context.Context) (string, error) { return f.URL, f.Err }
func (f *fakeProfile) DeleteAvatar(context.Context) error        { return f.Err }

type fakeCharities struct {
	Items  []models.Charity
	Err    error
	LastID string
	LastIn models.CharityInput
}

func (f *fakeCharities) List(context.Context) ([]models.Charity, error) { return f.Items, f.Err }
func (f *fakeCharities) Get(_ context.Context, id string) (*models.Charity, error) {
	f.LastID = id
	if f.Err != nil {
		return nil, f.Err
	}
	return &models.Charity{ID: id, Title: "Shelter", Description: "Dogs"}, nil
}
func (f *fakeCharities) Create(_ context.Context, in models.CharityInput) (*models.Charity, error) {
	f.LastIn = in
	if f.Err != nil {
		return nil, f.Err
	}
	return &models.Charity{ID: "c-1", Title: in.Title}, nil
}

type fakePosts struct {
	Posts        []models.Post
	DonationList []models.Donation
	Err          error
	LastID       string
	LastAmount   float64
}

func (f *fakePosts) List(context.Context) ([]models.Post, error) { return f.Posts, f.Err }
func (f *fakePosts) Donate(_ context.Context, id string, amount float64) (*models.Donation, error) {
	f.LastID, f.LastAmount = id, amount
	if f.Err != nil {
		return nil, f.Err
	}
	return &models.Donation{ID: "d-1", FundraiseID: id, Amount: amount}, nil
}
func (f *fakePosts) Donations(context.Context) ([]models.Donation, error) {
	return f.DonationList, f.Err
}

type testApp struct {
	*App
	out       *bytes.Buffer
	sess      *fakeSession
	auth      *fakeAuth
	profile   *fakeProfile
	charities *fakeCharities
	posts     *fakePosts
}

// newTestApp builds an App over fakes, feeding lines to its reader.
func newTestApp(lines ...string) *testApp {
	out := &bytes.Buffer{}
	ta := &testApp{
		out:       out,
		sess:      &fakeSession{},
		auth:      &fakeAuth{},
		profile:   &fakeProfile{User: &models.User{ID: "42", Username: "alice"}},
		charities: &fakeCharities{},
		posts:     &fakePosts{},
	}
	ta.App = &App{
		logger:    logging.Nop(),
		session:   ta.sess,
		auth:      ta.auth,
		profile:   ta.profile,
		charities: ta.charities,
		posts:     ta.posts,
		reader:    bufio.NewReader(strings.NewReader(strings.Join(append(lines, ""), "\n"))),
		out:       out,
	}
	return ta
}
