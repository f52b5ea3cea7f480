package services

import (
	"context"

	"github.com/dmitrijs2005/donatello/internal/client/client"
	"github.com/dmitrijs2005/donatello/internal/client/models"
	"github.com/dmitrijs2005/donatello/internal/client/session"
)

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	// outputs preset
	LoginErr    error
	LogoutErr   error
	MeRet       *models.User
	MeErr       error
	PingErr     error
	RegisterRet *models.User
	RegisterErr error
	UserRet     *models.User
	UserErr     error
	UpdateErr   error
	Charities   []models.Charity
	CharityRet  *models.Charity
	CharityErr  error
	Posts       []models.Post
	DonationRet *models.Donation
	DonationErr error

	// inputs captured
	Calls          []string
	LastLoginUser  string
	LastLoginPass  string
	LastRegister   models.RegistrationRequest
	LastUserID     string
	LastUpdate     models.ProfileUpdate
	LastCharityID  string
	LastCharityIn  models.CharityInput
	LastDonationIn models.DonationInput
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) record(name string) { f.Calls = append(f.Calls, name) }

func (f *fakeClient) Close() error { f.record("Close"); return nil }

func (f *fakeClient) Do(context.Context, *client.Request) (*client.Envelope, error) {
	f.record("Do")
	return &client.Envelope{}, nil
}

func (f *fakeClient) Login(_ context.Context, username, password string) error {
	f.record("Login")
	f.LastLoginUser, f.LastLoginPass = username, password
	return f.LoginErr
}

func (f *fakeClient) Refresh(context.Context) error { f.record("Refresh"); return nil }

func (f *fakeClient) Logout(context.Context) error { f.record("Logout"); return f.LogoutErr }

func (f *fakeClient) Me(context.Context) (*models.User, error) {
	f.record("Me")
	return f.MeRet, f.MeErr
}

func (f *fakeClient) Ping(context.Context) error { f.record("Ping"); return f.PingErr }

func (f *fakeClient) Register(_ context.Context, in models.RegistrationRequest) (*models.User, error) {
	f.record("Register")
	f.LastRegister = in
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) GetUser(_ context.Context, id string) (*models.User, error) {
	f.record("GetUser")
	f.LastUserID = id
	return f.UserRet, f.UserErr
}

func (f *fakeClient) UpdateUser(_ context.Context, id string, in models.ProfileUpdate) (*models.User, error) {
	f.record("UpdateUser")
	f.LastUserID, f.LastUpdate = id, in
	return f.UserRet, f.UpdateErr
}

func (f *fakeClient) ListCharities(context.Context) ([]models.Charity, error) {
	f.record("ListCharities")
	return f.Charities, f.CharityErr
}

func (f *fakeClient) GetCharity(_ context.Context, id string) (*models.Charity, error) {
	f.record("GetCharity")
	f.LastCharityID = id
	return f.CharityRet, f.CharityErr
}

func (f *fakeClient) CreateCharity(_ context.Context, in models.CharityInput) (*models.Charity, error) {
	f.record("CreateCharity")
	f.LastCharityIn = in
	return f.CharityRet, f.CharityErr
}

func (f *fakeClient) ListPosts(context.Context) ([]models.Post, error) {
	f.record("ListPosts")
	return f.Posts, nil
}

func (f *fakeClient) Donate(_ context.Context, in models.DonationInput) (*models.Donation, error) {
	f.record("Donate")
	f.LastDonationIn = in
	return f.DonationRet, f.DonationErr
}

func (f *fakeClient) ListDonations(context.Context) ([]models.Donation, error) {
	f.record("ListDonations")
	return nil, nil
}

// fakeSession implements SessionView.
type fakeSession struct {
	state session.State
	id    string
}

func (s fakeSession) State() session.State { return s.state }
func (s fakeSession) UserID() string       { return s.id }

// staticUser is a logged-in session for id, or an anonymous one for "".
func staticUser(id string) fakeSession {
	if id == "" {
		return fakeSession{state: session.Anonymous}
	}
	return fakeSession{state: session.Authenticated, id: id}
}

// opaqueSession is logged in with a token that does not name the user.
func opaqueSession() fakeSession {
	return fakeSession{state: session.Authenticated}
}

// fakeAvatars implements avatar.Store.
type fakeAvatars struct {
	lastUserID string
	lastImage  []byte
	url        string
	err        error
	deleted    bool
}

func (f *fakeAvatars) Upload(_ context.Context, userID string, image []byte) (string, error) {
	f.lastUserID, f.lastImage = userID, image
	if f.err != nil {
		return "", f.err
	}
	return "UserAvatars/" + userID + ".png", nil
}

func (f *fakeAvatars) URL(_ context.Context, userID string) (string, error) {
	f.lastUserID = userID
	return f.url, f.err
}

func (f *fakeAvatars) Delete(_ context.Context, userID string) error {
	f.lastUserID = userID
	f.deleted = true
	return f.err
}
