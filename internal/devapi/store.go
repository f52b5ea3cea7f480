package devapi

import (
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/donatello/internal/client/models"
	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
)

const (
	tableUsers       = "users"
	tableCharities   = "charities"
	tableFundraisers = "fundraisers"
	tableDonations   = "donations"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrUsernameTaken  = errors.New("username taken")
	ErrEmailTaken     = errors.New("email taken")
	ErrUnknownCharity = errors.New("unknown charity")
)

func idIndex() *memdb.IndexSchema {
	return &memdb.IndexSchema{Name: "id", Unique: true, Indexer: &memdb.StringFieldIndex{Field: "ID"}}
}

var storeSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tableUsers: {
			Name: tableUsers,
			Indexes: map[string]*memdb.IndexSchema{
				"id":       idIndex(),
				"username": {Name: "username", Unique: true, AllowMissing: true, Indexer: &memdb.StringFieldIndex{Field: "Username", Lowercase: true}},
				"email":    {Name: "email", Unique: true, AllowMissing: true, Indexer: &memdb.StringFieldIndex{Field: "Email", Lowercase: true}},
			},
		},
		tableCharities: {
			Name:    tableCharities,
			Indexes: map[string]*memdb.IndexSchema{"id": idIndex()},
		},
		tableFundraisers: {
			Name:    tableFundraisers,
			Indexes: map[string]*memdb.IndexSchema{"id": idIndex()},
		},
		tableDonations: {
			Name: tableDonations,
			Indexes: map[string]*memdb.IndexSchema{
				"id":   idIndex(),
				"user": {Name: "user", Indexer: &memdb.StringFieldIndex{Field: "UserID"}},
			},
		},
	},
}

type userRecord struct {
	models.User
	PasswordHash []byte
}

// Store keeps every entity in a single go-memdb database. Records are
// treated as immutable once inserted; updates insert a modified copy.
type Store struct {
	db  *memdb.MemDB
	now func() time.Time
}

func NewStore(now func() time.Time) (*Store, error) {
	db, err := memdb.NewMemDB(storeSchema)
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	return &Store{db: db, now: now}, nil
}

// CreateUser inserts u with a new ID. Username and email are unique,
// case-insensitively.
func (s *Store) CreateUser(u models.User, passwordHash []byte) (models.User, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()

	if err := checkUnique(txn, "", u.Username, u.Email); err != nil {
		return models.User{}, err
	}

	u.ID = uuid.NewString()
	if err := txn.Insert(tableUsers, &userRecord{User: u, PasswordHash: passwordHash}); err != nil {
		return models.User{}, err
	}
	txn.Commit()
	return u, nil
}

func checkUnique(txn *memdb.Txn, selfID, username, email string) error {
	if username != "" {
		obj, err := txn.First(tableUsers, "username", username)
		if err != nil {
			return err
		}
		if obj != nil && obj.(*userRecord).ID != selfID {
			return ErrUsernameTaken
		}
	}
	if email != "" {
		obj, err := txn.First(tableUsers, "email", email)
		if err != nil {
			return err
		}
		if obj != nil && obj.(*userRecord).ID != selfID {
			return ErrEmailTaken
		}
	}
	return nil
}

func (s *Store) user(index, value string) (*userRecord, error) {
	txn := s.db.Txn(false)
	obj, err := txn.First(tableUsers, index, value)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, ErrNotFound
	}
	return obj.(*userRecord), nil
}

func (s *Store) UserByID(id string) (*userRecord, error) {
	return s.user("id", id)
}

func (s *Store) UserByUsername(username string) (*userRecord, error) {
	return s.user("username", strings.TrimSpace(username))
}

// UpdateUser applies the non-empty fields of in. passwordHash replaces the
// stored hash when non-nil.
func (s *Store) UpdateUser(id string, in models.ProfileUpdate, passwordHash []byte) (models.User, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First(tableUsers, "id", id)
	if err != nil {
		return models.User{}, err
	}
	if obj == nil {
		return models.User{}, ErrNotFound
	}
	if err := checkUnique(txn, id, in.Username, in.Email); err != nil {
		return models.User{}, err
	}

	rec := *obj.(*userRecord)
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&rec.Username, in.Username)
	set(&rec.FirstName, in.FirstName)
	set(&rec.LastName, in.LastName)
	set(&rec.Email, in.Email)
	set(&rec.PhoneNumber, in.PhoneNumber)
	set(&rec.Photo, in.Photo)
	if passwordHash != nil {
		rec.PasswordHash = passwordHash
	}

	if err := txn.Insert(tableUsers, &rec); err != nil {
		return models.User{}, err
	}
	txn.Commit()
	return rec.User, nil
}

func (s *Store) CreateCharity(in models.CharityInput) (models.Charity, error) {
	c := models.Charity{
		ID:                uuid.NewString(),
		Title:             in.Title,
		Description:       in.Description,
		PhoneNumber:       in.PhoneNumber,
		OrganisationEmail: in.OrganisationEmail,
	}
	txn := s.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(tableCharities, &c); err != nil {
		return models.Charity{}, err
	}
	txn.Commit()
	return c, nil
}

func (s *Store) Charity(id string) (models.Charity, error) {
	txn := s.db.Txn(false)
	obj, err := txn.First(tableCharities, "id", id)
	if err != nil {
		return models.Charity{}, err
	}
	if obj == nil {
		return models.Charity{}, ErrNotFound
	}
	return *obj.(*models.Charity), nil
}

func (s *Store) Charities() ([]models.Charity, error) {
	return list[models.Charity](s.db.Txn(false), tableCharities, "id")
}

// CreateFundraiser attaches p to an existing charity.
func (s *Store) CreateFundraiser(p models.Post) (models.Post, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()

	if p.CharityID != "" {
		obj, err := txn.First(tableCharities, "id", p.CharityID)
		if err != nil {
			return models.Post{}, err
		}
		if obj == nil {
			return models.Post{}, ErrUnknownCharity
		}
	}

	p.ID = uuid.NewString()
	if err := txn.Insert(tableFundraisers, &p); err != nil {
		return models.Post{}, err
	}
	txn.Commit()
	return p, nil
}

func (s *Store) Fundraisers() ([]models.Post, error) {
	return list[models.Post](s.db.Txn(false), tableFundraisers, "id")
}

// Donate records a donation from userID to an existing fundraiser.
func (s *Store) Donate(userID string, in models.DonationInput) (models.Donation, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First(tableFundraisers, "id", in.FundraiseID)
	if err != nil {
		return models.Donation{}, err
	}
	if obj == nil {
		return models.Donation{}, ErrNotFound
	}

	d := models.Donation{
		ID:          uuid.NewString(),
		FundraiseID: in.FundraiseID,
		UserID:      userID,
		Amount:      in.Amount,
		CreatedAt:   s.now().UTC(),
	}
	if err := txn.Insert(tableDonations, &d); err != nil {
		return models.Donation{}, err
	}
	txn.Commit()
	return d, nil
}

func (s *Store) DonationsByUser(userID string) ([]models.Donation, error) {
	return list[models.Donation](s.db.Txn(false), tableDonations, "user", userID)
}

func list[T any](txn *memdb.Txn, table, index string, args ...any) ([]T, error) {
	it, err := txn.Get(table, index, args...)
	if err != nil {
		return nil, err
	}
	out := []T{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		out = append(out, *obj.(*T))
	}
	return out, nil
}
