package directory

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/interfaces"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
)

// Roster is a read-only employee directory loaded from a TOML file at
// startup. The real directory is an external system; this service carries
// the subset of it the engine needs for resolveUser.
type Roster struct {
	users map[string]*model.User
}

var _ interfaces.Directory = &Roster{}

type rosterFile struct {
	Users []rosterUser `toml:"user"`
}

type rosterUser struct {
	ID         string `toml:"id"`
	FirstName  string `toml:"first_name"`
	LastName   string `toml:"last_name"`
	Role       string `toml:"role"`
	EmployeeID string `toml:"employee_id"`
}

func (u *rosterUser) validate() error {
	if u.ID == "" {
		return goerr.New("user id is required")
	}
	if _, err := types.ParseRole(u.Role); err != nil {
		return goerr.Wrap(err, "invalid user role", goerr.V("id", u.ID))
	}
	if u.EmployeeID == "" {
		return goerr.New("employee_id is required", goerr.V("id", u.ID))
	}
	return nil
}

// LoadTOML reads and validates a roster file
func LoadTOML(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read roster file", goerr.V("path", path))
	}

	var file rosterFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse roster file", goerr.V("path", path))
	}

	return newRoster(file.Users)
}

// FromUsers builds a roster directly, for tests and development setups
func FromUsers(users []*model.User) *Roster {
	indexed := make(map[string]*model.User, len(users))
	for _, u := range users {
		copied := *u
		indexed[u.ID] = &copied
	}
	return &Roster{users: indexed}
}

func newRoster(entries []rosterUser) (*Roster, error) {
	users := make(map[string]*model.User, len(entries))
	for i := range entries {
		u := &entries[i]
		if err := u.validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid roster entry")
		}
		if _, dup := users[u.ID]; dup {
			return nil, goerr.New("duplicate user id in roster", goerr.V("id", u.ID))
		}
		role, _ := types.ParseRole(u.Role)
		users[u.ID] = &model.User{
			ID:         u.ID,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			Role:       role,
			EmployeeID: u.EmployeeID,
		}
	}
	return &Roster{users: users}, nil
}

func (r *Roster) ResolveUser(ctx context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "unknown employee", goerr.V("id", id))
	}
	copied := *u
	return &copied, nil
}
