package accessgroup

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/clinicore/clinic/internal/domain/identity"
	"github.com/clinicore/clinic/internal/platform/httpx"
)

type mockGroupRepo struct {
	groups map[uuid.UUID]*AccessGroup
	users  *mockUserRepo
}

func newMockGroupRepo(users *mockUserRepo) *mockGroupRepo {
	return &mockGroupRepo{groups: make(map[uuid.UUID]*AccessGroup), users: users}
}

func (m *mockGroupRepo) Create(ctx context.Context, g *AccessGroup) error {
	for _, existing := range m.groups {
		if existing.GroupID == g.GroupID {
			return httpx.Conflict("This access group is already exist")
		}
	}
	g.ID = uuid.New()
	cp := *g
	m.groups[g.ID] = &cp
	return nil
}

func (m *mockGroupRepo) GetByID(ctx context.Context, id uuid.UUID) (*AccessGroup, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, httpx.NotFound("access group")
	}
	cp := *g
	return &cp, nil
}

func (m *mockGroupRepo) GetByGroupID(ctx context.Context, groupID string) (*AccessGroup, error) {
	for _, g := range m.groups {
		if g.GroupID == groupID {
			cp := *g
			return &cp, nil
		}
	}
	return nil, httpx.NotFound("access group")
}

func (m *mockGroupRepo) Update(ctx context.Context, g *AccessGroup) error {
	if _, ok := m.groups[g.ID]; !ok {
		return httpx.NotFound("access group")
	}
	cp := *g
	m.groups[g.ID] = &cp
	return nil
}

func (m *mockGroupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.groups[id]; !ok {
		return httpx.NotFound("access group")
	}
	delete(m.groups, id)
	for _, u := range m.users.users {
		if u.AccessGroupID != nil && *u.AccessGroupID == id {
			u.AccessGroupID = nil
		}
	}
	return nil
}

func (m *mockGroupRepo) ListWithMembers(ctx context.Context) ([]*GroupWithMembers, error) {
	out := make([]*GroupWithMembers, 0, len(m.groups))
	for _, g := range m.groups {
		gwm := &GroupWithMembers{AccessGroup: *g, Members: []Member{}}
		for _, u := range m.users.users {
			if u.AccessGroupID != nil && *u.AccessGroupID == g.ID {
				gwm.Members = append(gwm.Members, Member{ID: u.ID, Name: u.Name, Email: u.Email})
			}
		}
		out = append(out, gwm)
	}
	return out, nil
}

type mockUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, u *identity.User) error {
	u.ID = uuid.New()
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, httpx.NotFound("user")
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, httpx.NotFound("user")
}

func (m *mockUserRepo) List(ctx context.Context, limit, offset int) ([]*identity.User, int, error) {
	out := make([]*identity.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (m *mockUserRepo) ListUnassigned(ctx context.Context) ([]*identity.User, error) {
	var out []*identity.User
	for _, u := range m.users {
		if u.Role == "USER" && u.AccessGroupID == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) SetAccessGroup(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) error {
	u, ok := m.users[userID]
	if !ok {
		return httpx.NotFound("user")
	}
	u.AccessGroupID = groupID
	return nil
}

func (m *mockUserRepo) GroupMemberIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, u := range m.users {
		if u.AccessGroupID != nil && *u.AccessGroupID == groupID {
			out = append(out, u.ID)
		}
	}
	return out, nil
}

func (m *mockUserRepo) AccessGroupOf(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, httpx.NotFound("user")
	}
	return u.AccessGroupID, nil
}

func newTestService() (*Service, *mockGroupRepo, *mockUserRepo) {
	users := newMockUserRepo()
	groups := newMockGroupRepo(users)
	return NewService(groups, users), groups, users
}

func seedUser(t *testing.T, users *mockUserRepo, name string) *identity.User {
	t.Helper()
	u := &identity.User{Name: name, Email: name + "@clinic.test", Role: "USER"}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestCreateGroup(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	g := &AccessGroup{GroupID: "G1", GroupName: "Cardiology"}
	if err := svc.Create(ctx, g); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID == uuid.Nil {
		t.Error("Create() did not assign an id")
	}
}

func TestCreateGroupValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if err := svc.Create(ctx, &AccessGroup{GroupName: "No Code"}); err == nil {
		t.Error("Create() without group id should fail")
	}
	if err := svc.Create(ctx, &AccessGroup{GroupID: "G1"}); err == nil {
		t.Error("Create() without group name should fail")
	}
}

func TestCreateGroupDuplicateCode(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if err := svc.Create(ctx, &AccessGroup{GroupID: "G1", GroupName: "Cardiology"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err := svc.Create(ctx, &AccessGroup{GroupID: "G1", GroupName: "Other"})
	if !errors.Is(err, httpx.ErrConflict) {
		t.Errorf("Create() duplicate code error = %v, want conflict", err)
	}
}

func TestUpdateGroupCodeCollision(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	g1 := &AccessGroup{GroupID: "G1", GroupName: "Cardiology"}
	g2 := &AccessGroup{GroupID: "G2", GroupName: "Oncology"}
	if err := svc.Create(ctx, g1); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := svc.Create(ctx, g2); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Renaming g2's code onto g1's is a conflict.
	g2.GroupID = "G1"
	err := svc.Update(ctx, g2)
	if !errors.Is(err, httpx.ErrConflict) {
		t.Errorf("Update() colliding code error = %v, want conflict", err)
	}

	// Updating a group keeping its own code is fine.
	g1.GroupName = "Cardiology Unit"
	if err := svc.Update(ctx, g1); err != nil {
		t.Errorf("Update() same code error = %v", err)
	}
}

func TestDeleteGroupUnassignsMembers(t *testing.T) {
	svc, _, users := newTestService()
	ctx := context.Background()

	g := &AccessGroup{GroupID: "G1", GroupName: "Cardiology"}
	if err := svc.Create(ctx, g); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	u := seedUser(t, users, "alice")
	if err := svc.AssignUser(ctx, u.ID, g.ID); err != nil {
		t.Fatalf("AssignUser() error = %v", err)
	}

	if err := svc.Delete(ctx, g.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got, err := users.AccessGroupOf(ctx, u.ID)
	if err != nil {
		t.Fatalf("AccessGroupOf() error = %v", err)
	}
	if got != nil {
		t.Errorf("user still assigned to deleted group %s", got)
	}
}

func TestAssignAndRemoveUser(t *testing.T) {
	svc, _, users := newTestService()
	ctx := context.Background()

	g := &AccessGroup{GroupID: "G1", GroupName: "Cardiology"}
	if err := svc.Create(ctx, g); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	u := seedUser(t, users, "bob")

	if err := svc.AssignUser(ctx, u.ID, g.ID); err != nil {
		t.Fatalf("AssignUser() error = %v", err)
	}
	got, _ := users.AccessGroupOf(ctx, u.ID)
	if got == nil || *got != g.ID {
		t.Fatalf("AccessGroupOf() = %v, want %s", got, g.ID)
	}

	if err := svc.RemoveUser(ctx, u.ID); err != nil {
		t.Fatalf("RemoveUser() error = %v", err)
	}
	got, _ = users.AccessGroupOf(ctx, u.ID)
	if got != nil {
		t.Errorf("AccessGroupOf() after remove = %v, want nil", got)
	}
}

func TestAssignUserToMissingGroup(t *testing.T) {
	svc, _, users := newTestService()
	ctx := context.Background()

	u := seedUser(t, users, "carol")
	err := svc.AssignUser(ctx, u.ID, uuid.New())
	if !errors.Is(err, httpx.ErrNotFound) {
		t.Errorf("AssignUser() to missing group error = %v, want not found", err)
	}
}

func TestUnassignedUsers(t *testing.T) {
	svc, _, users := newTestService()
	ctx := context.Background()

	g := &AccessGroup{GroupID: "G1", GroupName: "Cardiology"}
	if err := svc.Create(ctx, g); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	assigned := seedUser(t, users, "dave")
	free := seedUser(t, users, "erin")
	if err := svc.AssignUser(ctx, assigned.ID, g.ID); err != nil {
		t.Fatalf("AssignUser() error = %v", err)
	}

	got, err := svc.UnassignedUsers(ctx)
	if err != nil {
		t.Fatalf("UnassignedUsers() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != free.ID {
		t.Errorf("UnassignedUsers() = %d users, want just %s", len(got), free.Name)
	}

	groups, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(groups) != 1 || len(groups[0].Members) != 1 {
		t.Fatalf("List() members = %v, want one", groups)
	}
	if groups[0].Members[0].ID != assigned.ID {
		t.Errorf("List() member = %s, want %s", groups[0].Members[0].ID, assigned.ID)
	}
}
