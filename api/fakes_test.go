package api

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ideahub/ideahub-backend/database"
	"github.com/ideahub/ideahub-backend/models"
)

// fakeUserStore implements userStore in memory and records the last listing
// arguments it was called with.
type fakeUserStore struct {
	users      map[uuid.UUID]models.User
	err        error
	lastFilter database.UserFilter
	lastPage   database.Page
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uuid.UUID]models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Find(_ context.Context, filter database.UserFilter, page database.Page) ([]models.User, error) {
	s.lastFilter = filter
	s.lastPage = page
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) UsernameTaken(_ context.Context, username string, exclude uuid.UUID) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for _, u := range s.users {
		if u.Username == username && u.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) EmailTaken(_ context.Context, email string, exclude uuid.UUID) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for _, u := range s.users {
		if u.Email == email && u.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) Add(_ context.Context, user *models.User) error {
	if s.err != nil {
		return s.err
	}
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) Update(_ context.Context, user *models.User) error {
	if s.err != nil {
		return s.err
	}
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

// fakeProjectStore implements projectStore in memory. Create mirrors the real
// repository by bumping the owner's ideas counter in the linked user store.
type fakeProjectStore struct {
	projects   map[uuid.UUID]models.Project
	owners     *fakeUserStore
	err        error
	lastFilter database.ProjectFilter
	lastPage   database.Page
}

func newFakeProjectStore(owners *fakeUserStore, projects ...models.Project) *fakeProjectStore {
	s := &fakeProjectStore{projects: make(map[uuid.UUID]models.Project), owners: owners}
	for _, p := range projects {
		s.projects[p.ID] = p
	}
	return s
}

func (s *fakeProjectStore) Find(_ context.Context, filter database.ProjectFilter, page database.Page) ([]models.Project, error) {
	s.lastFilter = filter
	s.lastPage = page
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *fakeProjectStore) FindByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	if p, ok := s.projects[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *fakeProjectStore) Create(_ context.Context, project *models.Project) error {
	if s.err != nil {
		return s.err
	}
	s.projects[project.ID] = *project
	if s.owners != nil {
		if owner, ok := s.owners.users[project.UserID]; ok {
			owner.Ideas++
			s.owners.users[owner.ID] = owner
		}
	}
	return nil
}

func (s *fakeProjectStore) Update(_ context.Context, project *models.Project) error {
	if s.err != nil {
		return s.err
	}
	s.projects[project.ID] = *project
	return nil
}

func (s *fakeProjectStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.projects[id]; !ok {
		return false, nil
	}
	delete(s.projects, id)
	return true, nil
}
