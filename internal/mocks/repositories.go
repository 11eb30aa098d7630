package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/blogify-api/internal/models"
	"github.com/blogify-api/internal/repository"
)

// Verify interface compliance
var (
	_ repository.PostRepository    = (*MockPostRepository)(nil)
	_ repository.TagRepository     = (*MockTagRepository)(nil)
	_ repository.CommentRepository = (*MockCommentRepository)(nil)
	_ repository.UserRepository    = (*MockUserRepository)(nil)
	_ repository.ContactRepository = (*MockContactRepository)(nil)
)

// NewRepositories wires a full set of in-memory repositories
func NewRepositories() (*repository.Repositories, *Store) {
	store := &Store{
		Posts:    NewMockPostRepository(),
		Tags:     NewMockTagRepository(),
		Comments: NewMockCommentRepository(),
		Users:    NewMockUserRepository(),
		Contact:  NewMockContactRepository(),
	}
	return &repository.Repositories{
		Post:    store.Posts,
		Tag:     store.Tags,
		Comment: store.Comments,
		User:    store.Users,
		Contact: store.Contact,
	}, store
}

// Store gives tests typed access to the mocks behind a Repositories
type Store struct {
	Posts    *MockPostRepository
	Tags     *MockTagRepository
	Comments *MockCommentRepository
	Users    *MockUserRepository
	Contact  *MockContactRepository
}

// MockPostRepository is a mock implementation of PostRepository.
// IDs are allocated per category like the per-table sequences.
type MockPostRepository struct {
	mu     sync.Mutex
	Posts  map[models.Category]map[int64]*models.Post
	nextID map[models.Category]int64
	Err    error
}

func NewMockPostRepository() *MockPostRepository {
	m := &MockPostRepository{
		Posts:  make(map[models.Category]map[int64]*models.Post),
		nextID: make(map[models.Category]int64),
	}
	for _, c := range models.Categories {
		m.Posts[c] = make(map[int64]*models.Post)
	}
	return m
}

// Seed stores a post as given, keeping its ID and timestamps
func (m *MockPostRepository) Seed(post models.Post) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := clonePost(&post)
	m.Posts[p.Category][p.ID] = p
	if p.ID > m.nextID[p.Category] {
		m.nextID[p.Category] = p.ID
	}
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID[post.Category]++
	post.ID = m.nextID[post.Category]
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	post.UpdatedAt = post.CreatedAt
	if post.Tags == nil {
		post.Tags = []string{}
	}
	m.Posts[post.Category][post.ID] = clonePost(post)
	return nil
}

func (m *MockPostRepository) List(ctx context.Context, category models.Category) ([]models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	posts := []models.Post{}
	for _, p := range m.Posts[category] {
		posts = append(posts, *clonePost(p))
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts, nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, category models.Category, id int64) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.Posts[category][id]
	if !ok {
		return nil, nil
	}
	return clonePost(p), nil
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.Posts[post.Category][post.ID]
	if !ok {
		return false, nil
	}
	post.CreatedAt = existing.CreatedAt
	post.UpdatedAt = time.Now().UTC()
	m.Posts[post.Category][post.ID] = clonePost(post)
	return true, nil
}

func (m *MockPostRepository) Delete(ctx context.Context, category models.Category, id int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Posts[category][id]; !ok {
		return false, nil
	}
	delete(m.Posts[category], id)
	return true, nil
}

func (m *MockPostRepository) ListAll(ctx context.Context) ([]models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	posts := []models.Post{}
	for _, c := range models.Categories {
		for _, p := range m.Posts[c] {
			posts = append(posts, *clonePost(p))
		}
	}
	return posts, nil
}

func (m *MockPostRepository) Count(ctx context.Context, category models.Category) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Posts[category]), nil
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Tags = append([]string{}, p.Tags...)
	if p.ImageURL != nil {
		url := *p.ImageURL
		c.ImageURL = &url
	}
	return &c
}

// MockTagRepository is a mock implementation of TagRepository
type MockTagRepository struct {
	mu     sync.Mutex
	Tags   map[int64]*models.Tag
	nextID int64
	Err    error
}

func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{Tags: make(map[int64]*models.Tag)}
}

func (m *MockTagRepository) nameTaken(name string, except int64) bool {
	for id, t := range m.Tags {
		if id != except && t.Name == name {
			return true
		}
	}
	return false
}

func (m *MockTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.nameTaken(tag.Name, 0) {
		return repository.ErrDuplicate
	}
	m.nextID++
	tag.ID = m.nextID
	tag.CreatedAt = time.Now().UTC()
	tag.UpdatedAt = tag.CreatedAt
	stored := *tag
	m.Tags[tag.ID] = &stored
	return nil
}

func (m *MockTagRepository) List(ctx context.Context) ([]models.Tag, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tags := []models.Tag{}
	for _, t := range m.Tags {
		tags = append(tags, *t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (m *MockTagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.Tags[id]
	if !ok {
		return nil, nil
	}
	tag := *t
	return &tag, nil
}

func (m *MockTagRepository) Update(ctx context.Context, tag *models.Tag) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.Tags[tag.ID]
	if !ok {
		return false, nil
	}
	if m.nameTaken(tag.Name, tag.ID) {
		return false, repository.ErrDuplicate
	}
	tag.CreatedAt = existing.CreatedAt
	tag.UpdatedAt = time.Now().UTC()
	stored := *tag
	m.Tags[tag.ID] = &stored
	return true, nil
}

func (m *MockTagRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Tags[id]; !ok {
		return false, nil
	}
	delete(m.Tags, id)
	return true, nil
}

func (m *MockTagRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Tags), nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mu       sync.Mutex
	Comments []*models.Comment
	Err      error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	comment.ID = int64(len(m.Comments) + 1)
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	stored := *comment
	m.Comments = append(m.Comments, &stored)
	return nil
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID int64, postType models.Category) ([]models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	comments := []models.Comment{}
	for _, c := range m.Comments {
		if c.PostID == postID && c.PostType == postType {
			comments = append(comments, *c)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
	return comments, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Comments), nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mu     sync.Mutex
	Users  map[int64]*models.User
	nextID int64
	Err    error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[int64]*models.User)}
}

func (m *MockUserRepository) find(match func(*models.User) bool) *models.User {
	for _, u := range m.Users {
		if match(u) {
			user := *u
			return &user
		}
	}
	return nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.find(func(u *models.User) bool { return u.Email == user.Email || u.Username == user.Username }) != nil {
		return repository.ErrDuplicate
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	m.Users[user.ID] = &stored
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(u *models.User) bool { return u.ID == id }), nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(u *models.User) bool { return u.Email == email }), nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetByEmail(ctx, email)
	return u != nil, err
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(u *models.User) bool { return u.Username == username }) != nil, nil
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id int64, update *models.ProfileUpdate) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.Users[id]
	if !ok {
		return nil, nil
	}
	if update.Email != nil {
		if m.find(func(o *models.User) bool { return o.ID != id && o.Email == *update.Email }) != nil {
			return nil, repository.ErrDuplicate
		}
		u.Email = *update.Email
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.Phone != nil {
		phone := *update.Phone
		u.Phone = &phone
	}
	if update.Address != nil {
		address := *update.Address
		u.Address = &address
	}
	u.UpdatedAt = time.Now().UTC()
	user := *u
	return &user, nil
}

func (m *MockUserRepository) UpdateProfilePicture(ctx context.Context, id int64, path string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.Users[id]
	if !ok {
		return nil, nil
	}
	u.ProfilePicture = &path
	u.UpdatedAt = time.Now().UTC()
	user := *u
	return &user, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Users), nil
}

// MockContactRepository is a mock implementation of ContactRepository
type MockContactRepository struct {
	mu       sync.Mutex
	Messages []*models.ContactMessage
	Err      error
}

func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{}
}

func (m *MockContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	msg.ID = int64(len(m.Messages) + 1)
	msg.CreatedAt = time.Now().UTC()
	stored := *msg
	m.Messages = append(m.Messages, &stored)
	return nil
}
