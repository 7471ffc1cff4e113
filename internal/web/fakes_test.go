package web

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"recruit-platform/internal/auth"
	"recruit-platform/internal/models"
)

var errStoreDown = errors.New("store down")

type fakeStore struct {
	mu          sync.Mutex
	nextID      int64
	users       []models.User
	jobs        []models.JobPosting
	apps        []models.Application
	assessments []models.QuizAssessment

	failApplications bool
	pingErr          error
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) Ping(context.Context) error {
	return s.pingErr
}

func (s *fakeStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return models.ErrDuplicateEmail
		}
	}
	user.ID = s.id()
	user.CreatedAt = time.Now()
	s.users = append(s.users, *user)
	return nil
}

func (s *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) userID(email string) int64 {
	u, _ := s.GetUserByEmail(context.Background(), email)
	if u == nil {
		return 0
	}
	return u.ID
}

func (s *fakeStore) CreateJobPosting(_ context.Context, job *models.JobPosting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.ID = s.id()
	job.CreatedAt = time.Now()
	s.jobs = append(s.jobs, *job)
	return nil
}

func (s *fakeStore) GetJobPosting(_ context.Context, jobID int64) (*models.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.ID == jobID {
			j := j
			return &j, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListJobPostingsByStatus(_ context.Context, status models.PostingStatus) ([]models.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.JobPosting
	for _, j := range s.jobs {
		if j.Status == status {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateApplication(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failApplications {
		return errStoreDown
	}
	app.ID = s.id()
	app.CreatedAt = time.Now()
	s.apps = append(s.apps, *app)
	return nil
}

func (s *fakeStore) ListApplicationsByCandidate(_ context.Context, candidateID int64) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Application
	for _, a := range s.apps {
		if a.CandidateID == candidateID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeStore) ListApplicationsByJob(_ context.Context, jobID int64) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Application
	for _, a := range s.apps {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeStore) SaveQuizAssessment(_ context.Context, a *models.QuizAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.id()
	a.CreatedAt = time.Now()
	s.assessments = append(s.assessments, *a)
	return nil
}

func (s *fakeStore) ListQuizAssessments(_ context.Context, userID int64) ([]models.QuizAssessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.QuizAssessment
	for _, a := range s.assessments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeStore) counts() (users, apps, assessments int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), len(s.apps), len(s.assessments)
}

// fakeCache stores sessions as JSON the way redis does.
type fakeCache struct {
	mu       sync.Mutex
	sessions map[string][]byte
	quizzes  map[int64]string
	counts   map[string]int64
	pingErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		sessions: make(map[string][]byte),
		quizzes:  make(map[int64]string),
		counts:   make(map[string]int64),
	}
}

func (c *fakeCache) Ping(context.Context) error {
	return c.pingErr
}

func (c *fakeCache) GetSession(_ context.Context, sessionID string) (*auth.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	var sess auth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (c *fakeCache) SetSession(_ context.Context, sessionID string, sess *auth.Session, _ time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[sessionID] = data
	return nil
}

func (c *fakeCache) DeleteSession(_ context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, sessionID)
	return nil
}

func (c *fakeCache) GetQuiz(_ context.Context, userID int64) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quizzes[userID], nil
}

func (c *fakeCache) SetQuiz(_ context.Context, userID int64, quiz string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quizzes[userID] = quiz
	return nil
}

func (c *fakeCache) DeleteQuiz(_ context.Context, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.quizzes, userID)
	return nil
}

func (c *fakeCache) IncrementRateLimit(_ context.Context, client string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[client]++
	return c.counts[client], nil
}

func (c *fakeCache) cachedQuiz(userID int64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	q, ok := c.quizzes[userID]
	return q, ok
}

type fakeQuiz struct {
	mu    sync.Mutex
	calls int
	text  string
	err   error
}

func (q *fakeQuiz) GenerateQuiz(context.Context) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls++
	return q.text, q.err
}

func (q *fakeQuiz) callCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.calls
}

type fakeNotifier struct {
	mu   sync.Mutex
	apps []models.Application
}

func (n *fakeNotifier) ApplicationSubmitted(_ context.Context, _ *models.JobPosting, app *models.Application) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.apps = append(n.apps, *app)
	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.apps)
}
