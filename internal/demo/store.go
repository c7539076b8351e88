// Package demo is a small students admin that exercises the table, form,
// modal and layout adapters behind a chi router.
package demo

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrDuplicateEmail is returned by Store.Add when the email is taken.
var ErrDuplicateEmail = errors.New("demo: email already registered")

// Student is one roster row.
type Student struct {
	ID         string
	First      string
	Last       string
	Email      string
	Grade      int
	Score      float64
	Track      string
	Newsletter bool
	Joined     time.Time
}

// Name joins first and last name.
func (s Student) Name() string {
	return strings.TrimSpace(s.First + " " + s.Last)
}

// NewStudent is the decoded add-student submission.
type NewStudent struct {
	First      string `json:"fname"`
	Last       string `json:"lname"`
	Email      string `json:"email"`
	Grade      int    `json:"grade"`
	Track      string `json:"track"`
	Newsletter bool   `json:"newsletter"`
}

// Store is an in-memory roster safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	students []Student
	now      func() time.Time
}

// NewStore returns a store holding students in insertion order.
func NewStore(students ...Student) *Store {
	return &Store{students: append([]Student(nil), students...), now: time.Now}
}

// SeedStudents returns the demo roster.
func SeedStudents(now time.Time) []Student {
	return []Student{
		{ID: uuid.NewString(), First: "Blaise", Last: "Pascal", Email: "blaise@example.com", Grade: 10, Score: 88.5, Track: "sci", Joined: now.AddDate(0, -7, 0)},
		{ID: uuid.NewString(), First: "Ada", Last: "Lovelace", Email: "ada@example.com", Grade: 11, Score: 93, Track: "sci", Newsletter: true, Joined: now.AddDate(0, -2, 0)},
		{ID: uuid.NewString(), First: "Alan", Last: "Turing", Email: "alan@example.com", Grade: 10, Score: 79.25, Joined: now.AddDate(0, 0, -3)},
		{ID: uuid.NewString(), First: "Mary", Last: "Somerville", Email: "mary@example.com", Grade: 12, Score: 90.75, Track: "hum", Joined: now.AddDate(-1, 0, 0)},
	}
}

// List returns a copy of the roster.
func (s *Store) List() []Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Student(nil), s.students...)
}

// Add stores a new student with a fresh id.
func (s *Store) Add(in NewStudent) (Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(in.Email))
	for _, existing := range s.students {
		if strings.EqualFold(existing.Email, email) {
			return Student{}, ErrDuplicateEmail
		}
	}
	student := Student{
		ID:         uuid.NewString(),
		First:      strings.TrimSpace(in.First),
		Last:       strings.TrimSpace(in.Last),
		Email:      email,
		Grade:      in.Grade,
		Track:      in.Track,
		Newsletter: in.Newsletter,
		Joined:     s.now(),
	}
	s.students = append(s.students, student)
	return student, nil
}
