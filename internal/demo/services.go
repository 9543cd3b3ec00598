package demo

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/toyz/relay/pkg/relay"
)

// Service type identifiers registered in the container
const (
	GirlServiceType  = "GirlService"
	RepositoriesType = "Repositories"
	LoggerType       = "Logger"
)

// GirlService answers questions about girls and their posts
type GirlService struct {
	repos   *Repositories
	lookups atomic.Int64
}

// NewGirlService creates the service
func NewGirlService(repos *Repositories) *GirlService {
	return &GirlService{repos: repos}
}

// Posts returns the titles of the posts written by g
func (s *GirlService) Posts(g Girl) []string {
	s.lookups.Add(1)
	titles := []string{}
	for _, p := range s.repos.Posts.All() {
		if p.AuthorID == g.ID {
			titles = append(titles, p.Title)
		}
	}
	return titles
}

// Lookups returns how many queries the service has answered
func (s *GirlService) Lookups() int64 {
	return s.lookups.Load()
}

// Author returns the girl who wrote p
func (s *GirlService) Author(p Post) (Girl, error) {
	s.lookups.Add(1)
	g, ok := s.repos.Girls.Get(p.AuthorID)
	if !ok {
		return Girl{}, fmt.Errorf("post %d has no author", p.ID)
	}
	return g, nil
}

// NewServices builds the service container
func NewServices(repos *Repositories, logger *slog.Logger) (*relay.Container, error) {
	services := relay.NewContainer()
	if err := services.Instance(RepositoriesType, repos); err != nil {
		return nil, err
	}
	if err := services.Instance(LoggerType, logger); err != nil {
		return nil, err
	}
	err := services.Provide(GirlServiceType, relay.Singleton, func(ctx context.Context, c *relay.Container) (any, error) {
		r, err := relay.ResolveAs[*Repositories](ctx, c, RepositoriesType)
		if err != nil {
			return nil, err
		}
		return NewGirlService(r), nil
	})
	if err != nil {
		return nil, err
	}
	return services, nil
}
