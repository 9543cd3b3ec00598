package demo

import (
	"sync/atomic"

	"github.com/toyz/relay/pkg/relay"
)

// Entity type identifiers used in route declarations
const (
	GirlEntity = "Girl"
	PostEntity = "Post"
)

// Girl is a sample entity loaded by id
type Girl struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// Post is a sample entity written by a Girl
type Post struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	AuthorID int    `json:"author_id"`
}

// Repositories holds the in-memory entity storage
type Repositories struct {
	Girls *relay.MemoryRepository[Girl]
	Posts *relay.MemoryRepository[Post]

	lastGirlID atomic.Int64
}

// NewRepositories creates repositories seeded with sample data
func NewRepositories() *Repositories {
	repos := &Repositories{
		Girls: relay.NewMemoryRepository(map[int]Girl{
			1: {ID: 1, Name: "Alice", Age: 24},
			5: {ID: 5, Name: "Maria", Age: 31},
		}),
		Posts: relay.NewMemoryRepository(map[int]Post{
			1: {ID: 1, Title: "Hello", AuthorID: 1},
			2: {ID: 2, Title: "Second post", AuthorID: 5},
		}),
	}
	repos.lastGirlID.Store(5)
	return repos
}

// NextGirlID reserves an id for a new Girl
func (r *Repositories) NextGirlID() int {
	return int(r.lastGirlID.Add(1))
}

// NewEntities exposes the repositories to the entity strategy
func NewEntities(repos *Repositories) *relay.Entities {
	entities := relay.NewEntities()
	entities.Register(GirlEntity, repos.Girls)
	entities.Register(PostEntity, repos.Posts)
	return entities
}
