package seed

import "github.com/MrSnakeDoc/bookshelf/internal/domain"

// File is the top-level structure of a seed file.
type File struct {
	Books []domain.Payload `yaml:"books"`
}
