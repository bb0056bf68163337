package news

import "errors"

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrSlugConflict    = errors.New("slug already in use")
)
