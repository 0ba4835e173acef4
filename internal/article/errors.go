package article

import "github.com/rotisserie/eris"

// Sentinel errors returned by the article service and repository. Callers
// classify failures with eris.Is; anything outside this set is an unexpected
// persistence failure.
var (
	// ErrUnauthenticated indicates the operation requires a caller identity.
	ErrUnauthenticated = eris.New("caller is not authenticated")

	// ErrValidation indicates a required field is missing or empty.
	ErrValidation = eris.New("validation failed")

	// ErrDuplicateTitle indicates the generated slug collides with an
	// existing article.
	ErrDuplicateTitle = eris.New("an article with this title already exists")

	// ErrNotFound indicates no article exists at the requested slug.
	ErrNotFound = eris.New("article not found")
)
