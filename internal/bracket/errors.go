package bracket

import "errors"

var (
	// ErrInvalidProbability indicates a game probability outside [0,1] or NaN
	ErrInvalidProbability = errors.New("invalid win probability")

	// ErrInvalidBestOf indicates a series length below one game
	ErrInvalidBestOf = errors.New("series length must be at least one game")

	// ErrDuplicateQualifier indicates a team listed twice among the qualifiers
	ErrDuplicateQualifier = errors.New("duplicate qualifier")

	// ErrUnknownPolicy indicates an unsupported opponent policy
	ErrUnknownPolicy = errors.New("unknown opponent policy")
)
