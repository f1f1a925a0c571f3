package domain

import "github.com/google/uuid"

// ensureID assigns a fresh id when none was set. Ids are generated in Go so
// the same models migrate on Postgres and SQLite.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
