package db

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// IsDuplicateKeyError checks if an error from MongoDB is a duplicate key
// error (code 11000). Used to classify unique-constraint violations (e.g. a
// taken email address); failures are surfaced to the caller, never retried.
func IsDuplicateKeyError(err error) bool {
	var e mongo.WriteException
	if errors.As(err, &e) {
		for _, we := range e.WriteErrors {
			if we.Code == 11000 {
				return true
			}
		}
	}
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, writeError := range bwe.WriteErrors {
			if writeError.Code == 11000 {
				return true
			}
		}
	}
	return false
}
