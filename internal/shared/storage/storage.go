// Package storage defines the transactional contract shared by the catalog
// and order repositories, independent of the backing store.
package storage

import (
	"context"
	"errors"
)

// ErrUnavailable reports that the persistence layer could not complete the
// operation. Application services wrap unrecognized storage failures with it.
var ErrUnavailable = errors.New("storage unavailable")

// TxManager runs a function inside one atomic unit of work. Every repository
// call made with the context passed to fn joins the same transaction; if fn
// returns an error, all of its effects are rolled back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
