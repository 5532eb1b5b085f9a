package domain

import "errors"

// Status enumerates order progression.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// ErrInvalidStatus signals a status value outside the known set.
var ErrInvalidStatus = errors.New("order status is invalid")

var validNext = map[Status]map[Status]bool{
	StatusPending:    {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusShipped: true, StatusCancelled: true},
	StatusShipped:    {StatusDelivered: true},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether moving from one status to another is legal.
// Delivered and Cancelled are terminal; no edge may be skipped or reversed.
func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}
