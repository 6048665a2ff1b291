package port

import "context"

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// AdminGate decides whether a credential may invoke catalog mutations.
type AdminGate interface {
	IsAuthorized(ctx context.Context, credential string) (bool, error)
}
