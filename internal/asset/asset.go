// Package asset defines the request handed to the asset-creation system and
// the builder that assembles it. A request is accumulated in stages
// (attributes, delegates, app-data adapters) and submitted exactly once;
// after Build the request is a plain value the minter cannot mutate.
package asset

import (
	"context"
	"errors"

	"github.com/openvenue/mintgate/internal/domain"
)

var (
	ErrAssetIDRequired    = errors.New("asset id required")
	ErrCollectionRequired = errors.New("collection required")
	ErrOwnerRequired      = errors.New("owner required")
	ErrAuthorityRequired  = errors.New("signing authority required")
)

// CreateRequest describes one asset to create as a child of a collection.
type CreateRequest struct {
	AssetID          string
	CollectionID     string
	Owner            string
	Payer            string
	Name             string
	URI              string
	Attributes       []domain.Attribute
	Delegates        []domain.Delegate
	AppData          []domain.AppDataRegistration
	SigningAuthority string
}

// Minter materializes assets. The production implementation writes ledger
// rows inside the caller's transaction; tests substitute a fake.
type Minter interface {
	CreateAsset(ctx context.Context, req CreateRequest) error
}

// Builder accumulates a CreateRequest in stages.
type Builder struct {
	req CreateRequest
}

func NewBuilder(assetID, collectionID string) *Builder {
	return &Builder{req: CreateRequest{AssetID: assetID, CollectionID: collectionID}}
}

func (b *Builder) Name(name string) *Builder {
	b.req.Name = name
	return b
}

func (b *Builder) URI(uri string) *Builder {
	b.req.URI = uri
	return b
}

func (b *Builder) Owner(owner string) *Builder {
	b.req.Owner = owner
	return b
}

func (b *Builder) Payer(payer string) *Builder {
	b.req.Payer = payer
	return b
}

// Attribute appends one key/value pair. Order of calls is preserved in the
// final request.
func (b *Builder) Attribute(key, value string) *Builder {
	b.req.Attributes = append(b.req.Attributes, domain.Attribute{Key: key, Value: value})
	return b
}

func (b *Builder) Delegate(d domain.Delegate) *Builder {
	b.req.Delegates = append(b.req.Delegates, d)
	return b
}

func (b *Builder) AppData(reg domain.AppDataRegistration) *Builder {
	b.req.AppData = append(b.req.AppData, reg)
	return b
}

func (b *Builder) SigningAuthority(handle string) *Builder {
	b.req.SigningAuthority = handle
	return b
}

// Build validates the accumulated request and returns it by value.
func (b *Builder) Build() (CreateRequest, error) {
	switch {
	case b.req.AssetID == "":
		return CreateRequest{}, ErrAssetIDRequired
	case b.req.CollectionID == "":
		return CreateRequest{}, ErrCollectionRequired
	case b.req.Owner == "":
		return CreateRequest{}, ErrOwnerRequired
	case b.req.Name == "":
		return CreateRequest{}, domain.ErrNameRequired
	case b.req.URI == "":
		return CreateRequest{}, domain.ErrURIRequired
	case b.req.SigningAuthority == "":
		return CreateRequest{}, ErrAuthorityRequired
	}

	req := b.req
	req.Attributes = append([]domain.Attribute(nil), b.req.Attributes...)
	req.Delegates = append([]domain.Delegate(nil), b.req.Delegates...)
	req.AppData = append([]domain.AppDataRegistration(nil), b.req.AppData...)
	return req, nil
}
