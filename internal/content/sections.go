// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"github.com/olegiv/osite-go/internal/model"
)

// Concrete repository types for each section of the document.
type (
	ProductRepository = Repository[model.Product, model.ProductPatch]
	BrandRepository   = Repository[model.Brand, model.BrandPatch]
	ClientRepository  = Repository[model.Client, model.ClientPatch]
	TeamRepository    = Repository[model.TeamMember, model.TeamMemberPatch]
	MessageRepository = Repository[model.Message, model.MessagePatch]
)

// Repositories bundles one repository per section over a shared store.
type Repositories struct {
	Products *ProductRepository
	Brands   *BrandRepository
	Clients  *ClientRepository
	Team     *TeamRepository
	Messages *MessageRepository
}

// NewRepositories wires a repository for every section of the document.
func NewRepositories(store *Store) *Repositories {
	return &Repositories{
		Products: NewProductRepository(store),
		Brands:   NewBrandRepository(store),
		Clients:  NewClientRepository(store),
		Team:     NewTeamRepository(store),
		Messages: NewMessageRepository(store),
	}
}

// NewProductRepository creates the products section repository.
func NewProductRepository(store *Store) *ProductRepository {
	return NewRepository[model.Product, model.ProductPatch](store, SectionConfig[model.Product]{
		Name:     "products",
		Lookup:   func(d *Document) *Section[model.Product] { return d.Products },
		Assign:   func(d *Document, s *Section[model.Product]) { d.Products = s },
		Default:  func() *Section[model.Product] { return mustDefaultDocument().Products },
		Validate: model.Product.Validate,
	})
}

// NewBrandRepository creates the brands section repository.
func NewBrandRepository(store *Store) *BrandRepository {
	return NewRepository[model.Brand, model.BrandPatch](store, SectionConfig[model.Brand]{
		Name:     "brands",
		Lookup:   func(d *Document) *Section[model.Brand] { return d.Brands },
		Assign:   func(d *Document, s *Section[model.Brand]) { d.Brands = s },
		Default:  func() *Section[model.Brand] { return mustDefaultDocument().Brands },
		Validate: model.Brand.Validate,
	})
}

// NewClientRepository creates the clients section repository.
func NewClientRepository(store *Store) *ClientRepository {
	return NewRepository[model.Client, model.ClientPatch](store, SectionConfig[model.Client]{
		Name:     "clients",
		Lookup:   func(d *Document) *Section[model.Client] { return d.Clients },
		Assign:   func(d *Document, s *Section[model.Client]) { d.Clients = s },
		Default:  func() *Section[model.Client] { return mustDefaultDocument().Clients },
		Validate: model.Client.Validate,
	})
}

// NewTeamRepository creates the team section repository.
func NewTeamRepository(store *Store) *TeamRepository {
	return NewRepository[model.TeamMember, model.TeamMemberPatch](store, SectionConfig[model.TeamMember]{
		Name:     "team",
		Lookup:   func(d *Document) *Section[model.TeamMember] { return d.Team },
		Assign:   func(d *Document, s *Section[model.TeamMember]) { d.Team = s },
		Default:  func() *Section[model.TeamMember] { return mustDefaultDocument().Team },
		Validate: model.TeamMember.Validate,
	})
}

// NewMessageRepository creates the contact messages repository. Message IDs
// always come from the UUID fallback.
func NewMessageRepository(store *Store) *MessageRepository {
	return NewRepository[model.Message, model.MessagePatch](store, SectionConfig[model.Message]{
		Name:     "messages",
		Lookup:   func(d *Document) *Section[model.Message] { return d.Messages },
		Assign:   func(d *Document, s *Section[model.Message]) { d.Messages = s },
		Default:  func() *Section[model.Message] { return mustDefaultDocument().Messages },
		Validate: model.Message.Validate,
	})
}
