package services

import (
	portsrepo "github.com/mwaqasali/garage_invoice_app/internal/core/ports/repositories"
	portssvc "github.com/mwaqasali/garage_invoice_app/internal/core/ports/services"
	"github.com/mwaqasali/garage_invoice_app/internal/platform/cache"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The customer service is built first since the
// document service resolves customers through it.
func NewServiceContainer(repos portsrepo.RepositoryProvider, listCache cache.ListCache) *portssvc.ServiceContainer {
	if listCache == nil {
		listCache = cache.Noop{}
	}

	container := &portssvc.ServiceContainer{}

	container.Customer = NewCustomerService(
		repos.CustomerRepo,
		WithCustomerListCache(listCache),
	)

	container.Document = NewDocumentService(
		repos.DocumentRepo,
		container.Customer,
		WithDocumentListCache(listCache),
	)

	container.Catalog = NewCatalogService(
		repos.CatalogRepo,
		WithCatalogListCache(listCache),
	)

	return container
}
