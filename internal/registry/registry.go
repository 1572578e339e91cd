// Package registry builds the fixed population of tenants, app clients and
// users that every generated event is drawn from. The registry is constructed
// once per run and read-only afterwards.
package registry

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/omarhimada/loginsynth/internal/event"
	"github.com/omarhimada/loginsynth/internal/geo"
)

// Roughly one user in adminRatio is an admin.
const adminRatio = 40

type Tenant struct {
	ID   string
	Name string
}

type AppClient struct {
	ID       string
	Name     string
	AuthFlow string
}

// UserState is a user's fixed profile: where they normally log in from and
// what they normally log in with. Never mutated after Build.
type UserState struct {
	TenantID      string
	ID            string
	Username      string
	Class         event.UserClass
	Home          geo.GeoPoint
	PrimaryDevice string
}

type Options struct {
	MinUsersPerTenant int
	MaxUsersPerTenant int
}

func DefaultOptions() Options {
	return Options{MinUsersPerTenant: 40, MaxUsersPerTenant: 120}
}

type Registry struct {
	Tenants []Tenant
	Clients []AppClient
	Users   []*UserState

	byID map[string]*UserState
}

func Build(faker *gofakeit.Faker, catalog *geo.Catalog, opts Options) *Registry {
	reg := &Registry{
		Tenants: []Tenant{
			{ID: "ten-" + faker.UUID(), Name: "Northwind Logistics"},
			{ID: "ten-" + faker.UUID(), Name: "Fabrikam Retail"},
			{ID: "ten-" + faker.UUID(), Name: "Contoso Finance"},
		},
		Clients: []AppClient{
			{ID: "cli-" + faker.UUID(), Name: "web", AuthFlow: "authorization_code"},
			{ID: "cli-" + faker.UUID(), Name: "mobile", AuthFlow: "authorization_code_pkce"},
			{ID: "cli-" + faker.UUID(), Name: "api", AuthFlow: "client_credentials"},
		},
		byID: make(map[string]*UserState),
	}

	for _, tenant := range reg.Tenants {
		count := faker.Number(opts.MinUsersPerTenant, opts.MaxUsersPerTenant)
		for i := 0; i < count; i++ {
			u := &UserState{
				TenantID:      tenant.ID,
				ID:            "usr-" + faker.UUID(),
				Username:      fmt.Sprintf("%s@%s", strings.ToLower(faker.Username()), tenantSlug(tenant.Name)),
				Class:         event.ClassCustomer,
				Home:          catalog.WeightedRandom(true),
				PrimaryDevice: "dev-" + faker.UUID(),
			}
			if faker.Number(1, adminRatio) == 1 {
				u.Class = event.ClassAdmin
			}
			reg.Users = append(reg.Users, u)
			reg.byID[u.ID] = u
		}
	}

	return reg
}

// ByID looks a user up by id; nil when unknown.
func (r *Registry) ByID(id string) *UserState {
	return r.byID[id]
}

// RandomUser picks one user uniformly from the whole population.
func (r *Registry) RandomUser(faker *gofakeit.Faker) *UserState {
	return r.Users[faker.Number(0, len(r.Users)-1)]
}

// RandomClient picks one app client uniformly.
func (r *Registry) RandomClient(faker *gofakeit.Faker) AppClient {
	return r.Clients[faker.Number(0, len(r.Clients)-1)]
}

func tenantSlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "")
	return slug + ".example"
}
