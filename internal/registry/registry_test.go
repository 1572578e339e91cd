package registry_test

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarhimada/loginsynth/internal/event"
	"github.com/omarhimada/loginsynth/internal/geo"
	"github.com/omarhimada/loginsynth/internal/registry"
)

func buildTestRegistry(seed uint64) *registry.Registry {
	faker := gofakeit.New(seed)
	return registry.Build(faker, geo.NewCatalog(faker), registry.Options{MinUsersPerTenant: 20, MaxUsersPerTenant: 40})
}

func TestBuild_FixedTenantAndClientSets(t *testing.T) {
	reg := buildTestRegistry(2)

	require.Len(t, reg.Tenants, 3)
	require.Len(t, reg.Clients, 3)

	flows := make(map[string]struct{})
	for _, c := range reg.Clients {
		flows[c.AuthFlow] = struct{}{}
	}
	assert.Len(t, flows, 3, "each client carries a distinct auth flow")
}

func TestBuild_UserPopulation(t *testing.T) {
	reg := buildTestRegistry(2)

	assert.GreaterOrEqual(t, len(reg.Users), 3*20)
	assert.LessOrEqual(t, len(reg.Users), 3*40)

	tenantIDs := make(map[string]struct{}, len(reg.Tenants))
	for _, tenant := range reg.Tenants {
		tenantIDs[tenant.ID] = struct{}{}
	}

	admins := 0
	for _, u := range reg.Users {
		_, ok := tenantIDs[u.TenantID]
		assert.True(t, ok, "user belongs to a known tenant")
		assert.True(t, strings.HasPrefix(u.ID, "usr-"))
		assert.Contains(t, u.Username, "@")
		assert.NotEmpty(t, u.Home.Country)
		assert.True(t, strings.HasPrefix(u.PrimaryDevice, "dev-"))
		if u.Class == event.ClassAdmin {
			admins++
		}
	}

	// Roughly 1-in-40; anything approaching half the population is wrong.
	assert.Less(t, admins, len(reg.Users)/4)
}

func TestByID_Roundtrip(t *testing.T) {
	reg := buildTestRegistry(2)

	u := reg.Users[0]
	assert.Same(t, u, reg.ByID(u.ID))
	assert.Nil(t, reg.ByID("usr-unknown"))
}

func TestRandomUser_DrawsFromWholePopulation(t *testing.T) {
	faker := gofakeit.New(2)
	reg := registry.Build(faker, geo.NewCatalog(faker), registry.Options{MinUsersPerTenant: 5, MaxUsersPerTenant: 5})

	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		seen[reg.RandomUser(faker).ID] = struct{}{}
	}
	assert.Greater(t, len(seen), len(reg.Users)/2)
}
