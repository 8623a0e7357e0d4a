package carrier_test

import (
	"testing"

	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier"
	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := carrier.NewRegistry()
	registry.Register(mock.New("ups"))

	c, err := registry.Get("ups")
	require.Nil(t, err)
	assert.Equal(t, "ups", c.Name())
}

func TestRegistry_GetNotFound(t *testing.T) {
	registry := carrier.NewRegistry()

	_, err := registry.Get("fedex")
	require.NotNil(t, err)
	assert.Equal(t, carrier.CodeCarrierNotFound, err.Code)
	assert.Equal(t, carrier.SeverityClient, err.Severity)
}

func TestRegistry_NamesAndCount(t *testing.T) {
	registry := carrier.NewRegistry()
	registry.Register(mock.New("ups"))
	registry.Register(mock.New("dhl"))

	assert.Equal(t, 2, registry.Count())
	assert.ElementsMatch(t, []string{"ups", "dhl"}, registry.Names())
	assert.Len(t, registry.All(), 2)
}

func TestRegistry_RegisterOverwrites(t *testing.T) {
	registry := carrier.NewRegistry()
	first := mock.New("ups")
	second := mock.New("ups")
	registry.Register(first)
	registry.Register(second)

	assert.Equal(t, 1, registry.Count())

	c, err := registry.Get("ups")
	require.Nil(t, err)
	assert.Same(t, second, c.(*mock.Client))
}
