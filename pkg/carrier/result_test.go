package carrier_test

import (
	"testing"

	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier"
	"github.com/stretchr/testify/assert"
)

func TestResult_Ok(t *testing.T) {
	res := carrier.Ok(42)

	assert.True(t, res.OK)
	assert.Equal(t, 42, res.Value)
	assert.Nil(t, res.Err)

	v, err := res.Unwrap()
	assert.Equal(t, 42, v)
	assert.Nil(t, err)
}

func TestResult_Fail(t *testing.T) {
	cerr := carrier.NewError(carrier.SeverityServer, "HTTP_500", "boom")
	res := carrier.Fail[int](cerr)

	assert.False(t, res.OK)
	assert.Zero(t, res.Value)

	_, err := res.Unwrap()
	assert.Same(t, cerr, err)
}
