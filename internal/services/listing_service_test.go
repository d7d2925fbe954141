// internal/services/listing_service_test.go
package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrohaat/agrohaat-backend/internal/utils"
)

func TestUpdateListingRequestBindsEditableFields(t *testing.T) {
	body := `{
		"crop_name": "Basmati Rice",
		"quantity": 120,
		"unit": "kg",
		"starting_price": 80,
		"description": "updated lot"
	}`

	var req UpdateListingRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.NotNil(t, req.CropName)
	assert.Equal(t, "Basmati Rice", *req.CropName)
	require.NotNil(t, req.Quantity)
	assert.Equal(t, 120.0, *req.Quantity)
	require.NotNil(t, req.Unit)
	assert.Equal(t, "kg", *req.Unit)
	require.NotNil(t, req.StartingPrice)
	assert.Equal(t, 80.0, *req.StartingPrice)
	require.NotNil(t, req.Description)
	assert.Equal(t, "updated lot", *req.Description)

	assert.NoError(t, utils.ValidateStruct(&req))
}

func TestUpdateListingRequestStartingPriceAlone(t *testing.T) {
	var req UpdateListingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"starting_price": 80}`), &req))

	require.NotNil(t, req.StartingPrice)
	assert.Equal(t, 80.0, *req.StartingPrice)
	assert.Nil(t, req.CropName)
	assert.Nil(t, req.Quantity)
	assert.Nil(t, req.Unit)
	assert.Nil(t, req.Description)

	assert.NoError(t, utils.ValidateStruct(&req))
}

func TestUpdateListingRequestRejectsNonPositiveStartingPrice(t *testing.T) {
	zero := 0.0
	req := UpdateListingRequest{StartingPrice: &zero}
	assert.Error(t, utils.ValidateStruct(&req))

	negative := -5.0
	req = UpdateListingRequest{StartingPrice: &negative}
	assert.Error(t, utils.ValidateStruct(&req))
}
