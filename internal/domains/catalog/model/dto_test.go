package model

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityRefValidate(t *testing.T) {
	id := uuid.New()

	t.Run("id only is valid", func(t *testing.T) {
		assert.NoError(t, ByID(id).Validate())
	})

	t.Run("name only is valid", func(t *testing.T) {
		assert.NoError(t, ByName("Ippodo").Validate())
	})

	t.Run("both set is rejected", func(t *testing.T) {
		name := "Ippodo"
		ref := EntityRef{ID: &id, Name: &name}
		assert.Error(t, ref.Validate())
	})

	t.Run("neither set is rejected", func(t *testing.T) {
		assert.Error(t, EntityRef{}.Validate())
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		assert.Error(t, ByName("").Validate())
	})

	t.Run("overlong name is rejected", func(t *testing.T) {
		assert.Error(t, ByName(strings.Repeat("a", 256)).Validate())
	})
}

func TestCreateBlendRequestValidate(t *testing.T) {
	valid := CreateBlendRequest{
		Name:   "Sayaka",
		Brand:  ByName("Marukyu Koyamaen"),
		Region: ByName("Uji"),
	}
	require.NoError(t, valid.Validate())

	t.Run("missing name", func(t *testing.T) {
		req := valid
		req.Name = ""
		assert.Error(t, req.Validate())
	})

	t.Run("overlong name", func(t *testing.T) {
		req := valid
		req.Name = strings.Repeat("a", 201)
		assert.Error(t, req.Validate())
	})

	t.Run("invalid brand ref", func(t *testing.T) {
		req := valid
		req.Brand = EntityRef{}
		assert.Error(t, req.Validate())
	})

	t.Run("invalid region ref", func(t *testing.T) {
		id := uuid.New()
		name := "Uji"
		req := valid
		req.Region = EntityRef{ID: &id, Name: &name}
		assert.Error(t, req.Validate())
	})
}

func TestListCatalogRequestNormalization(t *testing.T) {
	req := ListCatalogRequest{Page: 0, Limit: 0}
	require.NoError(t, req.Validate())
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.Limit)

	req = ListCatalogRequest{Page: 3, Limit: 500}
	require.NoError(t, req.Validate())
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 100, req.Limit)

	blends := ListBlendsRequest{Limit: 500}
	require.NoError(t, blends.Validate())
	assert.Equal(t, 100, blends.Limit)
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(2, 20, 45)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = NewPaginationMeta(1, 20, 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}
